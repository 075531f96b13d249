// Package schema is the single source of truth for the coverage form
// schemas: which fields exist for each coverage type, their conditional
// visibility and requirement rules, and the print-section definitions the
// document composer consumes.
//
// Schemas are static, process-wide, and read-only after construction.
// Authoring mistakes (a condition referencing an unknown field) are caught
// when the registry is built, never at request-validation time.
package schema

import (
	"github.com/firelane/safecover/internal/domain"
)

// =============================================================================
// Field Kinds
// =============================================================================

// FieldKind is the input widget/value kind of a form field.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextarea FieldKind = "textarea"
	KindSelect   FieldKind = "select"
	KindDate     FieldKind = "date"
	KindTime     FieldKind = "time"
	KindRadio    FieldKind = "radio"
	KindCheckbox FieldKind = "checkbox"
	KindFile     FieldKind = "file"
)

// =============================================================================
// Conditions
// =============================================================================

// Condition is a predicate over a record, expressed as data so the registry
// can verify at construction time that the referenced field exists. A nil
// *Condition means "always".
type Condition struct {
	// Field is the id of the field the condition inspects.
	Field string

	// Equals, when non-empty, requires the field value to equal it exactly.
	Equals string

	// NotEmpty, when true, requires the field to have any non-empty value.
	// Ignored if Equals is set.
	NotEmpty bool
}

// Eval evaluates the condition against the record. A nil condition is true.
func (c *Condition) Eval(rec *domain.SafetyRequestRecord) bool {
	if c == nil {
		return true
	}
	v := rec.Field(c.Field)
	if c.Equals != "" {
		return v == c.Equals
	}
	if c.NotEmpty {
		return v != ""
	}
	return v != ""
}

// FieldEquals builds an equality condition.
func FieldEquals(field, value string) *Condition {
	return &Condition{Field: field, Equals: value}
}

// FieldSet builds a non-emptiness condition.
func FieldSet(field string) *Condition {
	return &Condition{Field: field, NotEmpty: true}
}

// =============================================================================
// Field Specs
// =============================================================================

// Option is one choice of a select or radio field.
type Option struct {
	Value string
	Label string
}

// FieldSpec describes one form field of a coverage schema.
//
// A field is required when Required is true, or when RequiredIf evaluates
// true against the record. A field hidden by VisibleIf is never treated as
// required, even if its requirement condition would hold.
type FieldSpec struct {
	ID         string
	Label      string
	Kind       FieldKind
	Required   bool
	RequiredIf *Condition
	VisibleIf  *Condition
	Options    []Option
}

// Visible reports whether the field is visible for the record.
func (f *FieldSpec) Visible(rec *domain.SafetyRequestRecord) bool {
	return f.VisibleIf.Eval(rec)
}

// RequiredFor reports whether the field is required for the record,
// ignoring visibility (the validation engine checks visibility first).
func (f *FieldSpec) RequiredFor(rec *domain.SafetyRequestRecord) bool {
	if f.Required {
		return true
	}
	return f.RequiredIf != nil && f.RequiredIf.Eval(rec)
}

// =============================================================================
// Print Sections
// =============================================================================

// PrintSection names the fields of one printable page and the indicator
// field whose non-emptiness gates inclusion at print time. An empty
// Indicator means the section is never indicator-gated.
type PrintSection struct {
	ID        string
	Title     string
	Indicator string
	FieldIDs  []string
}

// =============================================================================
// Coverage Schema
// =============================================================================

// CoverageSchema is the ordered field list and print sections for one
// coverage type.
type CoverageSchema struct {
	Type     domain.CoverageType
	Fields   []FieldSpec
	Sections []PrintSection
}

// Field returns the FieldSpec with the given id, or nil.
func (s *CoverageSchema) Field(id string) *FieldSpec {
	for i := range s.Fields {
		if s.Fields[i].ID == id {
			return &s.Fields[i]
		}
	}
	return nil
}

// CoverageOption is a selector entry for populating the coverage-type
// drop-down.
type CoverageOption struct {
	ID    domain.CoverageType `json:"id"`
	Label string              `json:"label"`
}
