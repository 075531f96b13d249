package schema

import (
	"fmt"

	"github.com/firelane/safecover/internal/domain"
)

// =============================================================================
// Registry
// =============================================================================

// Registry holds the coverage schemas for all coverage types. It is built
// once at startup and read-only afterwards; construction fails if any schema
// is mis-authored, so a running process can trust every condition it
// evaluates.
type Registry struct {
	schemas map[domain.CoverageType]*CoverageSchema
	order   []domain.CoverageType

	// union of every schema field id, for strict SetField membership checks
	known map[string]bool
}

// New builds the registry from the static definitions and verifies them.
func New() (*Registry, error) {
	r := &Registry{
		schemas: make(map[domain.CoverageType]*CoverageSchema),
		known:   make(map[string]bool),
	}

	for _, s := range definitions() {
		if _, dup := r.schemas[s.Type]; dup {
			return nil, fmt.Errorf("schema %q declared twice", s.Type)
		}
		if err := checkSchema(s); err != nil {
			return nil, fmt.Errorf("schema %q: %w", s.Type, err)
		}
		r.schemas[s.Type] = s
		r.order = append(r.order, s.Type)
		for i := range s.Fields {
			r.known[s.Fields[i].ID] = true
		}
	}

	for _, t := range domain.CoverageTypes() {
		if _, ok := r.schemas[t]; !ok {
			return nil, fmt.Errorf("no schema declared for coverage type %q", t)
		}
	}

	return r, nil
}

// MustNew builds the registry and panics on an authoring error. Intended for
// tests and package-level initialization where a broken schema should stop
// the process immediately.
func MustNew() *Registry {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Schema returns the coverage schema for the given type.
// Returns domain.ENOTFOUND for an unrecognized type.
func (r *Registry) Schema(t domain.CoverageType) (*CoverageSchema, error) {
	s, ok := r.schemas[t]
	if !ok {
		return nil, domain.NotFound("schema.get", "coverage schema", string(t))
	}
	return s, nil
}

// CoverageTypes returns the selector entries for all coverage types in
// display order.
func (r *Registry) CoverageTypes() []CoverageOption {
	out := make([]CoverageOption, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, CoverageOption{ID: t, Label: t.Label()})
	}
	return out
}

// KnownField reports whether the field id belongs to any coverage schema or
// is one of the fixed identity fields. The form controller rejects writes to
// anything else.
func (r *Registry) KnownField(id string) bool {
	return r.known[id] || domain.IsIdentityField(id)
}

// =============================================================================
// Load-Time Authoring Checks
// =============================================================================

// checkSchema verifies one schema: unique field ids, every condition
// referencing a field declared in the same schema, and every print section
// built only from schema or identity fields.
func checkSchema(s *CoverageSchema) error {
	ids := make(map[string]bool, len(s.Fields))
	for i := range s.Fields {
		f := &s.Fields[i]
		if f.ID == "" {
			return fmt.Errorf("field %d has empty id", i)
		}
		if domain.IsIdentityField(f.ID) {
			return fmt.Errorf("field %q shadows an identity field", f.ID)
		}
		if ids[f.ID] {
			return fmt.Errorf("field %q declared twice", f.ID)
		}
		ids[f.ID] = true
	}

	for i := range s.Fields {
		f := &s.Fields[i]
		if err := checkCondition(f.VisibleIf, ids); err != nil {
			return fmt.Errorf("field %q visibleIf: %w", f.ID, err)
		}
		if err := checkCondition(f.RequiredIf, ids); err != nil {
			return fmt.Errorf("field %q requiredIf: %w", f.ID, err)
		}
		if f.Required && f.RequiredIf != nil {
			return fmt.Errorf("field %q is both unconditionally and conditionally required", f.ID)
		}
		switch f.Kind {
		case KindSelect, KindRadio:
			if len(f.Options) == 0 {
				return fmt.Errorf("field %q has kind %s but no options", f.ID, f.Kind)
			}
		}
	}

	for _, sec := range s.Sections {
		if sec.Indicator != "" && !ids[sec.Indicator] && !domain.IsIdentityField(sec.Indicator) {
			return fmt.Errorf("section %q indicator %q is not a schema field", sec.ID, sec.Indicator)
		}
		for _, id := range sec.FieldIDs {
			if !ids[id] && !domain.IsIdentityField(id) {
				return fmt.Errorf("section %q references unknown field %q", sec.ID, id)
			}
		}
	}

	return nil
}

func checkCondition(c *Condition, ids map[string]bool) error {
	if c == nil {
		return nil
	}
	if c.Field == "" {
		return fmt.Errorf("condition has empty field id")
	}
	if !ids[c.Field] {
		return fmt.Errorf("condition references unknown field %q", c.Field)
	}
	return nil
}
