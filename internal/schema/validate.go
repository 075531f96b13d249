package schema

import (
	"github.com/firelane/safecover/internal/domain"
)

// Messages surfaced for the always-required base rules and the declaration
// gate. The declaration failure is a workflow gate, not a data-entry field,
// so it is reported once at top level rather than per field.
const (
	msgRequired    = "This field is required"
	msgPersonnel   = "Personnel Number is required"
	msgCoverage    = "Type of Safety Coverage is required"
	msgCoverageBad = "Unrecognized type of safety coverage"
	msgDeclaration = "You must accept the safety declaration"
)

// Validate checks the record against the schema for the given coverage type
// and returns every required-field failure. It is pure and total: it never
// mutates the record, terminates for any well-formed input, and yields the
// same result for the same record/type pair.
//
// Rules, in order:
//  1. Base identity rules, independent of schema: personnel number and the
//     coverage type itself are always required.
//  2. Per-field rules from the coverage schema: a field hidden by its
//     visibility condition is never required, whatever its requirement
//     condition says.
//  3. Declaration acceptance, reported as exactly one top-level failure.
func (r *Registry) Validate(rec *domain.SafetyRequestRecord, t domain.CoverageType) domain.ValidationResult {
	var result domain.ValidationResult

	if rec.PersonnelNumber == "" {
		result.Add(domain.FieldPersonnelNumber, msgPersonnel)
	}

	switch {
	case t == "":
		result.Add(domain.FieldSafetyCoverage, msgCoverage)
	case !t.IsValid():
		result.Add(domain.FieldSafetyCoverage, msgCoverageBad)
	default:
		s := r.schemas[t]
		for i := range s.Fields {
			f := &s.Fields[i]
			if !f.Visible(rec) {
				continue
			}
			if !f.RequiredFor(rec) {
				continue
			}
			if rec.FieldEmpty(f.ID) {
				result.Add(f.ID, msgRequired)
			}
		}
	}

	if !rec.Declared {
		result.AddTopLevel(msgDeclaration)
	}

	return result
}
