package domain

import (
	"fmt"
	"strings"
)

// =============================================================================
// Validation Result
// =============================================================================

// ValidationFailure is a single required-field or workflow-gate failure.
// A FieldID of "" marks a top-level failure that is not tied to any data
// entry field (the safety declaration gate).
type ValidationFailure struct {
	FieldID string `json:"fieldId"`
	Reason  string `json:"reason"`
}

// ValidationResult is the ordered set of failures produced by validating a
// record against its active coverage schema. An empty result means the
// record is submit-eligible.
type ValidationResult struct {
	Failures []ValidationFailure `json:"failures"`
}

// OK reports whether the record passed validation.
func (r *ValidationResult) OK() bool {
	return len(r.Failures) == 0
}

// Add appends a failure for the given field.
func (r *ValidationResult) Add(fieldID, reason string) {
	r.Failures = append(r.Failures, ValidationFailure{FieldID: fieldID, Reason: reason})
}

// AddTopLevel appends a failure not tied to any field.
func (r *ValidationResult) AddTopLevel(reason string) {
	r.Add("", reason)
}

// HasField reports whether any failure names the given field id.
func (r *ValidationResult) HasField(fieldID string) bool {
	for _, f := range r.Failures {
		if f.FieldID == fieldID {
			return true
		}
	}
	return false
}

// Err converts a non-empty result into an EINVALID error whose message
// joins the failure reasons. Returns nil for an empty result.
func (r *ValidationResult) Err(op string) error {
	if r.OK() {
		return nil
	}
	reasons := make([]string, len(r.Failures))
	for i, f := range r.Failures {
		if f.FieldID == "" {
			reasons[i] = f.Reason
		} else {
			reasons[i] = fmt.Sprintf("%s: %s", f.FieldID, f.Reason)
		}
	}
	return Invalid(op, strings.Join(reasons, "; "))
}
