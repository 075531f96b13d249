// Package domain contains core business types and interfaces.
//
// This file defines the SafetyRequestRecord, the single mutable entity a
// coverage request form edits and submits. The record is a flat mapping of
// field id to value plus fixed identity fields that exist regardless of the
// selected coverage type.
package domain

import (
	"encoding/json"
	"strconv"
	"time"
)

// =============================================================================
// Identity Field IDs
// =============================================================================

// Field ids for the identity and approval fields that are present on every
// record regardless of coverage type. All other field ids belong to a
// coverage schema and live in the record's Fields map.
const (
	FieldUniqueID        = "uniqueId"
	FieldPersonnelNumber = "personnelNumber"
	FieldSafetyCoverage  = "safetyCoverage"
	FieldDirectorate     = "directorate"
	FieldDivision        = "division"
	FieldDateOfRequest   = "dateOfRequest"
	FieldHeadSfeedStatus = "headSfeedStatus"
	FieldWorkAllocatedTo = "workAllocatedTo"
	FieldGdTsStatus      = "gdTsStatus"
	FieldDeclared        = "declared"
)

var identityFields = map[string]bool{
	FieldUniqueID:        true,
	FieldPersonnelNumber: true,
	FieldSafetyCoverage:  true,
	FieldDirectorate:     true,
	FieldDivision:        true,
	FieldDateOfRequest:   true,
	FieldHeadSfeedStatus: true,
	FieldWorkAllocatedTo: true,
	FieldGdTsStatus:      true,
	FieldDeclared:        true,
}

// IsIdentityField reports whether the field id names one of the fixed
// identity/approval fields rather than a coverage-schema field.
func IsIdentityField(id string) bool {
	return identityFields[id]
}

// =============================================================================
// Safety Request Record
// =============================================================================

// SafetyRequestRecord is a safety/fire coverage request.
//
// UniqueID is assigned by the backing store on create, never client-side.
// Fields holds every coverage-schema field value keyed by field id; values
// entered under a previously selected coverage type are retained but inert
// under the new type (not validated, not required).
type SafetyRequestRecord struct {
	UniqueID        string
	PersonnelNumber string
	SafetyCoverage  CoverageType
	Directorate     string
	Division        string
	DateOfRequest   time.Time
	Declared        bool

	// Approval workflow fields, filled server-side by approvers.
	HeadSfeedStatus string
	WorkAllocatedTo string
	GdTsStatus      string

	Fields map[string]string
}

// NewRecord creates an empty record pinned to the given identity.
func NewRecord(personnelNumber, directorate, division string) *SafetyRequestRecord {
	return &SafetyRequestRecord{
		PersonnelNumber: personnelNumber,
		Directorate:     directorate,
		Division:        division,
		Fields:          make(map[string]string),
	}
}

// Field returns the value for the given field id. Identity field ids resolve
// to the fixed struct fields; every other id is looked up in the flat map.
// Missing fields return the empty string.
func (r *SafetyRequestRecord) Field(id string) string {
	switch id {
	case FieldUniqueID:
		return r.UniqueID
	case FieldPersonnelNumber:
		return r.PersonnelNumber
	case FieldSafetyCoverage:
		return string(r.SafetyCoverage)
	case FieldDirectorate:
		return r.Directorate
	case FieldDivision:
		return r.Division
	case FieldDateOfRequest:
		if r.DateOfRequest.IsZero() {
			return ""
		}
		return r.DateOfRequest.Format("2006-01-02")
	case FieldHeadSfeedStatus:
		return r.HeadSfeedStatus
	case FieldWorkAllocatedTo:
		return r.WorkAllocatedTo
	case FieldGdTsStatus:
		return r.GdTsStatus
	case FieldDeclared:
		if r.Declared {
			return "true"
		}
		return ""
	}
	return r.Fields[id]
}

// FieldEmpty reports whether the value for the given field id is empty.
func (r *SafetyRequestRecord) FieldEmpty(id string) bool {
	return r.Field(id) == ""
}

// Clone returns a deep copy of the record. Snapshots handed to the lifecycle
// client or the document composer are clones so later edits never mutate a
// record already in flight or already persisted.
func (r *SafetyRequestRecord) Clone() *SafetyRequestRecord {
	out := *r
	out.Fields = make(map[string]string, len(r.Fields))
	for k, v := range r.Fields {
		out.Fields[k] = v
	}
	return &out
}

// =============================================================================
// JSON Encoding
// =============================================================================

// The wire form of a record is a single flat JSON object: identity fields
// and coverage-schema fields side by side, exactly as the backend stores and
// returns them.

// MarshalJSON implements json.Marshaler.
func (r *SafetyRequestRecord) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, len(r.Fields)+10)
	for k, v := range r.Fields {
		flat[k] = v
	}
	if r.UniqueID != "" {
		flat[FieldUniqueID] = r.UniqueID
	}
	flat[FieldPersonnelNumber] = r.PersonnelNumber
	flat[FieldSafetyCoverage] = string(r.SafetyCoverage)
	flat[FieldDirectorate] = r.Directorate
	flat[FieldDivision] = r.Division
	if !r.DateOfRequest.IsZero() {
		flat[FieldDateOfRequest] = r.DateOfRequest.Format(time.RFC3339)
	}
	flat[FieldDeclared] = r.Declared
	if r.HeadSfeedStatus != "" {
		flat[FieldHeadSfeedStatus] = r.HeadSfeedStatus
	}
	if r.WorkAllocatedTo != "" {
		flat[FieldWorkAllocatedTo] = r.WorkAllocatedTo
	}
	if r.GdTsStatus != "" {
		flat[FieldGdTsStatus] = r.GdTsStatus
	}
	return json.Marshal(flat)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *SafetyRequestRecord) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	r.Fields = make(map[string]string, len(flat))
	for k, raw := range flat {
		switch k {
		case FieldUniqueID:
			r.UniqueID = rawString(raw)
		case FieldPersonnelNumber:
			r.PersonnelNumber = rawString(raw)
		case FieldSafetyCoverage:
			r.SafetyCoverage = CoverageType(rawString(raw))
		case FieldDirectorate:
			r.Directorate = rawString(raw)
		case FieldDivision:
			r.Division = rawString(raw)
		case FieldDateOfRequest:
			if s := rawString(raw); s != "" {
				t, err := time.Parse(time.RFC3339, s)
				if err != nil {
					// Date-only form from older records.
					t, err = time.Parse("2006-01-02", s)
				}
				if err == nil {
					r.DateOfRequest = t
				}
			}
		case FieldDeclared:
			var b bool
			if err := json.Unmarshal(raw, &b); err == nil {
				r.Declared = b
			}
		case FieldHeadSfeedStatus:
			r.HeadSfeedStatus = rawString(raw)
		case FieldWorkAllocatedTo:
			r.WorkAllocatedTo = rawString(raw)
		case FieldGdTsStatus:
			r.GdTsStatus = rawString(raw)
		default:
			if s := rawString(raw); s != "" {
				r.Fields[k] = s
			}
		}
	}
	return nil
}

// rawString decodes a JSON scalar to its string form. Strings decode
// directly; numbers and booleans keep their literal text; everything else
// is dropped.
func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b)
	}
	return ""
}

// =============================================================================
// List Summaries
// =============================================================================

// RequestSummary is the listing projection of a record.
type RequestSummary struct {
	UniqueID        string       `json:"uniqueId"`
	PersonnelNumber string       `json:"personnelNumber"`
	SafetyCoverage  CoverageType `json:"safetyCoverage"`
	DateOfRequest   time.Time    `json:"dateOfRequest"`
	HeadSfeedStatus string       `json:"headSfeedStatus,omitempty"`
}
