package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordJSONRoundTrip(t *testing.T) {
	rec := &SafetyRequestRecord{
		UniqueID:        "0b8f8f1e-6f9a-4d2e-9f1c-2a7b1c9d0e3f",
		PersonnelNumber: "54321",
		SafetyCoverage:  CoverageStaticTest,
		Directorate:     "DOS",
		Division:        "Structures",
		DateOfRequest:   time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
		Declared:        true,
		HeadSfeedStatus: "Approved",
		Fields: map[string]string{
			"testBed":        "STB-2",
			"articleDetails": "Test article S/N 42",
		},
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	// The wire form is one flat object, no nesting.
	var flat map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.Equal(t, "54321", flat["personnelNumber"])
	assert.Equal(t, "STB-2", flat["testBed"])
	assert.Equal(t, true, flat["declared"])
	assert.NotContains(t, flat, "fields")

	var got SafetyRequestRecord
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, rec.UniqueID, got.UniqueID)
	assert.Equal(t, rec.SafetyCoverage, got.SafetyCoverage)
	assert.True(t, rec.DateOfRequest.Equal(got.DateOfRequest))
	assert.True(t, got.Declared)
	assert.Equal(t, rec.HeadSfeedStatus, got.HeadSfeedStatus)
	assert.Equal(t, rec.Fields, got.Fields)
}

func TestRecordUnmarshalCoercesScalars(t *testing.T) {
	var rec SafetyRequestRecord
	err := json.Unmarshal([]byte(`{
		"personnelNumber": 54321,
		"safetyCoverage": "transportation",
		"declared": true,
		"vehicleDetails": "Trailer KA-01",
		"noOfPersons": 4
	}`), &rec)
	require.NoError(t, err)

	assert.Equal(t, "54321", rec.PersonnelNumber)
	assert.Equal(t, CoverageTransportation, rec.SafetyCoverage)
	assert.True(t, rec.Declared)
	assert.Equal(t, "4", rec.Fields["noOfPersons"])
	assert.Equal(t, "Trailer KA-01", rec.Fields["vehicleDetails"])
}

func TestRecordUnmarshalAcceptsDateOnlyRequestDate(t *testing.T) {
	var rec SafetyRequestRecord
	err := json.Unmarshal([]byte(`{"personnelNumber":"1","dateOfRequest":"2024-11-05"}`), &rec)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC), rec.DateOfRequest)
}

func TestFieldResolvesIdentityAndSchemaFields(t *testing.T) {
	rec := NewRecord("12345", "DOS", "Structures")
	rec.SafetyCoverage = CoverageGRT
	rec.DateOfRequest = time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	rec.Fields["grtBed"] = "GRT-1"

	tests := []struct {
		id   string
		want string
	}{
		{FieldPersonnelNumber, "12345"},
		{FieldSafetyCoverage, "grt"},
		{FieldDirectorate, "DOS"},
		{FieldDateOfRequest, "2025-03-09"},
		{FieldDeclared, ""},
		{"grtBed", "GRT-1"},
		{"neverSet", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rec.Field(tt.id), tt.id)
	}

	rec.Declared = true
	assert.Equal(t, "true", rec.Field(FieldDeclared))
	assert.False(t, rec.FieldEmpty(FieldDeclared))
}

func TestCloneIsIndependent(t *testing.T) {
	rec := NewRecord("12345", "DOS", "Structures")
	rec.Fields["testBed"] = "STB-1"

	snap := rec.Clone()
	rec.Fields["testBed"] = "STB-9"
	rec.PersonnelNumber = "99999"

	assert.Equal(t, "STB-1", snap.Fields["testBed"])
	assert.Equal(t, "12345", snap.PersonnelNumber)
}

func TestIsIdentityField(t *testing.T) {
	assert.True(t, IsIdentityField(FieldPersonnelNumber))
	assert.True(t, IsIdentityField(FieldGdTsStatus))
	assert.False(t, IsIdentityField("testBed"))
}
