package schema

import (
	"testing"

	"github.com/firelane/safecover/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuildsAllCoverageTypes(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	for _, ct := range domain.CoverageTypes() {
		s, err := r.Schema(ct)
		require.NoError(t, err, "schema for %s", ct)
		assert.Equal(t, ct, s.Type)
		assert.NotEmpty(t, s.Fields, "schema %s has no fields", ct)
		assert.NotEmpty(t, s.Sections, "schema %s has no print sections", ct)
	}
}

func TestSchemaUnknownType(t *testing.T) {
	r := MustNew()

	_, err := r.Schema(domain.CoverageType("plasma"))
	require.Error(t, err)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestCoverageTypesOrdered(t *testing.T) {
	r := MustNew()

	opts := r.CoverageTypes()
	require.Len(t, opts, 10)
	assert.Equal(t, domain.CoverageIntegration, opts[0].ID)
	assert.Equal(t, domain.CoverageOther, opts[9].ID)
	assert.Equal(t, "STATIC TEST", opts[1].Label)
}

func TestKnownField(t *testing.T) {
	r := MustNew()

	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"schema field", FieldWorkCentre, true},
		{"field from another schema", FieldTransportation, true},
		{"identity field", domain.FieldPersonnelNumber, true},
		{"unknown field", "launchCode", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.KnownField(tt.id))
		})
	}
}

func TestCheckSchemaAuthoringErrors(t *testing.T) {
	tests := []struct {
		name    string
		schema  *CoverageSchema
		wantErr string
	}{
		{
			name: "condition references unknown field",
			schema: &CoverageSchema{
				Type: domain.CoverageOther,
				Fields: []FieldSpec{
					{ID: "a", Label: "A", Kind: KindText, RequiredIf: FieldEquals("missing", "x")},
				},
			},
			wantErr: "unknown field",
		},
		{
			name: "duplicate field id",
			schema: &CoverageSchema{
				Type: domain.CoverageOther,
				Fields: []FieldSpec{
					{ID: "a", Label: "A", Kind: KindText},
					{ID: "a", Label: "A again", Kind: KindText},
				},
			},
			wantErr: "declared twice",
		},
		{
			name: "field shadows identity field",
			schema: &CoverageSchema{
				Type: domain.CoverageOther,
				Fields: []FieldSpec{
					{ID: domain.FieldPersonnelNumber, Label: "P", Kind: KindText},
				},
			},
			wantErr: "shadows an identity field",
		},
		{
			name: "select without options",
			schema: &CoverageSchema{
				Type: domain.CoverageOther,
				Fields: []FieldSpec{
					{ID: "a", Label: "A", Kind: KindSelect},
				},
			},
			wantErr: "no options",
		},
		{
			name: "section indicator not a field",
			schema: &CoverageSchema{
				Type: domain.CoverageOther,
				Fields: []FieldSpec{
					{ID: "a", Label: "A", Kind: KindText},
				},
				Sections: []PrintSection{
					{ID: "s", Title: "S", Indicator: "missing", FieldIDs: []string{"a"}},
				},
			},
			wantErr: "indicator",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkSchema(tt.schema)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConditionEval(t *testing.T) {
	rec := domain.NewRecord("12345", "DRDL", "Engineering")
	rec.Fields[FieldWorkCentre] = "other"

	assert.True(t, FieldEquals(FieldWorkCentre, "other").Eval(rec))
	assert.False(t, FieldEquals(FieldWorkCentre, "LARC").Eval(rec))
	assert.True(t, FieldSet(FieldWorkCentre).Eval(rec))
	assert.False(t, FieldSet(FieldTestBed).Eval(rec))

	var always *Condition
	assert.True(t, always.Eval(rec))
}
