// Package domain contains core business types and interfaces.
//
// This file defines the CoverageType enumeration for safety and fire
// coverage requests.
package domain

// =============================================================================
// Coverage Type
// =============================================================================

// CoverageType identifies which kind of safety/fire coverage a request asks
// for. A request has exactly one active coverage type at a time; switching
// types while editing retains previously entered field values but they
// become inert until the user switches back.
type CoverageType string

const (
	CoverageIntegration      CoverageType = "integration"
	CoverageStaticTest       CoverageType = "static"
	CoverageThermostructural CoverageType = "thermostructural"
	CoveragePressureTest     CoverageType = "pressure"
	CoverageGRT              CoverageType = "grt"
	CoverageAlignment        CoverageType = "alignment"
	CoverageRadiography      CoverageType = "radiography"
	CoverageHydrobasin       CoverageType = "hydrobasin"
	CoverageTransportation   CoverageType = "transportation"
	CoverageOther            CoverageType = "other"
)

// coverageOrder fixes the display and print ordering of coverage types.
var coverageOrder = []CoverageType{
	CoverageIntegration,
	CoverageStaticTest,
	CoverageThermostructural,
	CoveragePressureTest,
	CoverageGRT,
	CoverageAlignment,
	CoverageRadiography,
	CoverageHydrobasin,
	CoverageTransportation,
	CoverageOther,
}

var coverageLabels = map[CoverageType]string{
	CoverageIntegration:      "INTEGRATION",
	CoverageStaticTest:       "STATIC TEST",
	CoverageThermostructural: "THERMOSTRUCTURAL",
	CoveragePressureTest:     "PRESSURE TEST",
	CoverageGRT:              "GRT",
	CoverageAlignment:        "ALIGNMENT INSPECTION",
	CoverageRadiography:      "RADIOGRAPHY",
	CoverageHydrobasin:       "HYDROBASIN",
	CoverageTransportation:   "TRANSPORTATION",
	CoverageOther:            "ANY OTHER (Specify)",
}

// String returns the string representation of the coverage type.
func (c CoverageType) String() string {
	return string(c)
}

// IsValid returns true if the coverage type is a recognized value.
func (c CoverageType) IsValid() bool {
	_, ok := coverageLabels[c]
	return ok
}

// Label returns the display label for the coverage type, or its raw value
// if the type is unrecognized.
func (c CoverageType) Label() string {
	if label, ok := coverageLabels[c]; ok {
		return label
	}
	return string(c)
}

// CoverageTypes returns all coverage types in display order.
func CoverageTypes() []CoverageType {
	out := make([]CoverageType, len(coverageOrder))
	copy(out, coverageOrder)
	return out
}
