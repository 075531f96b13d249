package schema

import (
	"github.com/firelane/safecover/internal/domain"
)

// Coverage-schema field ids shared across several coverage types. The record
// is a flat map, so types that capture the same information reuse one id;
// switching coverage type keeps the entered value live under the new type.
const (
	FieldArticleDetails  = "articleDetails"
	FieldWorkDescription = "workDescription"
	FieldWorkCentre      = "workCentre"
	FieldWorkCentreOther = "workCentreOther"

	FieldTarbClearance = "tarbClearance"
	FieldReferenceNo   = "referenceNo"
	FieldTarbReason    = "tarbReason"

	FieldTestControllerName        = "testControllerName"
	FieldTestControllerDesignation = "testControllerDesignation"
	FieldDateOfTest                = "dateOfTest"
	FieldTestToDate                = "testToDate"
	FieldTestScheduleTime          = "testScheduleTime"

	FieldActivityInchargeName  = "activityInchargeName"
	FieldActivityInchargeOrg   = "activityInchargeOrg"
	FieldActivityInchargePhone = "activityInchargePhone"
	FieldDesignation           = "designation"
	FieldActivityFromDate      = "activityFromDate"
	FieldActivityToDate        = "activityToDate"

	FieldActivitySchedule       = "activitySchedule"
	FieldActivityScheduleFile   = "activityScheduleFile"
	FieldActivityScheduleReason = "activityScheduleReason"

	FieldAmbulanceRequired = "ambulanceRequired"
	FieldAmbulanceReason   = "ambulanceReason"

	FieldOtherDetails = "otherDetails"

	FieldIntegrationFacility = "integrationFacility"
	FieldTestBed             = "testBed"
	FieldTestFacility        = "testFacility"
	FieldTestRig             = "testRig"
	FieldMaxTestPressure     = "maxTestPressure"
	FieldGRTFacility         = "grtFacility"
	FieldInspectionBay       = "inspectionBay"
	FieldBasinFacility       = "basinFacility"

	FieldTransportation    = "transportation"
	FieldTransScheduleTime = "transScheduleTime"
	FieldTransIncharge     = "transIncharge"
	FieldVehicleDetails    = "vehicleDetails"
	FieldDriverName        = "driverName"
	FieldDriverDesignation = "driverDesignation"
	FieldDriverAuth        = "driverAuth"
)

// =============================================================================
// Shared Field Groups
// =============================================================================

// The original intake form repeated these groups in every coverage section;
// here each group is declared once and spliced into the schemas that use it.

func articleFields() []FieldSpec {
	return []FieldSpec{
		{ID: FieldArticleDetails, Label: "Details of Article Under Test", Kind: KindText, Required: true},
		{ID: FieldWorkDescription, Label: "Description of Work", Kind: KindTextarea, Required: true},
	}
}

func tarbFields() []FieldSpec {
	return []FieldSpec{
		{
			ID: FieldTarbClearance, Label: "TARB Clearance", Kind: KindSelect, Required: true,
			Options: []Option{
				{Value: "obtained", Label: "Obtained"},
				{Value: "notobtained", Label: "Not Obtained"},
				{Value: "notapplicable", Label: "Not Applicable"},
			},
		},
		{
			ID: FieldReferenceNo, Label: "TARB Reference No.", Kind: KindText,
			RequiredIf: FieldEquals(FieldTarbClearance, "obtained"),
			VisibleIf:  FieldEquals(FieldTarbClearance, "obtained"),
		},
		{
			ID: FieldTarbReason, Label: "Reason", Kind: KindTextarea,
			RequiredIf: FieldEquals(FieldTarbClearance, "notobtained"),
			VisibleIf:  FieldEquals(FieldTarbClearance, "notobtained"),
		},
	}
}

func testControllerFields() []FieldSpec {
	return []FieldSpec{
		{ID: FieldTestControllerName, Label: "Test Controller Name", Kind: KindText, Required: true},
		{ID: FieldTestControllerDesignation, Label: "Test Controller Designation", Kind: KindText, Required: true},
		{ID: FieldDateOfTest, Label: "Date of Test", Kind: KindDate, Required: true},
		{ID: FieldTestScheduleTime, Label: "Scheduled Time of Test", Kind: KindTime, Required: true},
	}
}

func inchargeFields() []FieldSpec {
	return []FieldSpec{
		{ID: FieldActivityInchargeName, Label: "Activity Incharge Name", Kind: KindText, Required: true},
		{ID: FieldActivityInchargeOrg, Label: "Activity Incharge Organization", Kind: KindText},
		{ID: FieldDesignation, Label: "Designation", Kind: KindText},
		{ID: FieldActivityInchargePhone, Label: "Phone", Kind: KindText},
		{ID: FieldActivityFromDate, Label: "Activity From Date", Kind: KindDate, Required: true},
		{ID: FieldActivityToDate, Label: "Activity To Date", Kind: KindDate, Required: true},
	}
}

func ambulanceFields() []FieldSpec {
	return []FieldSpec{
		{
			ID: FieldAmbulanceRequired, Label: "Ambulance", Kind: KindRadio, Required: true,
			Options: []Option{
				{Value: "required", Label: "Required (Requisition Tab)"},
				{Value: "notrequired", Label: "Not Required"},
			},
		},
		{
			ID: FieldAmbulanceReason, Label: "Reason", Kind: KindTextarea,
			RequiredIf: FieldEquals(FieldAmbulanceRequired, "notrequired"),
			VisibleIf:  FieldEquals(FieldAmbulanceRequired, "notrequired"),
		},
	}
}

func otherDetailsField() []FieldSpec {
	return []FieldSpec{
		{ID: FieldOtherDetails, Label: "Any Other Details", Kind: KindTextarea},
	}
}

func join(groups ...[]FieldSpec) []FieldSpec {
	var out []FieldSpec
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// =============================================================================
// Coverage Schemas
// =============================================================================

func definitions() []*CoverageSchema {
	return []*CoverageSchema{
		{
			Type: domain.CoverageIntegration,
			Fields: join(
				[]FieldSpec{
					{
						ID: FieldIntegrationFacility, Label: "Integration Facility", Kind: KindSelect, Required: true,
						Options: []Option{
							{Value: "SIF-1", Label: "SIF-1"},
							{Value: "SIF-2", Label: "SIF-2"},
							{Value: "other", Label: "ANY OTHER (Specify)"},
						},
					},
				},
				articleFields(),
				inchargeFields(),
				ambulanceFields(),
				otherDetailsField(),
			),
			Sections: []PrintSection{{
				ID: "integration", Title: "INTEGRATION TEST", Indicator: FieldIntegrationFacility,
				FieldIDs: []string{
					FieldIntegrationFacility, FieldArticleDetails, FieldWorkDescription,
					FieldActivityInchargeName, FieldActivityFromDate, FieldActivityToDate,
					FieldAmbulanceRequired,
				},
			}},
		},
		{
			Type: domain.CoverageStaticTest,
			Fields: join(
				[]FieldSpec{
					{
						ID: FieldTestBed, Label: "Test Bed", Kind: KindSelect, Required: true,
						Options: []Option{
							{Value: "STB-1", Label: "STB-1"},
							{Value: "STB-2", Label: "STB-2"},
							{Value: "HAT", Label: "HAT"},
						},
					},
				},
				articleFields(),
				tarbFields(),
				testControllerFields(),
				ambulanceFields(),
				otherDetailsField(),
			),
			Sections: []PrintSection{{
				ID: "staticTest", Title: "STATIC TEST", Indicator: FieldTestBed,
				FieldIDs: []string{
					FieldTestBed, FieldDateOfTest, FieldTestScheduleTime, FieldTarbClearance,
					FieldTestControllerName, FieldTestControllerDesignation, FieldReferenceNo,
				},
			}},
		},
		{
			Type: domain.CoverageThermostructural,
			Fields: join(
				[]FieldSpec{
					{ID: FieldTestFacility, Label: "Test Facility", Kind: KindText, Required: true},
				},
				articleFields(),
				tarbFields(),
				testControllerFields(),
				ambulanceFields(),
				otherDetailsField(),
			),
			Sections: []PrintSection{{
				ID: "thermostructural", Title: "THERMOSTRUCTURAL TEST", Indicator: FieldTestFacility,
				FieldIDs: []string{
					FieldTestFacility, FieldArticleDetails, FieldDateOfTest,
					FieldTestScheduleTime, FieldTarbClearance, FieldTestControllerName,
				},
			}},
		},
		{
			Type: domain.CoveragePressureTest,
			Fields: join(
				[]FieldSpec{
					{ID: FieldTestRig, Label: "Test Rig", Kind: KindText, Required: true},
					{ID: FieldMaxTestPressure, Label: "Maximum Test Pressure", Kind: KindText, Required: true},
				},
				articleFields(),
				tarbFields(),
				testControllerFields(),
				ambulanceFields(),
				otherDetailsField(),
			),
			Sections: []PrintSection{{
				ID: "pressureTest", Title: "PRESSURE TEST", Indicator: FieldTestRig,
				FieldIDs: []string{
					FieldTestRig, FieldMaxTestPressure, FieldArticleDetails, FieldDateOfTest,
					FieldTestScheduleTime, FieldTestControllerName,
				},
			}},
		},
		{
			Type: domain.CoverageGRT,
			Fields: join(
				[]FieldSpec{
					{ID: FieldGRTFacility, Label: "GRT Facility", Kind: KindText, Required: true},
				},
				articleFields(),
				testControllerFields(),
				ambulanceFields(),
				otherDetailsField(),
			),
			Sections: []PrintSection{{
				ID: "grt", Title: "GRT", Indicator: FieldGRTFacility,
				FieldIDs: []string{
					FieldGRTFacility, FieldArticleDetails, FieldDateOfTest,
					FieldTestScheduleTime, FieldTestControllerName,
				},
			}},
		},
		{
			Type: domain.CoverageAlignment,
			Fields: join(
				[]FieldSpec{
					{ID: FieldInspectionBay, Label: "Inspection Bay", Kind: KindText, Required: true},
				},
				articleFields(),
				[]FieldSpec{
					{ID: FieldDateOfTest, Label: "Date of Inspection", Kind: KindDate, Required: true},
					{ID: FieldTestScheduleTime, Label: "Scheduled Time", Kind: KindTime, Required: true},
				},
				ambulanceFields(),
				otherDetailsField(),
			),
			Sections: []PrintSection{{
				ID: "alignment", Title: "ALIGNMENT INSPECTION", Indicator: FieldInspectionBay,
				FieldIDs: []string{
					FieldInspectionBay, FieldArticleDetails, FieldDateOfTest, FieldTestScheduleTime,
				},
			}},
		},
		{
			Type: domain.CoverageRadiography,
			Fields: join(
				[]FieldSpec{
					{
						ID: FieldWorkCentre, Label: "Work Centre", Kind: KindSelect, Required: true,
						Options: []Option{
							{Value: "LARC", Label: "LARC"},
							{Value: "NDED", Label: "NDED"},
							{Value: "other", Label: "ANY OTHER (Specify)"},
						},
					},
					{
						ID: FieldWorkCentreOther, Label: "Specify Work Centre", Kind: KindText,
						RequiredIf: FieldEquals(FieldWorkCentre, "other"),
						VisibleIf:  FieldEquals(FieldWorkCentre, "other"),
					},
				},
				articleFields(),
				tarbFields(),
				[]FieldSpec{
					{ID: FieldTestControllerName, Label: "Test Controller Name", Kind: KindText, Required: true},
					{ID: FieldTestControllerDesignation, Label: "Test Controller Designation", Kind: KindText, Required: true},
					{ID: FieldDateOfTest, Label: "Date of Test (From)", Kind: KindDate, Required: true},
					{ID: FieldTestToDate, Label: "Date of Test (To)", Kind: KindDate, Required: true},
					{ID: FieldTestScheduleTime, Label: "Scheduled Time of Test", Kind: KindTime, Required: true},
					{
						ID: FieldActivitySchedule, Label: "Activity Schedule", Kind: KindRadio, Required: true,
						Options: []Option{
							{Value: "available", Label: "Available Enclose"},
							{Value: "notavailable", Label: "Not Available Reason"},
						},
					},
					{
						ID: FieldActivityScheduleFile, Label: "Activity Schedule Enclosure", Kind: KindFile,
						RequiredIf: FieldEquals(FieldActivitySchedule, "available"),
						VisibleIf:  FieldEquals(FieldActivitySchedule, "available"),
					},
					{
						ID: FieldActivityScheduleReason, Label: "Reason", Kind: KindTextarea,
						RequiredIf: FieldEquals(FieldActivitySchedule, "notavailable"),
						VisibleIf:  FieldEquals(FieldActivitySchedule, "notavailable"),
					},
				},
				ambulanceFields(),
				otherDetailsField(),
			),
			Sections: []PrintSection{{
				ID: "radiography", Title: "RADIOGRAPHY", Indicator: FieldWorkCentre,
				FieldIDs: []string{
					FieldWorkCentre, FieldWorkCentreOther, FieldArticleDetails, FieldWorkDescription,
					FieldTarbClearance, FieldTestControllerName, FieldDateOfTest, FieldTestToDate,
					FieldTestScheduleTime, FieldAmbulanceRequired,
				},
			}},
		},
		{
			Type: domain.CoverageHydrobasin,
			Fields: join(
				[]FieldSpec{
					{ID: FieldBasinFacility, Label: "Hydrobasin Facility", Kind: KindText, Required: true},
				},
				articleFields(),
				testControllerFields(),
				ambulanceFields(),
				otherDetailsField(),
			),
			Sections: []PrintSection{{
				ID: "hydrobasin", Title: "HYDROBASIN", Indicator: FieldBasinFacility,
				FieldIDs: []string{
					FieldBasinFacility, FieldArticleDetails, FieldDateOfTest,
					FieldTestScheduleTime, FieldTestControllerName,
				},
			}},
		},
		{
			Type: domain.CoverageTransportation,
			Fields: []FieldSpec{
				{ID: FieldTransportation, Label: "Transportation", Kind: KindTextarea, Required: true},
				{ID: FieldTransScheduleTime, Label: "Transportation Schedule Time", Kind: KindTime, Required: true},
				{ID: FieldTransIncharge, Label: "Trans Incharge", Kind: KindText, Required: true},
				{ID: FieldVehicleDetails, Label: "Vehicle Details", Kind: KindText, Required: true},
				{ID: FieldDriverName, Label: "Driver Name", Kind: KindText, Required: true},
				{ID: FieldDriverDesignation, Label: "Driver Designation", Kind: KindText},
				{ID: FieldDriverAuth, Label: "Driver Authorization", Kind: KindFile},
			},
			Sections: []PrintSection{{
				ID: "transportation", Title: "TRANSPORTATION DETAILS", Indicator: FieldTransportation,
				FieldIDs: []string{
					FieldTransportation, FieldTransScheduleTime, FieldTransIncharge,
					FieldVehicleDetails, FieldDriverName, FieldDriverDesignation, FieldDriverAuth,
				},
			}},
		},
		{
			Type: domain.CoverageOther,
			Fields: []FieldSpec{
				{ID: FieldOtherDetails, Label: "Specify Type of Safety Coverage", Kind: KindTextarea, Required: true},
			},
			Sections: []PrintSection{{
				ID: "other", Title: "OTHER DETAILS", Indicator: FieldOtherDetails,
				FieldIDs: []string{FieldOtherDetails},
			}},
		},
	}
}
