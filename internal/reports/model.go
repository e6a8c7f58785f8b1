// Package reports implements lab-report analysis, persistence, and
// lookup. An uploaded report image is converted into a structured
// Analysis by an external extraction provider, appended to the report
// row store under a short numeric id, and later rendered back as
// conversational text.
package reports

import "strings"

// TestType enumerates recognized medical test categories.
type TestType string

const (
	TestTypeBloodTest      TestType = "Blood Test"
	TestTypeGlucoseTest    TestType = "Glucose Test"
	TestTypeLipidPanel     TestType = "Lipid Panel"
	TestTypeHormonePanel   TestType = "Hormone Panel"
	TestTypeKidneyFunction TestType = "Kidney Function"
	TestTypeLiverFunction  TestType = "Liver Function"
	TestTypeThyroidPanel   TestType = "Thyroid Panel"
	TestTypeUrinalysis     TestType = "Urinalysis"
	TestTypeTestosterone   TestType = "Testosterone"
	TestTypeOther          TestType = "Other"
)

var knownTestTypes = []TestType{
	TestTypeBloodTest,
	TestTypeGlucoseTest,
	TestTypeLipidPanel,
	TestTypeHormonePanel,
	TestTypeKidneyFunction,
	TestTypeLiverFunction,
	TestTypeThyroidPanel,
	TestTypeUrinalysis,
	TestTypeTestosterone,
	TestTypeOther,
}

// NormalizeTestType maps free-form provider output onto the enumeration,
// falling back to Other.
func NormalizeTestType(raw string) TestType {
	trimmed := strings.TrimSpace(raw)
	for _, t := range knownTestTypes {
		if strings.EqualFold(trimmed, string(t)) {
			return t
		}
	}
	return TestTypeOther
}

// ParameterLevel is a single test parameter with layman explanations.
type ParameterLevel struct {
	Name           string `json:"name"`
	Value          string `json:"value"`
	ReferenceRange string `json:"reference_range"`
	WhatItIs       string `json:"what_it_is"`
	YourLevelMeans string `json:"your_level_means"`
	WhyItMatters   string `json:"why_it_matters"`
	PossibleCauses string `json:"possible_causes,omitempty"`
}

// Analysis is the structured result of analyzing one report image.
type Analysis struct {
	Type     TestType         `json:"type"`
	Levels   []ParameterLevel `json:"levels"`
	Concerns []string         `json:"concerns"`
}

// Normalize cleans up provider output in place: the test type is mapped
// onto the enumeration, missing reference ranges default to "N/A", and
// concerns is never nil.
func (a *Analysis) Normalize() {
	a.Type = NormalizeTestType(string(a.Type))
	for i := range a.Levels {
		if strings.TrimSpace(a.Levels[i].ReferenceRange) == "" {
			a.Levels[i].ReferenceRange = "N/A"
		}
	}
	if a.Concerns == nil {
		a.Concerns = []string{}
	}
}
