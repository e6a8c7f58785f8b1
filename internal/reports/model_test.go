package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTestType(t *testing.T) {
	tests := []struct {
		raw  string
		want TestType
	}{
		{"Blood Test", TestTypeBloodTest},
		{"blood test", TestTypeBloodTest},
		{" Lipid Panel ", TestTypeLipidPanel},
		{"THYROID PANEL", TestTypeThyroidPanel},
		{"Complete Metabolic Panel", TestTypeOther},
		{"", TestTypeOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTestType(tt.raw), "raw=%q", tt.raw)
	}
}

func TestAnalysisNormalize(t *testing.T) {
	a := &Analysis{
		Type: "glucose test",
		Levels: []ParameterLevel{
			{Name: "Fasting Glucose", Value: "105 mg/dL"},
			{Name: "HbA1c", Value: "5.9%", ReferenceRange: "4.0-5.6%"},
		},
	}

	a.Normalize()

	assert.Equal(t, TestTypeGlucoseTest, a.Type)
	assert.Equal(t, "N/A", a.Levels[0].ReferenceRange)
	assert.Equal(t, "4.0-5.6%", a.Levels[1].ReferenceRange)
	assert.NotNil(t, a.Concerns)
	assert.Empty(t, a.Concerns)
}
