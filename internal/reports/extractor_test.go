package reports

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedExtension(t *testing.T) {
	tests := []struct {
		filename string
		allowed  bool
	}{
		{"report.png", true},
		{"report.JPG", true},
		{"report.jpeg", true},
		{"report.gif", true},
		{"report.webp", true},
		{"report.pdf", false},
		{"report.txt", false},
		{"report", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.allowed, AllowedExtension(tt.filename), "filename=%q", tt.filename)
	}
}

func TestDataURI(t *testing.T) {
	uri := dataURI([]byte{0x1, 0x2}, "scan.webp")
	assert.True(t, strings.HasPrefix(uri, "data:image/webp;base64,"))

	// Unknown extensions default to PNG.
	uri = dataURI([]byte{0x1}, "scan.bin")
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}

func TestImageFormat(t *testing.T) {
	assert.Equal(t, "jpeg", imageFormat("a.jpg"))
	assert.Equal(t, "png", imageFormat("a.png"))
	assert.Equal(t, "png", imageFormat("a.unknown"))
}

func TestParseAnalysis(t *testing.T) {
	raw := `{
		"type": "Glucose Test",
		"levels": [
			{"name": "Fasting Glucose", "value": "105 mg/dL", "reference_range": "70-99 mg/dL",
			 "what_it_is": "Measures blood sugar after fasting.",
			 "your_level_means": "Slightly above normal.",
			 "why_it_matters": "Can indicate prediabetes.",
			 "possible_causes": "Diet, early Type II Diabetes"}
		],
		"concerns": ["Fasting glucose is slightly elevated; discuss with your doctor."]
	}`

	analysis, err := parseAnalysis(raw)
	require.NoError(t, err)
	assert.Equal(t, TestTypeGlucoseTest, analysis.Type)
	require.Len(t, analysis.Levels, 1)
	assert.Equal(t, "Fasting Glucose", analysis.Levels[0].Name)
	assert.Len(t, analysis.Concerns, 1)
}

func TestParseAnalysisStripsCodeFences(t *testing.T) {
	raw := "```json\n{\"type\":\"Blood Test\",\"levels\":[{\"name\":\"Hemoglobin\",\"value\":\"14.2 g/dL\"}],\"concerns\":[]}\n```"

	analysis, err := parseAnalysis(raw)
	require.NoError(t, err)
	assert.Equal(t, TestTypeBloodTest, analysis.Type)
	assert.Equal(t, "N/A", analysis.Levels[0].ReferenceRange)
}

func TestParseAnalysisMalformed(t *testing.T) {
	_, err := parseAnalysis("the patient seems fine")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed provider response")
}

func TestParseAnalysisNoLevels(t *testing.T) {
	_, err := parseAnalysis(`{"type":"Blood Test","levels":[],"concerns":[]}`)
	require.Error(t, err)
}
