package reports

import (
	"fmt"
	"strings"
)

// NotFoundMessage is returned when no stored report carries the id.
func NotFoundMessage(id string) string {
	return fmt.Sprintf("I couldn't find any reports for ID %s. Please double-check the Report ID and try again, or contact our office for assistance.", id)
}

// Render formats every matching report as conversational text for the
// narrative layer. Ambiguity from id collisions is surfaced, not
// resolved: each match gets its own block.
func Render(id string, matches []StoredReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "I found %d report(s) for ID %s:\n\n", len(matches), id)

	for idx, report := range matches {
		testType := report.TestType
		if testType == "" {
			testType = "Unknown Test"
		}
		date := report.Timestamp
		if date == "" {
			date = "Not available"
		}
		fmt.Fprintf(&sb, "Report %d: %s\n", idx+1, testType)
		fmt.Fprintf(&sb, "Date: %s\n\n", date)

		names := strings.Split(report.ParameterNames, listSeparator)
		values := strings.Split(report.Values, listSeparator)
		refRanges := strings.Split(report.ReferenceRanges, listSeparator)
		for i, name := range names {
			if i < len(values) && i < len(refRanges) {
				fmt.Fprintf(&sb, "• %s: %s (Normal range: %s)\n", name, values[i], refRanges[i])
			}
		}
		sb.WriteString("\n")

		if report.WhatItIs != "" {
			fmt.Fprintf(&sb, "What this test measures: %s\n\n", report.WhatItIs)
		}
		if report.YourLevelMeans != "" {
			fmt.Fprintf(&sb, "What your results mean: %s\n\n", report.YourLevelMeans)
		}
		if report.WhyItMatters != "" {
			fmt.Fprintf(&sb, "Why it matters: %s\n\n", report.WhyItMatters)
		}
		if report.ConcernsSummary != "" && !strings.EqualFold(report.ConcernsSummary, "none") {
			fmt.Fprintf(&sb, "Important notes: %s\n\n", report.ConcernsSummary)
		}

		sb.WriteString("---\n\n")
	}

	return sb.String()
}
