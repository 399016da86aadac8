package report

import (
	"strings"

	"aceguard-demo/models"
)

// CSVHeader is the first line of the mitigation plan export
const CSVHeader = "module,risk_level,personal_data,mitigation,next_review"

// GenerateCSV renders the mitigation plan. Rows are newline separated with no trailing newline.
func GenerateCSV(items []models.CSVExportItem) string {
	lines := make([]string, 0, len(items)+1)
	lines = append(lines, CSVHeader)
	for _, item := range items {
		lines = append(lines, strings.Join([]string{
			escapeCsv(item.Module),
			escapeCsv(item.RiskLevel),
			escapeCsv(item.PersonalData),
			escapeCsv(item.Mitigation),
			escapeCsv(item.NextReview),
		}, ","))
	}
	return strings.Join(lines, "\n")
}

func escapeCsv(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return "\"" + strings.ReplaceAll(value, "\"", "\"\"") + "\""
	}
	return value
}
