// Package report renders AceGuard compliance reports as Markdown, CSV, JSON and PDF.
package report

import (
	"fmt"
	"strings"
	"time"

	"aceguard-demo/models"
)

// GenerateMarkdown renders the full AceGuard report document
func GenerateMarkdown(r models.AceGuardReport) string {
	var b strings.Builder

	b.WriteString("# AceGuard EU AI Act Compliance Report\n\n")

	b.WriteString("## 1. EXECUTIVE SUMMARY\n\n")
	b.WriteString(r.ExecutiveSummary)
	b.WriteString("\n\n")

	b.WriteString("## 2. INVENTORY TABLE\n\n")
	b.WriteString("| component | path(s) | lang | personal_data(Y/N) | risk_bucket |\n")
	b.WriteString("|-----------|---------|------|-------------------|-------------|\n")
	rows := make([]string, 0, len(r.Inventory))
	for _, item := range r.Inventory {
		rows = append(rows, fmt.Sprintf("| %s | %s | %s | %s | %s |",
			item.Component, strings.Join(item.Paths, ", "), item.Lang, item.PersonalData, item.RiskBucket))
	}
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("\n\n")

	b.WriteString("## 3. RISK-BUCKET JUSTIFICATION\n\n")
	justifications := make([]string, 0, len(r.RiskBucketJustification))
	for _, j := range r.RiskBucketJustification {
		justifications = append(justifications, fmt.Sprintf("- **%s**: %s - ```\n%s\n``` - %s",
			j.Component, j.Article, j.Evidence, j.ReasonLowerBucketsRejected))
	}
	b.WriteString(strings.Join(justifications, "\n\n"))
	b.WriteString("\n\n")

	b.WriteString("## 4. GAP ANALYSIS & MITIGATION PLAN\n\n")
	gaps := make([]string, 0, len(r.GapAnalysis))
	for _, g := range r.GapAnalysis {
		gaps = append(gaps, fmt.Sprintf("- **%s**: %s (%s) - %s - Deadline: %s",
			g.Component, g.Gap, g.Severity, g.Fix, g.Deadline))
	}
	b.WriteString(strings.Join(gaps, "\n"))
	b.WriteString("\n\n")

	b.WriteString("## 5. APPENDICES\n\n")

	b.WriteString("### A. UNKNOWN / AMBIGUOUS\n\n")
	unknown := make([]string, 0, len(r.Appendices.UnknownAmbiguous))
	for _, u := range r.Appendices.UnknownAmbiguous {
		unknown = append(unknown, fmt.Sprintf("- **%s** (%s): %s - %s", u.Component, u.Path, u.Reason, u.Recommendation))
	}
	b.WriteString(strings.Join(unknown, "\n"))
	b.WriteString("\n\n")

	b.WriteString("### B. SEARCH LOG\n\n")
	searches := make([]string, 0, len(r.Appendices.SearchLog))
	for _, s := range r.Appendices.SearchLog {
		searches = append(searches, fmt.Sprintf("- `%s`: %d matches - %s", s.Pattern, s.Matches, s.Context))
	}
	b.WriteString(strings.Join(searches, "\n"))
	b.WriteString("\n\n")

	b.WriteString("### C. Ready-to-paste CSV\n\n")
	b.WriteString("```csv\n")
	b.WriteString(GenerateCSV(r.Appendices.CSVExport))
	b.WriteString("\n```\n\n")

	b.WriteString("---\n")
	b.WriteString(fmt.Sprintf("*Report generated by %s on %s*\n", r.Metadata.AIModel, formatScanDate(r.Metadata.ScanDate)))
	b.WriteString(fmt.Sprintf("*Scan duration: %s*\n", r.Metadata.ScanDuration))

	return b.String()
}

func formatScanDate(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}
