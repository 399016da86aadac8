package report

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// Format is an export format offered on the reports page
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatPDF      Format = "pdf"
	FormatJSON     Format = "json"
)

// ParseFormat accepts a format name or its usual file extension
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "csv":
		return FormatCSV, nil
	case "pdf":
		return FormatPDF, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported report format %q", s)
}

// ContentType returns the MIME type served for the format
func (f Format) ContentType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// Filename builds the download name for a report of repository generated on date
func Filename(f Format, repository string, date time.Time) string {
	day := date.Format("2006-01-02")
	name := path.Base(repository)
	switch f {
	case FormatMarkdown:
		return fmt.Sprintf("AceGuard_Report_%s_%s.md", name, day)
	case FormatCSV:
		return fmt.Sprintf("aceguard_mitigation_plan_%s.csv", day)
	case FormatPDF:
		return fmt.Sprintf("eu-ai-act-compliance-report-%s-%s.pdf", name, day)
	default:
		return fmt.Sprintf("eu-ai-act-compliance-report-%s-%s.json", name, day)
	}
}
