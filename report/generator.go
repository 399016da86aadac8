package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"aceguard-demo/models"
)

// Generator renders and saves report exports for one AceGuard report
type Generator struct {
	reportsDir string
	fontPath   string
	source     models.AceGuardReport
	compliance models.ComplianceData
	now        func() time.Time
}

// Document is a rendered export ready to be served or written to disk
type Document struct {
	Format   Format
	Filename string
	Content  []byte
}

func NewGenerator(reportsDir, fontPath string, source models.AceGuardReport, compliance models.ComplianceData) *Generator {
	return &Generator{
		reportsDir: reportsDir,
		fontPath:   fontPath,
		source:     source,
		compliance: compliance,
		now:        time.Now,
	}
}

// WithClock replaces the clock used for filenames and timestamps
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

func (g *Generator) Source() models.AceGuardReport {
	return g.source
}

func (g *Generator) Compliance(opts ComplianceOptions) ComplianceReport {
	return GenerateComplianceReport(g.compliance, opts, g.now())
}

// Summary returns the reports page headline numbers
func (g *Generator) Summary() models.ReportSummary {
	return Summarize(g.source, g.compliance.ComplianceScore.Overall)
}

// Render produces the export in the requested format
func (g *Generator) Render(format Format, opts ComplianceOptions) (Document, error) {
	now := g.now()
	doc := Document{Format: format}

	switch format {
	case FormatMarkdown:
		doc.Filename = Filename(format, g.source.Metadata.Repository, now)
		doc.Content = []byte(GenerateMarkdown(g.source))
	case FormatCSV:
		doc.Filename = Filename(format, g.source.Metadata.Repository, now)
		doc.Content = []byte(GenerateCSV(g.source.Appendices.CSVExport))
	case FormatJSON:
		doc.Filename = Filename(format, g.compliance.Repository.Name, now)
		data, err := json.MarshalIndent(GenerateComplianceReport(g.compliance, opts, now), "", "  ")
		if err != nil {
			return Document{}, fmt.Errorf("encoding compliance report: %w", err)
		}
		doc.Content = data
	case FormatPDF:
		font, err := FindFont(g.fontPath)
		if err != nil {
			return Document{}, err
		}
		doc.Filename = Filename(format, g.compliance.Repository.Name, now)
		data, err := RenderPDF(GenerateComplianceReport(g.compliance, opts, now), font)
		if err != nil {
			return Document{}, err
		}
		doc.Content = data
	default:
		return Document{}, fmt.Errorf("unsupported report format %q", format)
	}
	return doc, nil
}

// Save renders the export and writes it into the reports directory
func (g *Generator) Save(format Format, opts ComplianceOptions) (string, error) {
	doc, err := g.Render(format, opts)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(g.reportsDir, 0755); err != nil {
		return "", fmt.Errorf("creating reports directory: %w", err)
	}
	path := filepath.Join(g.reportsDir, doc.Filename)
	if err := os.WriteFile(path, doc.Content, 0644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}
