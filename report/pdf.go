package report

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/signintech/gopdf"

	"aceguard-demo/models"
)

// ErrNoFont is returned when no TrueType font is available for PDF output
var ErrNoFont = errors.New("no TrueType font found for PDF rendering")

// fontCandidates are probed in order when no font path is configured
var fontCandidates = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/Library/Fonts/Arial.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"C:\\Windows\\Fonts\\arial.ttf",
}

// FindFont returns the configured font when it exists, otherwise the first system candidate
func FindFont(configured string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err != nil {
			return "", fmt.Errorf("font %s: %w", configured, err)
		}
		return configured, nil
	}
	for _, candidate := range fontCandidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", ErrNoFont
}

const (
	pageMargin  = 40.0
	pageWidth   = 595.28
	pageHeight  = 841.89
	lineHeight  = 16.0
	contentWide = pageWidth - 2*pageMargin
)

type pdfWriter struct {
	pdf *gopdf.GoPdf
}

// RenderPDF lays out the compliance report on A4 pages using the font at fontPath
func RenderPDF(r ComplianceReport, fontPath string) ([]byte, error) {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	if err := pdf.AddTTFFont("body", fontPath); err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	w := &pdfWriter{pdf: pdf}
	w.newPage()

	if err := w.heading(r.Title, 20); err != nil {
		return nil, err
	}
	intro := []string{
		fmt.Sprintf("Repository: %s", r.Repository.Name),
		fmt.Sprintf("Generated: %s", r.GeneratedAt.Format("2006-01-02 15:04 UTC")),
		fmt.Sprintf("Compliance score: %d%% (%s)", r.ComplianceScore.Overall, RiskLevelText(r.ComplianceScore.Overall)),
	}
	for _, line := range intro {
		if err := w.text(line, 11); err != nil {
			return nil, err
		}
	}
	w.gap()

	for _, section := range r.Sections {
		if err := w.heading(section.Title, 15); err != nil {
			return nil, err
		}
		for _, line := range sectionLines(section) {
			if err := w.text(line, 10); err != nil {
				return nil, err
			}
		}
		w.gap()
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *pdfWriter) newPage() {
	w.pdf.AddPage()
	w.pdf.SetXY(pageMargin, pageMargin)
}

func (w *pdfWriter) ensureSpace(h float64) {
	if w.pdf.GetY()+h > pageHeight-pageMargin {
		w.newPage()
	}
}

func (w *pdfWriter) heading(text string, size float64) error {
	if err := w.pdf.SetFont("body", "", size); err != nil {
		return err
	}
	w.ensureSpace(size + 8)
	w.pdf.SetX(pageMargin)
	if err := w.pdf.Cell(nil, text); err != nil {
		return err
	}
	w.pdf.Br(size + 8)
	return nil
}

func (w *pdfWriter) text(text string, size float64) error {
	if err := w.pdf.SetFont("body", "", size); err != nil {
		return err
	}
	lines, err := w.pdf.SplitText(text, contentWide)
	if err != nil {
		// SplitText rejects empty strings
		lines = []string{text}
	}
	for _, line := range lines {
		w.ensureSpace(lineHeight)
		w.pdf.SetX(pageMargin)
		if err := w.pdf.Cell(nil, line); err != nil {
			return err
		}
		w.pdf.Br(lineHeight)
	}
	return nil
}

func (w *pdfWriter) gap() {
	w.pdf.Br(lineHeight / 2)
}

func sectionLines(s Section) []string {
	switch content := s.Content.(type) {
	case ExecutiveSummary:
		return []string{
			fmt.Sprintf("Overall score: %d%%", content.OverallScore),
			fmt.Sprintf("Risk level: %s", content.RiskLevel),
			fmt.Sprintf("Total findings: %d", content.TotalFindings),
			fmt.Sprintf("Prohibited findings: %d", content.ProhibitedFindings),
			fmt.Sprintf("High-risk findings: %d", content.HighRiskFindings),
			fmt.Sprintf("Potential fines: %s", FormatCurrency(content.PotentialFines)),
			fmt.Sprintf("Immediate actions: %d", content.ImmediateActions),
		}
	case []models.ComplianceMetric:
		var lines []string
		for _, m := range content {
			lines = append(lines, fmt.Sprintf("%s: %d%% (%s)", m.Name, m.Score, m.Status))
			for _, issue := range m.Issues {
				lines = append(lines, "  - "+issue)
			}
		}
		return lines
	case models.FinancialImpact:
		return []string{
			fmt.Sprintf("Prohibited practice fines: %s", FormatCurrency(content.PotentialFines.Prohibited)),
			fmt.Sprintf("High-risk fines: %s", FormatCurrency(content.PotentialFines.High)),
			fmt.Sprintf("Total potential fines: %s", FormatCurrency(content.PotentialFines.Total)),
			fmt.Sprintf("Immediate compliance costs: %s", FormatCurrency(content.ComplianceCosts.Immediate)),
			fmt.Sprintf("Annual compliance costs: %s", FormatCurrency(content.ComplianceCosts.Annual)),
		}
	case []models.ActionItem:
		var lines []string
		for _, item := range content {
			lines = append(lines,
				fmt.Sprintf("[%s] %s: %s", item.Priority, item.ID, item.Title),
				fmt.Sprintf("  %s", item.Description),
				fmt.Sprintf("  Owner: %s, deadline %s, effort %s", item.Owner, item.Deadline, item.EstimatedEffort))
		}
		return lines
	case models.ComplianceTimeline:
		var lines []string
		phases := []struct {
			label string
			items []string
		}{
			{"Immediate", content.Immediate},
			{"Short term", content.ShortTerm},
			{"Medium term", content.MediumTerm},
			{"Long term", content.LongTerm},
		}
		for _, phase := range phases {
			if len(phase.items) == 0 {
				continue
			}
			lines = append(lines, phase.label+": "+strings.Join(phase.items, "; "))
		}
		return lines
	}
	return []string{fmt.Sprint(s.Content)}
}
