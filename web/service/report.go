package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"aceguard-demo/report"
)

type ReportService struct {
	generator *report.Generator
}

func NewReportService(g *report.Generator) *ReportService {
	return &ReportService{generator: g}
}

// complianceOptions reads the section toggles; every section defaults to on
func complianceOptions(c *fiber.Ctx) report.ComplianceOptions {
	return report.ComplianceOptions{
		ExecutiveSummary: c.QueryBool("executive_summary", true),
		DetailedFindings: c.QueryBool("detailed_findings", true),
		ActionItems:      c.QueryBool("action_items", true),
		FinancialImpact:  c.QueryBool("financial_impact", true),
		Timeline:         c.QueryBool("timeline", true),
	}
}

// HandleAPIReportDownload serves /reports/:format as an attachment
func (rs *ReportService) HandleAPIReportDownload(c *fiber.Ctx) error {
	format, err := report.ParseFormat(c.Params("format"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Unsupported report format", "details": err.Error()})
	}

	doc, err := rs.generator.Render(format, complianceOptions(c))
	if err != nil {
		status := 500
		if errors.Is(err, report.ErrNoFont) {
			status = 503
		}
		return c.Status(status).JSON(fiber.Map{
			"error":   "Failed to generate report",
			"details": err.Error(),
		})
	}

	c.Set("Content-Type", format.ContentType())
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", doc.Filename))
	return c.Send(doc.Content)
}

func (rs *ReportService) HandleAPICompliance(c *fiber.Ctx) error {
	return c.JSON(rs.generator.Compliance(complianceOptions(c)))
}

func (rs *ReportService) HandleAPISummary(c *fiber.Ctx) error {
	summary := rs.generator.Summary()
	return c.JSON(fiber.Map{
		"summary":                  summary,
		"financial_exposure_label": report.FormatCurrency(summary.FinancialExposure),
		"risk_level":               report.RiskLevelText(summary.ComplianceScore),
	})
}

// HandleReportView renders the AceGuard report as an HTML page
func (rs *ReportService) HandleReportView(c *fiber.Ctx) error {
	src := rs.generator.Source()
	summary := rs.generator.Summary()
	return c.Render("report", fiber.Map{
		"Title":      "AceGuard EU AI Act Compliance Report",
		"Report":     src,
		"Summary":    summary,
		"RiskLevel":  report.RiskLevelText(summary.ComplianceScore),
		"Exposure":   report.FormatCurrency(summary.FinancialExposure),
		"Paragraphs": strings.Split(src.ExecutiveSummary, "\n\n"),
		"CSV":        report.GenerateCSV(src.Appendices.CSVExport),
	})
}
