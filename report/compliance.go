package report

import (
	"fmt"
	"strings"
	"time"

	"aceguard-demo/models"
)

const (
	SectionExecutiveSummary  = "executive_summary"
	SectionComplianceMetrics = "compliance_metrics"
	SectionFinancialImpact   = "financial_impact"
	SectionActionItems       = "action_items"
	SectionTimeline          = "timeline"

	// ProhibitedFineEUR is the maximum fine for a prohibited practice
	ProhibitedFineEUR = 35000000
)

// ComplianceOptions selects which sections the compliance report contains
type ComplianceOptions struct {
	ExecutiveSummary bool
	DetailedFindings bool
	ActionItems      bool
	FinancialImpact  bool
	Timeline         bool
}

// AllSections returns options with every section enabled
func AllSections() ComplianceOptions {
	return ComplianceOptions{
		ExecutiveSummary: true,
		DetailedFindings: true,
		ActionItems:      true,
		FinancialImpact:  true,
		Timeline:         true,
	}
}

// ExecutiveSummary is the headline block of the compliance report
type ExecutiveSummary struct {
	OverallScore       int     `json:"overall_score"`
	RiskLevel          string  `json:"risk_level"`
	TotalFindings      int     `json:"total_findings"`
	ProhibitedFindings int     `json:"prohibited_findings"`
	HighRiskFindings   int     `json:"high_risk_findings"`
	PotentialFines     float64 `json:"potential_fines"`
	ImmediateActions   int     `json:"immediate_actions"`
}

type Section struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content any    `json:"content"`
}

// ComplianceReport is the EU AI Act compliance report document
type ComplianceReport struct {
	Title            string                      `json:"title"`
	Repository       models.ComplianceRepository `json:"repository"`
	GeneratedAt      time.Time                   `json:"generated_at"`
	ComplianceScore  models.ComplianceScore      `json:"compliance_score"`
	RiskDistribution models.RiskDistribution     `json:"risk_distribution"`
	Sections         []Section                   `json:"sections"`
}

// Section returns the section of the given type, if present
func (r ComplianceReport) Section(sectionType string) (Section, bool) {
	for _, s := range r.Sections {
		if s.Type == sectionType {
			return s, true
		}
	}
	return Section{}, false
}

// GenerateComplianceReport assembles the sections enabled in opts, in a fixed order
func GenerateComplianceReport(data models.ComplianceData, opts ComplianceOptions, now time.Time) ComplianceReport {
	report := ComplianceReport{
		Title:            "EU AI Act Compliance Report",
		Repository:       data.Repository,
		GeneratedAt:      now.UTC(),
		ComplianceScore:  data.ComplianceScore,
		RiskDistribution: data.RiskDistribution,
		Sections:         []Section{},
	}

	if opts.ExecutiveSummary {
		report.Sections = append(report.Sections, Section{
			Type:    SectionExecutiveSummary,
			Title:   "Executive Summary",
			Content: summarize(data),
		})
	}
	if opts.DetailedFindings {
		report.Sections = append(report.Sections, Section{
			Type:    SectionComplianceMetrics,
			Title:   "Compliance Metrics",
			Content: data.Metrics,
		})
	}
	if opts.FinancialImpact {
		report.Sections = append(report.Sections, Section{
			Type:    SectionFinancialImpact,
			Title:   "Financial Impact Analysis",
			Content: data.FinancialImpact,
		})
	}
	if opts.ActionItems {
		report.Sections = append(report.Sections, Section{
			Type:    SectionActionItems,
			Title:   "Action Items & Recommendations",
			Content: data.ActionItems,
		})
	}
	if opts.Timeline {
		report.Sections = append(report.Sections, Section{
			Type:    SectionTimeline,
			Title:   "Compliance Roadmap",
			Content: data.Timeline,
		})
	}
	return report
}

func summarize(data models.ComplianceData) ExecutiveSummary {
	immediate := 0
	for _, item := range data.ActionItems {
		if item.Priority == "Critical" {
			immediate++
		}
	}
	return ExecutiveSummary{
		OverallScore:       data.ComplianceScore.Overall,
		RiskLevel:          summaryRiskLevel(data.ComplianceScore.Overall),
		TotalFindings:      data.RiskDistribution.Total(),
		ProhibitedFindings: data.RiskDistribution.Prohibited,
		HighRiskFindings:   data.RiskDistribution.High,
		PotentialFines:     data.FinancialImpact.PotentialFines.Total,
		ImmediateActions:   immediate,
	}
}

// summaryRiskLevel uses coarser thresholds than RiskLevelText
func summaryRiskLevel(score int) string {
	switch {
	case score < 50:
		return "Critical"
	case score < 70:
		return "High Risk"
	default:
		return "Moderate Risk"
	}
}

// RiskLevelText maps a compliance score to its risk label
func RiskLevelText(score int) string {
	switch {
	case score < 30:
		return "Critical"
	case score < 50:
		return "High Risk"
	case score < 70:
		return "Moderate Risk"
	default:
		return "Low Risk"
	}
}

// FormatCurrency formats whole euros the German way, e.g. "50.000.000 €"
func FormatCurrency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	digits := fmt.Sprintf("%.0f", amount)

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	b.WriteString(" €")
	return b.String()
}

// FormatFineExposure renders a compact amount: "€50k" below 100k, otherwise "€12.5M"
func FormatFineExposure(amount float64) string {
	if amount < 100000 {
		return fmt.Sprintf("€%.0fk", amount/1000)
	}
	return fmt.Sprintf("€%.1fM", amount/1000000)
}

// Summarize computes the headline numbers of an AceGuard report
func Summarize(r models.AceGuardReport, score int) models.ReportSummary {
	summary := models.ReportSummary{
		Repository:      r.Metadata.Repository,
		TotalComponents: len(r.Inventory),
		ComplianceScore: score,
	}
	for _, item := range r.Inventory {
		switch item.RiskBucket {
		case string(models.BucketProhibited):
			summary.ProhibitedCount++
		case string(models.BucketHighRisk):
			summary.HighRiskCount++
		}
	}
	for _, g := range r.GapAnalysis {
		if g.Severity == string(models.SeverityHigh) {
			summary.CriticalGaps++
		}
	}
	if summary.ProhibitedCount > 0 {
		summary.FinancialExposure = ProhibitedFineEUR
	}
	return summary
}
