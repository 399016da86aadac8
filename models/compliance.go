package models

// RiskTier describes one EU AI Act risk tier and its fine exposure
type RiskTier struct {
	Key            string `json:"key"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Fine           string `json:"fine"`
	Recommendation string `json:"recommendation"`
}

type ComplianceRepository struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	LastScan        string `json:"last_scan"`
	TotalComponents int    `json:"total_components"`
	AIComponents    int    `json:"ai_components"`
}

type ComplianceScore struct {
	Overall   int            `json:"overall"`
	Breakdown map[string]int `json:"breakdown"`
}

// RiskDistribution counts components per risk tier
type RiskDistribution struct {
	Prohibited int `json:"prohibited"`
	High       int `json:"high"`
	Limited    int `json:"limited"`
	Minimal    int `json:"minimal"`
}

// Total returns the number of classified components
func (d RiskDistribution) Total() int {
	return d.Prohibited + d.High + d.Limited + d.Minimal
}

type ComplianceMetric struct {
	Name   string   `json:"name"`
	Score  int      `json:"score"`
	Status string   `json:"status"`
	Issues []string `json:"issues"`
}

type PotentialFines struct {
	Prohibited float64 `json:"prohibited"`
	High       float64 `json:"high"`
	Total      float64 `json:"total"`
}

type ComplianceCosts struct {
	Immediate float64 `json:"immediate"`
	Annual    float64 `json:"annual"`
}

type FinancialImpact struct {
	PotentialFines  PotentialFines  `json:"potential_fines"`
	ComplianceCosts ComplianceCosts `json:"compliance_costs"`
}

// ActionItem is a prioritised remediation task
type ActionItem struct {
	ID              string `json:"id"`
	Priority        string `json:"priority"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Deadline        string `json:"deadline"`
	Owner           string `json:"owner"`
	Status          string `json:"status"`
	EstimatedEffort string `json:"estimated_effort"`
}

type ComplianceTimeline struct {
	Immediate  []string `json:"immediate"`
	ShortTerm  []string `json:"short_term"`
	MediumTerm []string `json:"medium_term"`
	LongTerm   []string `json:"long_term"`
}

// ComplianceData is the input for the EU AI Act compliance report
type ComplianceData struct {
	Repository       ComplianceRepository `json:"repository"`
	ComplianceScore  ComplianceScore      `json:"compliance_score"`
	RiskDistribution RiskDistribution     `json:"risk_distribution"`
	Metrics          []ComplianceMetric   `json:"compliance_metrics"`
	FinancialImpact  FinancialImpact      `json:"financial_impact"`
	ActionItems      []ActionItem         `json:"action_items"`
	Timeline         ComplianceTimeline   `json:"timeline"`
}
