package models

// AceGuardReport is the full compliance report for a single repository scan
type AceGuardReport struct {
	ExecutiveSummary        string              `json:"executive_summary"`
	Inventory               []InventoryItem     `json:"inventory"`
	RiskBucketJustification []RiskJustification `json:"risk_bucket_justification"`
	GapAnalysis             []GapAnalysis       `json:"gap_analysis"`
	Appendices              ReportAppendices    `json:"appendices"`
	Metadata                ReportMetadata      `json:"metadata"`
}

// InventoryItem is one AI component discovered in the repository
type InventoryItem struct {
	Component    string   `json:"component"`
	Paths        []string `json:"paths"`
	Lang         string   `json:"lang"`
	PersonalData string   `json:"personal_data"` // Y or N
	RiskBucket   string   `json:"risk_bucket"`
}

// RiskJustification explains why a component landed in its risk bucket
type RiskJustification struct {
	Component                  string `json:"component"`
	Article                    string `json:"article"`
	Evidence                   string `json:"evidence"`
	ReasonLowerBucketsRejected string `json:"reason_lower_buckets_rejected"`
}

// GapAnalysis is a mitigation plan entry
type GapAnalysis struct {
	Component string `json:"component"`
	Gap       string `json:"gap"`
	Severity  string `json:"severity"`
	Fix       string `json:"fix"`
	Deadline  string `json:"deadline"`
}

type ReportAppendices struct {
	UnknownAmbiguous []UnknownItem    `json:"unknown_ambiguous"`
	SearchLog        []SearchLogEntry `json:"search_log"`
	CSVExport        []CSVExportItem  `json:"csv_export"`
}

// UnknownItem is a component whose AI usage could not be classified
type UnknownItem struct {
	Component      string `json:"component"`
	Path           string `json:"path"`
	Reason         string `json:"reason"`
	Recommendation string `json:"recommendation"`
}

type SearchLogEntry struct {
	Pattern string `json:"pattern"`
	Matches int    `json:"matches"`
	Context string `json:"context"`
}

// CSVExportItem is one row of the ready-to-paste mitigation CSV
type CSVExportItem struct {
	Module       string `json:"module"`
	RiskLevel    string `json:"risk_level"`
	PersonalData string `json:"personal_data"`
	Mitigation   string `json:"mitigation"`
	NextReview   string `json:"next_review"`
}

type ReportMetadata struct {
	ScanDate        string `json:"scan_date"`
	Repository      string `json:"repository"`
	TotalComponents int    `json:"total_components"`
	ScanDuration    string `json:"scan_duration"`
	AIModel         string `json:"ai_model"`
}

// ReportSummary holds the headline numbers shown on the reports page
type ReportSummary struct {
	Repository        string  `json:"repository"`
	ProhibitedCount   int     `json:"prohibited_count"`
	HighRiskCount     int     `json:"high_risk_count"`
	TotalComponents   int     `json:"total_components"`
	CriticalGaps      int     `json:"critical_gaps"`
	FinancialExposure float64 `json:"financial_exposure"`
	ComplianceScore   int     `json:"compliance_score"`
}
