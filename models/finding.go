package models

import "strings"

// Bucket is the EU AI Act risk classification of a component
type Bucket string

const (
	BucketProhibited Bucket = "Prohibited"
	BucketHighRisk   Bucket = "High-Risk"
	BucketLimited    Bucket = "Limited-Risk"
	BucketMinimal    Bucket = "Minimal"
)

// ParseBucket accepts the canonical names plus the short "Limited" spelling
func ParseBucket(s string) (Bucket, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prohibited":
		return BucketProhibited, true
	case "high-risk", "high risk", "high":
		return BucketHighRisk, true
	case "limited-risk", "limited risk", "limited":
		return BucketLimited, true
	case "minimal", "minimal-risk":
		return BucketMinimal, true
	}
	return "", false
}

// Severity of a finding
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// IsHighRisk reports whether the severity counts towards high-risk totals
func (s Severity) IsHighRisk() bool {
	return s == SeverityHigh || s == SeverityCritical
}

func ParseSeverity(s string) (Severity, bool) {
	for _, sev := range []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical} {
		if strings.EqualFold(s, string(sev)) {
			return sev, true
		}
	}
	return "", false
}

// FindingStatus is the remediation state of a finding
type FindingStatus string

const (
	FindingStatusOpen       FindingStatus = "Open"
	FindingStatusInProgress FindingStatus = "In Progress"
	FindingStatusResolved   FindingStatus = "Resolved"
)

func ParseFindingStatus(s string) (FindingStatus, bool) {
	for _, st := range []FindingStatus{FindingStatusOpen, FindingStatusInProgress, FindingStatusResolved} {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return "", false
}

// CodeLine is a single numbered line of an evidence snippet
type CodeLine struct {
	Line    int    `json:"line"`
	Content string `json:"content"`
}

// Evidence points at the code that triggered a finding
type Evidence struct {
	Article       string     `json:"article"`
	FilePath      string     `json:"file_path"`
	ViolatingLine int        `json:"violating_line"`
	CodeSnippet   []CodeLine `json:"code_snippet"`
}

// Finding represents a detected compliance issue in a component
type Finding struct {
	ID          string        `json:"id"`
	Repo        string        `json:"repo"`
	Component   string        `json:"component"`
	Path        string        `json:"path,omitempty"`
	Bucket      Bucket        `json:"bucket"`
	Severity    Severity      `json:"severity"`
	Status      FindingStatus `json:"status"`
	Evidence    Evidence      `json:"evidence"`
	Analysis    string        `json:"analysis,omitempty"`
	Remediation string        `json:"remediation,omitempty"`
}

// IsHighRiskOpen reports whether the finding is High/Critical and still open
func (f Finding) IsHighRiskOpen() bool {
	return f.Severity.IsHighRisk() && f.Status == FindingStatusOpen
}

// Clone returns a copy that shares no slices with f
func (f Finding) Clone() Finding {
	if f.Evidence.CodeSnippet != nil {
		f.Evidence.CodeSnippet = append([]CodeLine(nil), f.Evidence.CodeSnippet...)
	}
	return f
}

// CountHighRisk returns the number of High or Critical findings
func CountHighRisk(findings []Finding) int {
	n := 0
	for _, f := range findings {
		if f.Severity.IsHighRisk() {
			n++
		}
	}
	return n
}

// CountHighRiskOpen returns the number of open High or Critical findings
func CountHighRiskOpen(findings []Finding) int {
	n := 0
	for _, f := range findings {
		if f.IsHighRiskOpen() {
			n++
		}
	}
	return n
}
