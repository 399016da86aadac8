package models

import "time"

// Repository represents a monitored code repository
type Repository struct {
	Name       string     `json:"name"`
	Branch     string     `json:"branch"`
	LastScan   *time.Time `json:"last_scan,omitempty"`
	HighRisk   int        `json:"high_risk"`
	IsScanning bool       `json:"is_scanning"`
}

// Scanned reports whether the repository has completed at least one scan
func (r Repository) Scanned() bool {
	return r.LastScan != nil && !r.LastScan.IsZero()
}

// ConnectableRepository is an entry of the connect-repository catalogue
type ConnectableRepository struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ScanRecord is one row of the scan history derived from repositories
type ScanRecord struct {
	Repository string    `json:"repository"`
	Branch     string    `json:"branch"`
	ScannedAt  time.Time `json:"scanned_at"`
	HighRisk   int       `json:"high_risk"`
	Status     string    `json:"status"`
	Duration   string    `json:"duration"`
	DiffHash   string    `json:"diff_hash"`
}

const (
	ScanStatusIssuesFound = "Issues Found"
	ScanStatusCompliant   = "Compliant"
)
