package service

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"aceguard-demo/models"
	"aceguard-demo/report"
	"aceguard-demo/store"
)

const (
	baseFineExposure    = 12500000
	fineExposurePerRisk = 500000
	trendChartPoints    = 12
)

// DashboardMetrics are the headline numbers of the dashboard page
type DashboardMetrics struct {
	HighRiskOpen       int        `json:"high_risk_open"`
	OpenGaps           int        `json:"open_gaps"`
	MonitoredRepos     int        `json:"monitored_repos"`
	ClaimsInReview     int        `json:"claims_in_review"`
	FineExposure       float64    `json:"fine_exposure"`
	FineExposureLabel  string     `json:"fine_exposure_label"`
	LastScan           *time.Time `json:"last_scan,omitempty"`
	HasProhibitedIssue bool       `json:"has_prohibited_issue"`
}

// CompliancePosture splits repositories by scan outcome
type CompliancePosture struct {
	Compliant int `json:"compliant"`
	HighRisk  int `json:"high_risk"`
	Unscanned int `json:"unscanned"`
}

type Dashboard struct {
	Metrics DashboardMetrics    `json:"metrics"`
	Posture CompliancePosture   `json:"posture"`
	Trend   []models.TrendPoint `json:"trend"`
}

type DashboardService struct {
	store *store.Store
}

func NewDashboardService(s *store.Store) *DashboardService {
	return &DashboardService{store: s}
}

// GetDashboard derives the dashboard view from a store snapshot
func GetDashboard(snap store.Snapshot) Dashboard {
	highRiskOpen := models.CountHighRiskOpen(snap.Findings)

	metrics := DashboardMetrics{
		HighRiskOpen:   highRiskOpen,
		OpenGaps:       snap.Gaps.Open(),
		MonitoredRepos: len(snap.Repositories),
		FineExposure:   float64(baseFineExposure + fineExposurePerRisk*highRiskOpen),
	}
	metrics.FineExposureLabel = report.FormatFineExposure(metrics.FineExposure)

	for _, c := range snap.Claims {
		if c.Status.InReview() {
			metrics.ClaimsInReview++
		}
	}
	for _, f := range snap.Findings {
		if f.Bucket == models.BucketProhibited && f.Status == models.FindingStatusOpen {
			metrics.HasProhibitedIssue = true
			break
		}
	}

	var posture CompliancePosture
	for _, r := range snap.Repositories {
		switch {
		case !r.Scanned():
			posture.Unscanned++
		case r.HighRisk > 0:
			posture.HighRisk++
		default:
			posture.Compliant++
		}
		if r.Scanned() && (metrics.LastScan == nil || r.LastScan.After(*metrics.LastScan)) {
			ts := *r.LastScan
			metrics.LastScan = &ts
		}
	}

	return Dashboard{
		Metrics: metrics,
		Posture: posture,
		Trend:   PadTrend(snap.Trend, trendChartPoints),
	}
}

// PadTrend extends the series with zero-count weekly points until it has n
// points, then keeps the most recent n.
func PadTrend(trend []models.TrendPoint, n int) []models.TrendPoint {
	padded := append([]models.TrendPoint{}, trend...)
	next := time.Now().UTC()
	if len(padded) > 0 {
		if last, err := time.Parse(store.DateLayout, padded[len(padded)-1].Week); err == nil {
			next = last.AddDate(0, 0, 7)
		}
	}
	for len(padded) < n {
		padded = append(padded, models.TrendPoint{Week: next.Format(store.DateLayout), Count: 0})
		next = next.AddDate(0, 0, 7)
	}
	if len(padded) > n {
		padded = padded[len(padded)-n:]
	}
	return padded
}

func (ds *DashboardService) HandleAPIDashboard(c *fiber.Ctx) error {
	return c.JSON(GetDashboard(ds.store.Snapshot()))
}
