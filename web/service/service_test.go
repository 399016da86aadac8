package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aceguard-demo/models"
	"aceguard-demo/seed"
	"aceguard-demo/store"
)

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestScanHistory(t *testing.T) {
	repos := []models.Repository{
		{Name: "aceguard/old", Branch: "main", LastScan: ts("2025-06-01T00:00:00Z"), HighRisk: 0},
		{Name: "aceguard/unscanned", Branch: "main"},
		{Name: "ai", Branch: "dev", LastScan: ts("2025-07-01T00:00:00Z"), HighRisk: 2},
	}

	history := ScanHistory(repos)
	require.Len(t, history, 2)

	assert.Equal(t, "ai", history[0].Repository)
	assert.Equal(t, models.ScanStatusIssuesFound, history[0].Status)
	assert.Equal(t, "ai...", history[0].DiffHash)

	assert.Equal(t, "aceguard/old", history[1].Repository)
	assert.Equal(t, models.ScanStatusCompliant, history[1].Status)
	assert.Equal(t, "ace...", history[1].DiffHash)
	assert.Equal(t, "23:45:12", history[1].Duration)
}

func TestNextClaimID(t *testing.T) {
	tests := []struct {
		name   string
		claims []models.Claim
		want   string
	}{
		{"empty ledger", nil, "CL-1"},
		{"seed ledger", seed.Claims(), "CL-10"},
		{"gaps in numbering", []models.Claim{{ClaimID: "CL-3"}, {ClaimID: "CL-12"}, {ClaimID: "CL-5"}}, "CL-13"},
		{"non numeric ids ignored", []models.Claim{{ClaimID: "CL-x"}, {ClaimID: "CL-2"}}, "CL-3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextClaimID(tt.claims))
		})
	}
}

func TestEligibleFindings(t *testing.T) {
	findings := append(seed.DemoFindings(), seed.Findings()...)
	eligible := EligibleFindings(findings)

	require.Len(t, eligible, 6)
	for _, f := range eligible {
		assert.True(t, f.Severity.IsHighRisk(), f.ID)
	}
	assert.NotNil(t, EligibleFindings(nil))
}

func TestPadTrend(t *testing.T) {
	trend := seed.Trend()

	padded := PadTrend(trend, 12)
	require.Len(t, padded, 12)
	assert.Equal(t, trend, padded[:11])
	assert.Equal(t, models.TrendPoint{Week: "2025-07-21", Count: 0}, padded[11])

	trimmed := PadTrend(trend, 4)
	require.Len(t, trimmed, 4)
	assert.Equal(t, "2025-06-23", trimmed[0].Week)
	assert.Equal(t, "2025-07-14", trimmed[3].Week)

	assert.Len(t, trend, 11, "input must not be modified")
}

func TestIsStale(t *testing.T) {
	now := time.Date(2025, 7, 23, 0, 0, 0, 0, time.UTC)

	assert.False(t, IsStale(models.Repository{}, now))
	assert.False(t, IsStale(models.Repository{LastScan: ts("2025-07-16T21:12:01Z")}, now))
	assert.True(t, IsStale(models.Repository{LastScan: ts("2025-06-28T10:30:00Z")}, now))
}

func TestFindingFilter_Match(t *testing.T) {
	f := seed.Findings()[1]

	assert.True(t, FindingFilter{}.Match(f))
	assert.True(t, FindingFilter{Repo: "aceguard/fintech-backend", Status: models.FindingStatusInProgress}.Match(f))
	assert.False(t, FindingFilter{Status: models.FindingStatusOpen}.Match(f))
	assert.False(t, FindingFilter{Bucket: models.BucketLimited}.Match(f))
}

func TestGetDashboard_AfterDemoScan(t *testing.T) {
	st := store.New(seed.Initial(), seed.Demo(), store.WithAddDelay(0))
	<-mustAdd(t, st)
	st.RunScan(seed.DemoRepositoryName)

	d := GetDashboard(st.Snapshot())
	assert.Equal(t, 5, d.Metrics.HighRiskOpen)
	assert.Equal(t, 9, d.Metrics.OpenGaps)
	assert.Equal(t, 4, d.Metrics.MonitoredRepos)
	assert.Equal(t, float64(15000000), d.Metrics.FineExposure)
	assert.Equal(t, "€15.0M", d.Metrics.FineExposureLabel)
	assert.True(t, d.Metrics.HasProhibitedIssue)
	assert.Equal(t, 3, d.Posture.HighRisk)
}

func mustAdd(t *testing.T, st *store.Store) <-chan struct{} {
	t.Helper()
	done, started := st.AddRepository()
	require.True(t, started)
	return done
}
