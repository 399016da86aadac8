package web

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aceguard-demo/config"
	"aceguard-demo/metrics"
	"aceguard-demo/models"
	"aceguard-demo/report"
	"aceguard-demo/seed"
	"aceguard-demo/store"
)

var fixedNow = time.Date(2025, 7, 23, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	server   *Server
	store    *store.Store
	registry *prometheus.Registry
	settings []models.Setting
}

// setupTestServer creates a server over a fresh seeded store
func setupTestServer(t *testing.T) (*testEnv, func()) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	clock := func() time.Time { return fixedNow }

	registry := prometheus.NewRegistry()
	collector, err := metrics.NewCollector("aceguard", registry)
	require.NoError(t, err)

	st := store.New(seed.Initial(), seed.Demo(),
		store.WithClock(clock),
		store.WithAddDelay(0),
		store.WithLogger(logger),
		store.WithObserver(collector),
	)

	cfg := config.Default()
	cfg.Reports.Directory = t.TempDir()

	env := &testEnv{store: st, registry: registry}
	server, err := NewServer(cfg, st,
		WithLogger(logger),
		WithGatherer(registry),
		WithClock(clock),
		WithVersion("test"),
		WithSettingsHook(func(s models.Setting) { env.settings = append(env.settings, s) }),
	)
	require.NoError(t, err)
	env.server = server

	cleanup := func() {
		server.Stop()
	}
	return env, cleanup
}

func doRequest(t *testing.T, env *testEnv, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := env.server.App().Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealthCheck(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	resp := doRequest(t, env, "GET", "/api/v1/health", nil)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	decode(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
}

func TestDashboard(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	var body struct {
		Metrics struct {
			HighRiskOpen      int     `json:"high_risk_open"`
			OpenGaps          int     `json:"open_gaps"`
			MonitoredRepos    int     `json:"monitored_repos"`
			ClaimsInReview    int     `json:"claims_in_review"`
			FineExposure      float64 `json:"fine_exposure"`
			FineExposureLabel string  `json:"fine_exposure_label"`
			LastScan          string  `json:"last_scan"`
		} `json:"metrics"`
		Posture struct {
			Compliant int `json:"compliant"`
			HighRisk  int `json:"high_risk"`
			Unscanned int `json:"unscanned"`
		} `json:"posture"`
		Trend []models.TrendPoint `json:"trend"`
	}
	resp := doRequest(t, env, "GET", "/api/v1/dashboard", nil)
	require.Equal(t, 200, resp.StatusCode)
	decode(t, resp, &body)

	assert.Equal(t, 1, body.Metrics.HighRiskOpen)
	assert.Equal(t, 1, body.Metrics.OpenGaps)
	assert.Equal(t, 3, body.Metrics.MonitoredRepos)
	assert.Equal(t, 2, body.Metrics.ClaimsInReview)
	assert.Equal(t, float64(13000000), body.Metrics.FineExposure)
	assert.Equal(t, "€13.0M", body.Metrics.FineExposureLabel)
	assert.Equal(t, "2025-07-17T02:09:11Z", body.Metrics.LastScan)

	assert.Equal(t, 1, body.Posture.Compliant)
	assert.Equal(t, 2, body.Posture.HighRisk)
	assert.Equal(t, 0, body.Posture.Unscanned)

	require.Len(t, body.Trend, 12)
	assert.Equal(t, models.TrendPoint{Week: "2025-07-21", Count: 0}, body.Trend[11])
	assert.Equal(t, "2025-05-05", body.Trend[0].Week)
}

func TestRepositories_ListMarksStale(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	var body struct {
		Repositories []struct {
			Name  string `json:"name"`
			Stale bool   `json:"stale"`
		} `json:"repositories"`
		IsAdding bool `json:"is_adding"`
	}
	decode(t, doRequest(t, env, "GET", "/api/v1/repositories", nil), &body)

	require.Len(t, body.Repositories, 3)
	stale := map[string]bool{}
	for _, r := range body.Repositories {
		stale[r.Name] = r.Stale
	}
	assert.False(t, stale["aceguard/ai-compliance-scanner"])
	assert.True(t, stale["aceguard/data-pipeline"])
	assert.False(t, body.IsAdding)
}

func TestRepositories_Connect(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	resp := doRequest(t, env, "POST", "/api/v1/repositories/connect", map[string]string{"name": seed.DemoRepositoryName})
	assert.Equal(t, 202, resp.StatusCode)

	repos := env.store.Repositories()
	require.Len(t, repos, 4)
	assert.Equal(t, seed.DemoRepositoryName, repos[0].Name)

	resp = doRequest(t, env, "POST", "/api/v1/repositories/connect", map[string]string{"name": seed.DemoRepositoryName})
	assert.Equal(t, 409, resp.StatusCode)
	var conflict map[string]string
	decode(t, resp, &conflict)
	assert.Equal(t, "In Progress", conflict["error"])
	assert.Equal(t, "Repository is already connected or being connected.", conflict["details"])
}

func TestRepositories_ConnectUnavailable(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	resp := doRequest(t, env, "POST", "/api/v1/repositories/connect", map[string]string{"name": "aceguard/mobile-app"})
	assert.Equal(t, 422, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "Connection Unavailable", body["error"])
	assert.Equal(t, "Connecting 'aceguard/mobile-app' is not available in this version.", body["details"])
	assert.Len(t, env.store.Repositories(), 3)
}

func TestRepositories_Detail(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	var body struct {
		Repository models.Repository `json:"repository"`
		Findings   []models.Finding  `json:"findings"`
	}
	resp := doRequest(t, env, "GET", "/api/v1/repositories/aceguard/fintech-backend", nil)
	require.Equal(t, 200, resp.StatusCode)
	decode(t, resp, &body)

	assert.Equal(t, "develop", body.Repository.Branch)
	assert.Len(t, body.Findings, 2)

	resp = doRequest(t, env, "GET", "/api/v1/repositories/aceguard/unknown", nil)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestFindings_Filters(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	env.store.RunScan(seed.DemoRepositoryName)

	var body struct {
		Findings      []models.Finding `json:"findings"`
		Total         int              `json:"total"`
		HasProhibited bool             `json:"has_prohibited"`
	}
	decode(t, doRequest(t, env, "GET", "/api/v1/findings", nil), &body)
	assert.Equal(t, 8, body.Total)
	assert.True(t, body.HasProhibited)
	assert.Equal(t, "F-401", body.Findings[0].ID)

	decode(t, doRequest(t, env, "GET", "/api/v1/findings?severity=high&status=open", nil), &body)
	assert.Equal(t, 4, body.Total)
	assert.False(t, body.HasProhibited)

	decode(t, doRequest(t, env, "GET", "/api/v1/findings?bucket=limited", nil), &body)
	assert.Equal(t, 2, body.Total)

	resp := doRequest(t, env, "GET", "/api/v1/findings?severity=severe", nil)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestFindings_Detail(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	var finding models.Finding
	resp := doRequest(t, env, "GET", "/api/v1/findings/F-342", nil)
	require.Equal(t, 200, resp.StatusCode)
	decode(t, resp, &finding)
	assert.Equal(t, 45, finding.Evidence.ViolatingLine)

	resp = doRequest(t, env, "GET", "/api/v1/findings/F-999", nil)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestScans_History(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	var body struct {
		History  []models.ScanRecord `json:"history"`
		Scanning []string            `json:"scanning"`
	}
	decode(t, doRequest(t, env, "GET", "/api/v1/scans", nil), &body)

	require.Len(t, body.History, 3)
	assert.Equal(t, "aceguard/fintech-backend", body.History[0].Repository)
	assert.Equal(t, models.ScanStatusIssuesFound, body.History[0].Status)
	assert.Equal(t, "aceguard/data-pipeline", body.History[2].Repository)
	assert.Equal(t, models.ScanStatusCompliant, body.History[2].Status)
	assert.Equal(t, "23:45:12", body.History[0].Duration)
	assert.Equal(t, "ace...", body.History[0].DiffHash)
	assert.Empty(t, body.Scanning)
}

func TestScans_Run(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	doRequest(t, env, "POST", "/api/v1/repositories/connect", map[string]string{"name": seed.DemoRepositoryName})

	resp := doRequest(t, env, "POST", "/api/v1/scans", map[string]string{"repository": seed.DemoRepositoryName})
	require.Equal(t, 202, resp.StatusCode)

	var body struct {
		Title  string           `json:"title"`
		Result store.ScanResult `json:"result"`
	}
	decode(t, resp, &body)
	assert.Equal(t, "Deep Compliance Scan Initiated", body.Title)
	assert.True(t, body.Result.Found)
	assert.Equal(t, 6, body.Result.NewFindings)
	assert.Equal(t, 8, body.Result.NewGaps)
	assert.Equal(t, 4, body.Result.HighRisk)

	repo, ok := env.store.GetRepository(seed.DemoRepositoryName)
	require.True(t, ok)
	assert.Equal(t, 4, repo.HighRisk)
	assert.False(t, repo.IsScanning)

	resp = doRequest(t, env, "POST", "/api/v1/scans", map[string]string{})
	assert.Equal(t, 400, resp.StatusCode)
}

func TestGaps_Update(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	var body struct {
		Moved bool            `json:"moved"`
		Board models.GapBoard `json:"board"`
	}
	resp := doRequest(t, env, "PATCH", "/api/v1/gaps/GAP-001", map[string]string{"status": "inProgress"})
	require.Equal(t, 200, resp.StatusCode)
	decode(t, resp, &body)
	assert.True(t, body.Moved)
	assert.Empty(t, body.Board.Pending)
	require.Len(t, body.Board.InProgress, 1)
	assert.Equal(t, models.GapStatusInProgress, body.Board.InProgress[0].Status)

	resp = doRequest(t, env, "PATCH", "/api/v1/gaps/GAP-404", map[string]string{"status": "completed"})
	require.Equal(t, 200, resp.StatusCode)
	decode(t, resp, &body)
	assert.False(t, body.Moved)
	assert.Len(t, body.Board.InProgress, 1)

	resp = doRequest(t, env, "PATCH", "/api/v1/gaps/GAP-001", map[string]string{"status": "done"})
	assert.Equal(t, 400, resp.StatusCode)
}

func TestClaims_File(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	resp := doRequest(t, env, "POST", "/api/v1/claims", map[string]any{"finding_id": "F-342", "fine_eur": 120000})
	require.Equal(t, 201, resp.StatusCode)

	var body struct {
		Title string       `json:"title"`
		Claim models.Claim `json:"claim"`
	}
	decode(t, resp, &body)
	assert.Equal(t, "Claim Filed Successfully", body.Title)
	assert.Equal(t, models.Claim{
		ClaimID:   "CL-10",
		Repo:      "aceguard/fintech-backend",
		FineEUR:   120000,
		Status:    models.ClaimStatusUnderReview,
		Submitted: "2025-07-23",
	}, body.Claim)

	claims := env.store.Claims()
	require.Len(t, claims, 4)
	assert.Equal(t, "CL-10", claims[0].ClaimID)
}

func TestClaims_Validation(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	env.store.RunScan(seed.DemoRepositoryName)

	resp := doRequest(t, env, "POST", "/api/v1/claims", map[string]any{"finding_id": "F-342", "fine_eur": 0})
	assert.Equal(t, 400, resp.StatusCode)
	var missing map[string]string
	decode(t, resp, &missing)
	assert.Equal(t, "Missing Information", missing["error"])
	assert.Equal(t, "Please select a finding and enter a fine amount.", missing["details"])

	resp = doRequest(t, env, "POST", "/api/v1/claims", map[string]any{"finding_id": "F-405", "fine_eur": 5000})
	assert.Equal(t, 404, resp.StatusCode)

	assert.Len(t, env.store.Claims(), 3)

	var list struct {
		Eligible []models.Finding `json:"eligible"`
	}
	decode(t, doRequest(t, env, "GET", "/api/v1/claims", nil), &list)
	assert.Len(t, list.Eligible, 6)
}

func TestReports_Markdown(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	resp := doRequest(t, env, "GET", "/api/v1/reports/markdown", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, `attachment; filename="AceGuard_Report_ecommerce-platform_2025-07-23.md"`, resp.Header.Get("Content-Disposition"))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, report.GenerateMarkdown(seed.SampleReport()), string(data))
}

func TestReports_CSV(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	resp := doRequest(t, env, "GET", "/api/v1/reports/csv", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "aceguard_mitigation_plan_2025-07-23.csv")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	assert.Equal(t, report.CSVHeader, lines[0])
	assert.Len(t, lines, 9)
}

func TestReports_UnsupportedFormat(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	resp := doRequest(t, env, "GET", "/api/v1/reports/docx", nil)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestReports_ComplianceToggles(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	var body struct {
		Title    string `json:"title"`
		Sections []struct {
			Type string `json:"type"`
		} `json:"sections"`
	}
	decode(t, doRequest(t, env, "GET", "/api/v1/reports/compliance?timeline=false&financial_impact=false", nil), &body)

	assert.Equal(t, "EU AI Act Compliance Report", body.Title)
	require.Len(t, body.Sections, 3)
	assert.Equal(t, report.SectionExecutiveSummary, body.Sections[0].Type)
	assert.Equal(t, report.SectionActionItems, body.Sections[2].Type)
}

func TestReports_Summary(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	var body struct {
		Summary models.ReportSummary `json:"summary"`
		Label   string               `json:"financial_exposure_label"`
	}
	decode(t, doRequest(t, env, "GET", "/api/v1/reports/summary", nil), &body)

	assert.Equal(t, 1, body.Summary.ProhibitedCount)
	assert.Equal(t, 3, body.Summary.HighRiskCount)
	assert.Equal(t, 8, body.Summary.TotalComponents)
	assert.Equal(t, 3, body.Summary.CriticalGaps)
	assert.Equal(t, "35.000.000 €", body.Label)
}

func TestReportView(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	resp := doRequest(t, env, "GET", "/reports/view", nil)
	require.Equal(t, 200, resp.StatusCode)
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, "AceGuard EU AI Act Compliance Report", doc.Find("h1").First().Text())
	assert.Equal(t, seed.DemoRepositoryName, doc.Find("#repository").Text())
	assert.Equal(t, "1", doc.Find("#prohibited-count").Text())
	assert.Equal(t, "3", doc.Find("#high-risk-count").Text())
	assert.Equal(t, 8, doc.Find("tr.component").Length())
	assert.Equal(t, 6, doc.Find("li.gap").Length())
	assert.Equal(t, 1, doc.Find("td.bucket-Prohibited").Length())
	assert.True(t, strings.HasPrefix(doc.Find("#csv").Text(), report.CSVHeader))
}

func TestAdmin(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	var console struct {
		Users      []models.AdminUser `json:"users"`
		RuleSets   []models.RuleSet   `json:"rule_sets"`
		SystemLogs []models.LogEntry  `json:"system_logs"`
		Plan       string             `json:"plan"`
	}
	decode(t, doRequest(t, env, "GET", "/api/v1/admin", nil), &console)

	require.Len(t, console.Users, 2)
	assert.Equal(t, "user@example.com", console.Users[0].Email)
	assert.Equal(t, "v2.1.0", console.RuleSets[0].Version)
	assert.Len(t, console.SystemLogs, 3)
	assert.Equal(t, "Enterprise", console.Plan)
}

func TestSettings_Update(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	var current models.Setting
	decode(t, doRequest(t, env, "GET", "/api/v1/settings", nil), &current)
	assert.True(t, current.NotifyOnScan)
	assert.Equal(t, 12, current.TrendWindow)
	assert.Equal(t, int64(0), current.AddDelayMillis)

	resp := doRequest(t, env, "PUT", "/api/v1/settings", map[string]any{"notify_on_scan": false, "slack_channel": "#eu-ai-act"})
	require.Equal(t, 200, resp.StatusCode)

	require.Len(t, env.settings, 1)
	assert.False(t, env.settings[0].NotifyOnScan)
	assert.True(t, env.settings[0].NotifyOnClaim)
	assert.Equal(t, "#eu-ai-act", env.settings[0].SlackChannel)

	decode(t, doRequest(t, env, "GET", "/api/v1/settings", nil), &current)
	assert.False(t, current.NotifyOnScan)
}

func TestSlackTest_InvalidWebhook(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	resp := doRequest(t, env, "POST", "/api/v1/notifications/slack/test", map[string]string{"webhook_url": "https://example.com/hook"})
	assert.Equal(t, 400, resp.StatusCode)

	resp = doRequest(t, env, "POST", "/api/v1/notifications/slack/test", map[string]string{})
	assert.Equal(t, 400, resp.StatusCode)
}

func TestDemoReset(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	initial := env.store.Snapshot()

	env.store.RunScan("aceguard/fintech-backend")
	env.store.UpdateGapStatus("GAP-001", models.GapStatusCompleted)

	resp := doRequest(t, env, "POST", "/api/v1/demo/reset", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, initial, env.store.Snapshot())
}

func TestMetricsEndpoint(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	env.store.RunScan(seed.DemoRepositoryName)

	resp := doRequest(t, env, "GET", "/metrics", nil)
	require.Equal(t, 200, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), `aceguard_store_events_total{type="scan.completed"} 1`)
	assert.Contains(t, string(data), "aceguard_findings_added_total 6")
	assert.Contains(t, string(data), "aceguard_open_gaps 9")
}
