// Package seed holds the fixed data the demo session starts from.
package seed

import (
	"time"

	"aceguard-demo/models"
	"aceguard-demo/store"
)

// Initial returns the snapshot loaded at start-up and restored by a reset
func Initial() store.Snapshot {
	return store.Snapshot{
		Repositories: Repositories(),
		Findings:     Findings(),
		Gaps: models.GapBoard{
			Pending:    pendingGaps(),
			InProgress: []models.Gap{},
			Completed:  []models.Gap{},
		},
		Claims: Claims(),
		Trend:  Trend(),
	}
}

// Demo returns the repository, findings and gaps introduced during the demo
func Demo() store.DemoPayload {
	return store.DemoPayload{
		Repository: DemoRepository(),
		Findings:   DemoFindings(),
		Gaps:       DemoGaps(),
	}
}

func Repositories() []models.Repository {
	return []models.Repository{
		{Name: "aceguard/ai-compliance-scanner", Branch: "main", LastScan: timestamp("2025-07-16T21:12:01Z"), HighRisk: 5},
		{Name: "aceguard/fintech-backend", Branch: "develop", LastScan: timestamp("2025-07-17T02:09:11Z"), HighRisk: 9},
		{Name: "aceguard/data-pipeline", Branch: "main", LastScan: timestamp("2025-06-28T10:30:00Z"), HighRisk: 0},
	}
}

func Findings() []models.Finding {
	return []models.Finding{
		{
			ID:        "F-342",
			Repo:      "aceguard/fintech-backend",
			Component: "user-model",
			Path:      "/src/auth/user_model.py",
			Bucket:    models.BucketHighRisk,
			Severity:  models.SeverityHigh,
			Status:    models.FindingStatusOpen,
			Evidence: models.Evidence{
				Article:       "Art 10(2)",
				FilePath:      "src/auth/user_model.py",
				ViolatingLine: 45,
				CodeSnippet: []models.CodeLine{
					{Line: 43, Content: "class UserModel(BaseModel):"},
					{Line: 44, Content: "    # TODO: Add data validation and cleaning"},
					{Line: 45, Content: "    training_data = load_unverified_data()"},
					{Line: 46, Content: "    model.fit(training_data)"},
				},
			},
		},
		{
			ID:        "F-343",
			Repo:      "aceguard/fintech-backend",
			Component: "risk_matrix.py",
			Path:      "/src/compliance/",
			Bucket:    models.BucketHighRisk,
			Severity:  models.SeverityHigh,
			Status:    models.FindingStatusInProgress,
			Evidence: models.Evidence{
				Article:       "Art 9",
				FilePath:      "src/compliance/risk_matrix.py",
				ViolatingLine: 12,
				CodeSnippet: []models.CodeLine{
					{Line: 10, Content: "def calculate_risk():"},
					{Line: 11, Content: "    # FIXME: Risk matrix is not loaded from a versioned source"},
					{Line: 12, Content: "    risk_params = {'default_rate': 0.05}"},
					{Line: 13, Content: "    return calculate(risk_params)"},
				},
			},
		},
	}
}

func pendingGaps() []models.Gap {
	return []models.Gap{
		{
			ID:             "GAP-001",
			Repo:           "aceguard/fintech-backend",
			Component:      "loan-scorer",
			Gap:            "Missing risk_matrix.yaml (Art 9)",
			Deadline:       "2025-08-18",
			Owner:          "Kai Ito",
			Status:         models.GapStatusPending,
			NextSteps:      "Create a versioned risk_matrix.yaml file with configurable risk parameters. Implement a configuration management system to load and validate risk parameters at runtime. Add audit logging for parameter changes.",
			Implementation: "Consider using a configuration management library like Hydra or Pydantic for type-safe parameter validation. Store the risk matrix in a versioned configuration repository with change tracking.",
		},
	}
}

// Trend is the weekly high-risk history preceding the demo
func Trend() []models.TrendPoint {
	return []models.TrendPoint{
		{Week: "2025-05-05", Count: 32},
		{Week: "2025-05-12", Count: 31},
		{Week: "2025-05-19", Count: 34},
		{Week: "2025-05-26", Count: 28},
		{Week: "2025-06-02", Count: 25},
		{Week: "2025-06-09", Count: 26},
		{Week: "2025-06-16", Count: 22},
		{Week: "2025-06-23", Count: 20},
		{Week: "2025-06-30", Count: 19},
		{Week: "2025-07-07", Count: 18},
		{Week: "2025-07-14", Count: 17},
	}
}

func Claims() []models.Claim {
	return []models.Claim{
		{ClaimID: "CL-9", Repo: "aceguard/fintech-backend", FineEUR: 2500000, Status: models.ClaimStatusOpen, Submitted: "2025-07-15"},
		{ClaimID: "CL-8", Repo: "aceguard/user-auth-service", FineEUR: 1200000, Status: models.ClaimStatusUnderReview, Submitted: "2025-06-20"},
		{ClaimID: "CL-7", Repo: "aceguard/data-pipeline", FineEUR: 500000, Status: models.ClaimStatusPaid, Submitted: "2025-05-10"},
	}
}

func timestamp(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}
