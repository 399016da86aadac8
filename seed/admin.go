package seed

import "aceguard-demo/models"

// BillingPlan is the subscription shown on the admin console
const BillingPlan = "Enterprise"

func AdminUsers() []models.AdminUser {
	return []models.AdminUser{
		{Email: "user@example.com", Role: "Admin", LastActive: "2 hours ago"},
		{Email: "analyst@example.com", Role: "Analyst", LastActive: "1 day ago"},
	}
}

func RuleSets() []models.RuleSet {
	return []models.RuleSet{
		{
			Version:  "v2.1.0",
			Status:   "Staging",
			Deployed: "2024-07-01",
			Diff:     "- rule: hardcoded_secret\n+ rule: hardcoded_secret_v2\n  pattern: '(?i)secret|token|key'",
		},
	}
}

func SystemLogs() []models.LogEntry {
	return []models.LogEntry{
		{Level: "INFO", Timestamp: "2024-07-17 10:05:12", Message: "Scan completed for repo 'aceguard-web'"},
		{Level: "WARN", Timestamp: "2024-07-17 10:01:05", Message: "High memory usage detected"},
		{Level: "ERROR", Timestamp: "2024-07-17 09:59:01", Message: "Failed to connect to GitHub API"},
	}
}
