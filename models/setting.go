package models

// Setting is the runtime configuration exposed on the admin console
type Setting struct {
	AppName          string `json:"app_name"`
	AppVersion       string `json:"app_version"`
	LogLevel         string `json:"log_level"`
	AddDelayMillis   int64  `json:"add_delay_ms"`
	TrendWindow      int    `json:"trend_window"`
	SlackChannel     string `json:"slack_channel"`
	SlackEnabled     bool   `json:"slack_enabled"`
	NotifyOnScan     bool   `json:"notify_on_scan"`
	NotifyOnClaim    bool   `json:"notify_on_claim"`
	EnableCors       bool   `json:"enable_cors"`
	ReportsDirectory string `json:"reports_directory"`
}

// AdminUser is an account listed on the admin console
type AdminUser struct {
	Email      string `json:"email"`
	Role       string `json:"role"`
	LastActive string `json:"last_active"`
}

// RuleSet is a deployed version of the compliance rule pack
type RuleSet struct {
	Version  string `json:"version"`
	Status   string `json:"status"`
	Deployed string `json:"deployed"`
	Diff     string `json:"diff,omitempty"`
}

// LogEntry is one line of the system log shown on the admin console
type LogEntry struct {
	Level     string `json:"level"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
}

// ScanLog is a historical scanner run
type ScanLog struct {
	ID        int    `json:"id"`
	Repo      string `json:"repo"`
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
	Duration  string `json:"duration"`
	DiffHash  string `json:"diff_hash"`
}
