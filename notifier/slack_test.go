package notifier

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"aceguard-demo/store"
)

// fakeSlack records the messages posted to it
type fakeSlack struct {
	mu       sync.Mutex
	messages []SlackMessage
	calls    atomic.Int32
	status   int
}

func newFakeSlack(t *testing.T, status int) (*fakeSlack, *httptest.Server) {
	t.Helper()
	fake := &fakeSlack{status: status}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fake.calls.Add(1)
		var msg SlackMessage
		if err := json.NewDecoder(r.Body).Decode(&msg); err == nil {
			fake.mu.Lock()
			fake.messages = append(fake.messages, msg)
			fake.mu.Unlock()
		}
		w.WriteHeader(fake.status)
	}))
	t.Cleanup(server.Close)
	return fake, server
}

func (f *fakeSlack) received() []SlackMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]SlackMessage(nil), f.messages...)
}

func newTestNotifier(url string) *SlackNotifier {
	n := NewSlackNotifier(url, "AceGuard", "#compliance", ":shield:")
	n.retryDelay = time.Millisecond
	return n
}

func TestNewSlackNotifier(t *testing.T) {
	notifier := NewSlackNotifier(
		"https://hooks.slack.com/test",
		"AceGuard",
		"#compliance",
		":shield:",
	)

	if notifier == nil {
		t.Fatal("NewSlackNotifier should return a valid notifier")
	}

	if notifier.webhookURL != "https://hooks.slack.com/test" {
		t.Errorf("Expected webhookURL 'https://hooks.slack.com/test', got %s", notifier.webhookURL)
	}

	if notifier.maxRetries != 3 {
		t.Errorf("Expected maxRetries 3, got %d", notifier.maxRetries)
	}

	if notifier.retryDelay != 2*time.Second {
		t.Errorf("Expected retryDelay 2s, got %v", notifier.retryDelay)
	}

	if notifier.httpClient.Timeout != 30*time.Second {
		t.Errorf("Expected 30s client timeout, got %v", notifier.httpClient.Timeout)
	}
}

func TestSlackNotifier_ValidateConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		webhookURL string
		username   string
		wantError  bool
	}{
		{
			name:       "valid webhook URL",
			webhookURL: "https://hooks.slack.com/services/T000/B000/XXXX",
			username:   "AceGuard",
			wantError:  false,
		},
		{
			name:       "empty webhook URL",
			webhookURL: "",
			username:   "AceGuard",
			wantError:  true,
		},
		{
			name:       "invalid webhook URL",
			webhookURL: "not-a-url",
			username:   "AceGuard",
			wantError:  true,
		},
		{
			name:       "empty username",
			webhookURL: "https://hooks.slack.com/test",
			username:   "",
			wantError:  false, // Username is optional
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := NewSlackNotifier(tt.webhookURL, tt.username, "#compliance", ":shield:")
			err := notifier.ValidateConfiguration()

			if tt.wantError && err == nil {
				t.Error("Expected validation error")
			}

			if !tt.wantError && err != nil {
				t.Errorf("Expected no validation error, got: %v", err)
			}
		})
	}
}

func TestSlackNotifier_BuildScanMessage(t *testing.T) {
	notifier := newTestNotifier("https://hooks.slack.com/test")

	event := store.Event{
		Type:       store.EventScanCompleted,
		Repository: "aceguard/ecommerce-platform",
		Findings:   6,
		Gaps:       8,
		HighRisk:   4,
		OpenGaps:   9,
		At:         time.Date(2025, 7, 23, 9, 30, 0, 0, time.UTC),
	}
	message := notifier.buildScanMessage(event, DefaultNotificationOptions())

	if message.Channel != "#compliance" {
		t.Errorf("Expected channel '#compliance', got %s", message.Channel)
	}

	if len(message.Attachments) != 1 {
		t.Fatalf("Expected one attachment, got %d", len(message.Attachments))
	}

	attachment := message.Attachments[0]
	if attachment.Color != "warning" {
		t.Errorf("Expected color 'warning', got %s", attachment.Color)
	}

	if attachment.Timestamp != event.At.Unix() {
		t.Errorf("Expected timestamp %d, got %d", event.At.Unix(), attachment.Timestamp)
	}

	fields := map[string]string{}
	for _, f := range attachment.Fields {
		fields[f.Title] = f.Value
	}
	if fields["High-Risk Findings"] != "4" {
		t.Errorf("Expected 4 high-risk findings, got %q", fields["High-Risk Findings"])
	}
	if !strings.Contains(fields["Status"], "Issues Found") {
		t.Errorf("Expected status 'Issues Found', got %q", fields["Status"])
	}
}

func TestSlackNotifier_BuildClaimMessage_Mentions(t *testing.T) {
	notifier := newTestNotifier("https://hooks.slack.com/test")
	options := &NotificationOptions{NotifyOnClaim: true, MentionUsers: []string{"U123"}, CustomChannel: "#claims"}

	message := notifier.buildClaimMessage(store.Event{Type: store.EventClaimFiled, ClaimID: "CL-10", Repository: "acme/web", FineEUR: 120000}, options)

	if message.Channel != "#claims" {
		t.Errorf("Expected channel '#claims', got %s", message.Channel)
	}
	if !strings.HasSuffix(message.Text, "<@U123>") {
		t.Errorf("Expected mention in text, got %q", message.Text)
	}
	if message.Attachments[0].Title != "Claim CL-10" {
		t.Errorf("Expected title 'Claim CL-10', got %q", message.Attachments[0].Title)
	}
}

func TestSlackNotifier_SendCustomMessage(t *testing.T) {
	fake, server := newFakeSlack(t, http.StatusOK)
	notifier := newTestNotifier(server.URL)

	if err := notifier.SendCustomMessage("Test message", "#test-channel"); err != nil {
		t.Fatalf("SendCustomMessage failed: %v", err)
	}

	messages := fake.received()
	if len(messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(messages))
	}
	if messages[0].Channel != "#test-channel" || messages[0].Text != "Test message" {
		t.Errorf("Unexpected message: %+v", messages[0])
	}
}

func TestSlackNotifier_RetriesServerErrors(t *testing.T) {
	fake, server := newFakeSlack(t, http.StatusInternalServerError)
	notifier := newTestNotifier(server.URL)

	err := notifier.SendCustomMessage("hello", "")
	if err == nil {
		t.Fatal("Expected error from failing webhook")
	}
	if !strings.Contains(err.Error(), "after 4 attempts") {
		t.Errorf("Unexpected error: %v", err)
	}
	if got := fake.calls.Load(); got != 4 {
		t.Errorf("Expected 4 attempts, got %d", got)
	}
}

func TestSlackNotifier_NoRetryOnClientError(t *testing.T) {
	fake, server := newFakeSlack(t, http.StatusBadRequest)
	notifier := newTestNotifier(server.URL)

	if err := notifier.SendCustomMessage("hello", ""); err == nil {
		t.Fatal("Expected error from rejected message")
	}
	if got := fake.calls.Load(); got != 1 {
		t.Errorf("Expected a single attempt, got %d", got)
	}
}

func TestObserver_ForwardsEnabledEvents(t *testing.T) {
	fake, server := newFakeSlack(t, http.StatusOK)
	logger, _ := test.NewNullLogger()
	observer := newTestNotifier(server.URL).Observer(&NotificationOptions{NotifyOnScan: true}, logger)

	observer.Notify(store.Event{Type: store.EventScanCompleted, Repository: "acme/web", HighRisk: 0})
	observer.Notify(store.Event{Type: store.EventClaimFiled, ClaimID: "CL-10"})
	observer.Notify(store.Event{Type: store.EventGapMoved, GapID: "GAP-001"})
	observer.Wait()

	messages := fake.received()
	if len(messages) != 1 {
		t.Fatalf("Expected only the scan message, got %d", len(messages))
	}
	if messages[0].Attachments[0].Color != "good" {
		t.Errorf("Expected color 'good' for a clean scan, got %s", messages[0].Attachments[0].Color)
	}
}

func TestObserver_LogsFailures(t *testing.T) {
	_, server := newFakeSlack(t, http.StatusForbidden)
	logger, hook := test.NewNullLogger()
	observer := newTestNotifier(server.URL).Observer(nil, logger)

	observer.Notify(store.Event{Type: store.EventClaimFiled, ClaimID: "CL-10", Repository: "acme/web"})
	observer.Wait()

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("Expected a log entry for the failed notification")
	}
	if entry.Message != "Slack notification failed" {
		t.Errorf("Unexpected log message %q", entry.Message)
	}
	if entry.Data["repository"] != "acme/web" {
		t.Errorf("Expected repository field, got %v", entry.Data["repository"])
	}
}

func TestGetScanColor(t *testing.T) {
	tests := []struct {
		highRisk int
		expected string
	}{
		{0, "good"},
		{1, "warning"},
		{4, "warning"},
		{5, "danger"},
	}

	for _, tt := range tests {
		if got := getScanColor(tt.highRisk); got != tt.expected {
			t.Errorf("getScanColor(%d) = %s, want %s", tt.highRisk, got, tt.expected)
		}
	}
}

func TestGetChannel(t *testing.T) {
	tests := []struct {
		name           string
		customChannel  string
		defaultChannel string
		expected       string
	}{
		{
			name:           "use custom channel",
			customChannel:  "#custom",
			defaultChannel: "#default",
			expected:       "#custom",
		},
		{
			name:           "use default channel",
			customChannel:  "",
			defaultChannel: "#default",
			expected:       "#default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := getChannel(tt.customChannel, tt.defaultChannel)
			if result != tt.expected {
				t.Errorf("Expected channel '%s', got '%s'", tt.expected, result)
			}
		})
	}
}
