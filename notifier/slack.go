package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"aceguard-demo/models"
	"aceguard-demo/store"
)

// SlackNotifier handles Slack notifications
type SlackNotifier struct {
	webhookURL string
	username   string
	channel    string
	iconEmoji  string
	maxRetries int
	retryDelay time.Duration
	httpClient *http.Client
	now        func() time.Time
}

// NewSlackNotifier creates a new Slack notifier instance
func NewSlackNotifier(webhookURL, username, channel, iconEmoji string) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		username:   username,
		channel:    channel,
		iconEmoji:  iconEmoji,
		maxRetries: 3,
		retryDelay: time.Second * 2,
		httpClient: &http.Client{
			Timeout: time.Second * 30,
		},
		now: time.Now,
	}
}

// SlackMessage represents a Slack message structure
type SlackMessage struct {
	Text        string            `json:"text,omitempty"`
	Username    string            `json:"username,omitempty"`
	Channel     string            `json:"channel,omitempty"`
	IconEmoji   string            `json:"icon_emoji,omitempty"`
	Attachments []SlackAttachment `json:"attachments,omitempty"`
}

// SlackAttachment represents a Slack message attachment
type SlackAttachment struct {
	Color     string       `json:"color,omitempty"`
	Title     string       `json:"title,omitempty"`
	TitleLink string       `json:"title_link,omitempty"`
	Text      string       `json:"text,omitempty"`
	Fields    []SlackField `json:"fields,omitempty"`
	Footer    string       `json:"footer,omitempty"`
	Timestamp int64        `json:"ts,omitempty"`
}

// SlackField represents a field in a Slack attachment
type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// NotificationOptions contains options for notifications
type NotificationOptions struct {
	NotifyOnScan  bool
	NotifyOnClaim bool
	MentionUsers  []string
	CustomChannel string
}

// DefaultNotificationOptions returns default notification options
func DefaultNotificationOptions() *NotificationOptions {
	return &NotificationOptions{
		NotifyOnScan:  true,
		NotifyOnClaim: true,
	}
}

const footer = "AceGuard Compliance"

// SendScanCompleted announces the outcome of a compliance scan
func (sn *SlackNotifier) SendScanCompleted(e store.Event, options *NotificationOptions) error {
	if options == nil {
		options = DefaultNotificationOptions()
	}
	return sn.sendMessage(sn.buildScanMessage(e, options))
}

// SendClaimFiled announces a newly filed insurance claim
func (sn *SlackNotifier) SendClaimFiled(e store.Event, options *NotificationOptions) error {
	if options == nil {
		options = DefaultNotificationOptions()
	}
	return sn.sendMessage(sn.buildClaimMessage(e, options))
}

// SendCustomMessage sends a custom message to Slack
func (sn *SlackNotifier) SendCustomMessage(text string, channel string) error {
	message := &SlackMessage{
		Text:      text,
		Username:  sn.username,
		Channel:   getChannel(channel, sn.channel),
		IconEmoji: sn.iconEmoji,
	}

	return sn.sendMessage(message)
}

// buildScanMessage builds the scan summary message
func (sn *SlackNotifier) buildScanMessage(e store.Event, options *NotificationOptions) *SlackMessage {
	status := models.ScanStatusCompliant
	if e.HighRisk > 0 {
		status = models.ScanStatusIssuesFound
	}

	attachment := SlackAttachment{
		Color:     getScanColor(e.HighRisk),
		Title:     fmt.Sprintf("Repository: %s", e.Repository),
		Footer:    footer,
		Timestamp: sn.timestamp(e.At),
	}
	attachment.Fields = append(attachment.Fields,
		SlackField{Title: "Status", Value: fmt.Sprintf("%s %s", getScanEmoji(e.HighRisk), status), Short: true},
		SlackField{Title: "High-Risk Findings", Value: fmt.Sprintf("%d", e.HighRisk), Short: true},
		SlackField{Title: "New Findings", Value: fmt.Sprintf("%d", e.Findings), Short: true},
		SlackField{Title: "New Gaps", Value: fmt.Sprintf("%d", e.Gaps), Short: true},
		SlackField{Title: "Open Gaps", Value: fmt.Sprintf("%d", e.OpenGaps), Short: true},
	)

	return &SlackMessage{
		Text:        withMentions("🔍 *Deep Compliance Scan Completed*", options.MentionUsers),
		Username:    sn.username,
		Channel:     getChannel(options.CustomChannel, sn.channel),
		IconEmoji:   sn.iconEmoji,
		Attachments: []SlackAttachment{attachment},
	}
}

// buildClaimMessage builds the insurance claim message
func (sn *SlackNotifier) buildClaimMessage(e store.Event, options *NotificationOptions) *SlackMessage {
	attachment := SlackAttachment{
		Color:     "warning",
		Title:     fmt.Sprintf("Claim %s", e.ClaimID),
		Footer:    footer,
		Timestamp: sn.timestamp(e.At),
		Fields: []SlackField{
			{Title: "Repository", Value: e.Repository, Short: true},
			{Title: "Fine", Value: fmt.Sprintf("€%.0f", e.FineEUR), Short: true},
			{Title: "Status", Value: string(models.ClaimStatusUnderReview), Short: true},
		},
	}

	return &SlackMessage{
		Text:        withMentions("🛡️ *Insurance Claim Filed*", options.MentionUsers),
		Username:    sn.username,
		Channel:     getChannel(options.CustomChannel, sn.channel),
		IconEmoji:   sn.iconEmoji,
		Attachments: []SlackAttachment{attachment},
	}
}

func (sn *SlackNotifier) timestamp(at time.Time) int64 {
	if at.IsZero() {
		return sn.now().Unix()
	}
	return at.Unix()
}

// sendMessage sends a message to Slack with retry logic
func (sn *SlackNotifier) sendMessage(message *SlackMessage) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal Slack message: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= sn.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(sn.retryDelay)
		}

		resp, err := sn.httpClient.Post(sn.webhookURL, "application/json", bytes.NewBuffer(payload))
		if err != nil {
			lastErr = fmt.Errorf("failed to send request: %w", err)
			continue
		}

		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			return nil
		}

		lastErr = fmt.Errorf("slack API returned status %d", resp.StatusCode)

		// Don't retry for client errors
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			break
		}
	}

	return fmt.Errorf("failed to send Slack notification after %d attempts: %w", sn.maxRetries+1, lastErr)
}

// ValidateConfiguration validates the Slack notifier configuration
func (sn *SlackNotifier) ValidateConfiguration() error {
	if sn.webhookURL == "" {
		return fmt.Errorf("Slack webhook URL is required")
	}

	if !strings.HasPrefix(sn.webhookURL, "https://hooks.slack.com/") {
		return fmt.Errorf("invalid Slack webhook URL format")
	}

	return nil
}

// TestConnection tests the Slack connection by sending a test message
func (sn *SlackNotifier) TestConnection() error {
	if err := sn.ValidateConfiguration(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	testMessage := &SlackMessage{
		Text:      "🧪 AceGuard test message",
		Username:  sn.username,
		Channel:   sn.channel,
		IconEmoji: sn.iconEmoji,
	}

	return sn.sendMessage(testMessage)
}

// Observer forwards store events to Slack in the background.
// Delivery failures are logged and never reach the store.
type Observer struct {
	notifier *SlackNotifier
	log      logrus.FieldLogger
	wg       sync.WaitGroup

	mu      sync.RWMutex
	options NotificationOptions
}

// Observer adapts the notifier to store.Observer
func (sn *SlackNotifier) Observer(options *NotificationOptions, log logrus.FieldLogger) *Observer {
	if options == nil {
		options = DefaultNotificationOptions()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Observer{notifier: sn, options: *options, log: log}
}

// SetOptions replaces the options used for subsequent events
func (o *Observer) SetOptions(options NotificationOptions) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.options = options
}

func (o *Observer) Options() NotificationOptions {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.options
}

// Notify implements store.Observer
func (o *Observer) Notify(e store.Event) {
	options := o.Options()

	var send func(store.Event, *NotificationOptions) error
	switch {
	case e.Type == store.EventScanCompleted && options.NotifyOnScan:
		send = o.notifier.SendScanCompleted
	case e.Type == store.EventClaimFiled && options.NotifyOnClaim:
		send = o.notifier.SendClaimFiled
	default:
		return
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		if err := send(e, &options); err != nil {
			o.log.WithError(err).WithFields(logrus.Fields{
				"event":      e.Type,
				"repository": e.Repository,
			}).Warn("Slack notification failed")
			return
		}
		o.log.WithField("event", e.Type).Debug("Slack notification sent")
	}()
}

// Wait blocks until every in-flight notification has finished
func (o *Observer) Wait() {
	o.wg.Wait()
}

// Helper functions

func getScanColor(highRisk int) string {
	switch {
	case highRisk >= 5:
		return "danger"
	case highRisk > 0:
		return "warning"
	default:
		return "good"
	}
}

func getScanEmoji(highRisk int) string {
	if highRisk > 0 {
		return "⚠️"
	}
	return "✅"
}

func withMentions(text string, users []string) string {
	if len(users) == 0 {
		return text
	}
	mentions := make([]string, len(users))
	for i, user := range users {
		mentions[i] = fmt.Sprintf("<@%s>", user)
	}
	return text + " " + strings.Join(mentions, " ")
}

func getChannel(customChannel, defaultChannel string) string {
	if customChannel != "" {
		return customChannel
	}
	return defaultChannel
}
