package service

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"aceguard-demo/notifier"
)

type NotificationService struct {
	version string
	now     func() time.Time
}

func NewNotificationService(version string) *NotificationService {
	return &NotificationService{version: version, now: time.Now}
}

// SlackTestRequest is the body of the Slack test endpoint
type SlackTestRequest struct {
	WebhookURL string `json:"webhook_url"`
	Channel    string `json:"channel"`
}

// HandleAPISlackTest sends a test Slack notification
func (ns *NotificationService) HandleAPISlackTest(c *fiber.Ctx) error {
	var req SlackTestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.WebhookURL == "" {
		return c.Status(400).JSON(fiber.Map{"error": "webhook_url is required"})
	}

	slackNotifier := notifier.NewSlackNotifier(
		req.WebhookURL,
		"AceGuard",
		req.Channel,
		":shield:",
	)

	if err := slackNotifier.ValidateConfiguration(); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   "Invalid Slack configuration",
			"details": err.Error(),
		})
	}

	testMessage := fmt.Sprintf(`🧪 *AceGuard - Notification Test*

✅ Slack notifications are working.

*System:* AceGuard %s
*Sent at:* %s
*Note:* This message was sent from the admin console.`,
		ns.version, ns.now().Format("2006-01-02 15:04:05"))

	if err := slackNotifier.SendCustomMessage(testMessage, req.Channel); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   "Failed to send Slack test notification",
			"details": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Slack test notification sent.",
	})
}
