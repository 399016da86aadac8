package service

import (
	"sync"

	"github.com/gofiber/fiber/v2"

	"aceguard-demo/models"
)

type SettingService struct {
	mu       sync.RWMutex
	settings models.Setting
	onChange func(models.Setting)
}

// NewSettingService serves settings; onChange, when set, is called after every update
func NewSettingService(initial models.Setting, onChange func(models.Setting)) *SettingService {
	return &SettingService{settings: initial, onChange: onChange}
}

func (ss *SettingService) Current() models.Setting {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.settings
}

func (ss *SettingService) HandleAPIGetSettings(c *fiber.Ctx) error {
	return c.JSON(ss.Current())
}

// SettingsUpdate holds the fields that can change at runtime
type SettingsUpdate struct {
	SlackChannel  *string `json:"slack_channel"`
	NotifyOnScan  *bool   `json:"notify_on_scan"`
	NotifyOnClaim *bool   `json:"notify_on_claim"`
}

func (ss *SettingService) HandleAPIPutSettings(c *fiber.Ctx) error {
	var update SettingsUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid settings format", "details": err.Error()})
	}

	ss.mu.Lock()
	if update.SlackChannel != nil {
		ss.settings.SlackChannel = *update.SlackChannel
	}
	if update.NotifyOnScan != nil {
		ss.settings.NotifyOnScan = *update.NotifyOnScan
	}
	if update.NotifyOnClaim != nil {
		ss.settings.NotifyOnClaim = *update.NotifyOnClaim
	}
	current := ss.settings
	ss.mu.Unlock()

	if ss.onChange != nil {
		ss.onChange(current)
	}

	return c.JSON(fiber.Map{"status": "settings updated", "settings": current})
}
