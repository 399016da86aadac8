package service

import (
	"github.com/gofiber/fiber/v2"

	"aceguard-demo/models"
)

// AdminConsole is the static content of the admin page
type AdminConsole struct {
	Users      []models.AdminUser `json:"users"`
	RuleSets   []models.RuleSet   `json:"rule_sets"`
	SystemLogs []models.LogEntry  `json:"system_logs"`
	Plan       string             `json:"plan"`
}

type AdminService struct {
	console AdminConsole
}

func NewAdminService(console AdminConsole) *AdminService {
	return &AdminService{console: console}
}

func (as *AdminService) HandleAPIAdmin(c *fiber.Ctx) error {
	return c.JSON(as.console)
}
