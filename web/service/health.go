package service

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"aceguard-demo/store"
)

type HealthService struct {
	store   *store.Store
	version string
}

func NewHealthService(s *store.Store, version string) *HealthService {
	return &HealthService{store: s, version: version}
}

func (hs *HealthService) HandleHealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   hs.version,
	})
}

// HandleAPIReset restores the store to its initial snapshot for a demo replay
func (hs *HealthService) HandleAPIReset(c *fiber.Ctx) error {
	hs.store.ResetAll()
	return c.JSON(fiber.Map{
		"title":   "Demo Reset",
		"message": "All demo data has been restored to its initial state.",
	})
}
