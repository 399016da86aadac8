package service

import (
	"github.com/gofiber/fiber/v2"

	"aceguard-demo/models"
	"aceguard-demo/store"
)

type GapService struct {
	store *store.Store
}

func NewGapService(s *store.Store) *GapService {
	return &GapService{store: s}
}

func (gs *GapService) HandleAPIGaps(c *fiber.Ctx) error {
	board := gs.store.Gaps()
	return c.JSON(fiber.Map{
		"board": board,
		"open":  board.Open(),
		"total": board.Total(),
	})
}

type GapStatusRequest struct {
	Status models.GapStatus `json:"status"`
}

// HandleAPIUpdateGap moves a gap to another lane. Unknown ids leave the board unchanged.
func (gs *GapService) HandleAPIUpdateGap(c *fiber.Ctx) error {
	var req GapStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body", "details": err.Error()})
	}
	if !req.Status.Valid() {
		return c.Status(400).JSON(fiber.Map{
			"error":   "Invalid gap status",
			"details": "status must be one of pending, inProgress, completed",
		})
	}

	moved := gs.store.UpdateGapStatus(c.Params("id"), req.Status)
	return c.JSON(fiber.Map{
		"moved": moved,
		"board": gs.store.Gaps(),
	})
}
