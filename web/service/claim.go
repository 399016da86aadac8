package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"aceguard-demo/models"
	"aceguard-demo/store"
)

type ClaimService struct {
	store *store.Store
	now   func() time.Time
}

func NewClaimService(s *store.Store, now func() time.Time) *ClaimService {
	if now == nil {
		now = time.Now
	}
	return &ClaimService{store: s, now: now}
}

// EligibleFindings returns the findings a claim can be filed against
func EligibleFindings(findings []models.Finding) []models.Finding {
	eligible := []models.Finding{}
	for _, f := range findings {
		if f.Severity.IsHighRisk() {
			eligible = append(eligible, f)
		}
	}
	return eligible
}

// NextClaimID returns CL-<n> where n is one more than the largest numeric claim suffix
func NextClaimID(claims []models.Claim) string {
	max := 0
	for _, c := range claims {
		n, err := strconv.Atoi(strings.TrimPrefix(c.ClaimID, "CL-"))
		if err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("CL-%d", max+1)
}

func (cs *ClaimService) HandleAPIClaims(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"claims":   cs.store.Claims(),
		"eligible": EligibleFindings(cs.store.Findings()),
	})
}

type FileClaimRequest struct {
	FindingID string  `json:"finding_id"`
	FineEUR   float64 `json:"fine_eur"`
}

// HandleAPIFileClaim validates the form input and files a claim for the finding's repository
func (cs *ClaimService) HandleAPIFileClaim(c *fiber.Ctx) error {
	var req FileClaimRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body", "details": err.Error()})
	}

	if strings.TrimSpace(req.FindingID) == "" || req.FineEUR <= 0 {
		return c.Status(400).JSON(fiber.Map{
			"error":   "Missing Information",
			"details": "Please select a finding and enter a fine amount.",
		})
	}

	finding, ok := cs.store.FindFinding(req.FindingID)
	if !ok || !finding.Severity.IsHighRisk() {
		return c.Status(404).JSON(fiber.Map{"error": "Finding not eligible for a claim", "details": req.FindingID})
	}

	claim := models.Claim{
		ClaimID:   NextClaimID(cs.store.Claims()),
		Repo:      finding.Repo,
		FineEUR:   req.FineEUR,
		Status:    models.ClaimStatusUnderReview,
		Submitted: cs.now().UTC().Format(store.DateLayout),
	}
	cs.store.AddClaim(claim)

	return c.Status(201).JSON(fiber.Map{
		"title":   "Claim Filed Successfully",
		"message": fmt.Sprintf("Claim %s for %s has been submitted for review.", claim.ClaimID, claim.Repo),
		"claim":   claim,
	})
}
