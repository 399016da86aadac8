package service

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"aceguard-demo/models"
	"aceguard-demo/store"
)

type FindingService struct {
	store *store.Store
}

func NewFindingService(s *store.Store) *FindingService {
	return &FindingService{store: s}
}

// FindingFilter narrows the findings list. Empty fields match everything.
type FindingFilter struct {
	Repo     string
	Severity models.Severity
	Bucket   models.Bucket
	Status   models.FindingStatus
}

func (f FindingFilter) Match(finding models.Finding) bool {
	if f.Repo != "" && finding.Repo != f.Repo {
		return false
	}
	if f.Severity != "" && finding.Severity != f.Severity {
		return false
	}
	if f.Bucket != "" && finding.Bucket != f.Bucket {
		return false
	}
	if f.Status != "" && finding.Status != f.Status {
		return false
	}
	return true
}

func (fs *FindingService) HandleAPIFindings(c *fiber.Ctx) error {
	filter := FindingFilter{Repo: c.Query("repo")}

	if raw := strings.TrimSpace(c.Query("severity")); raw != "" {
		sev, ok := models.ParseSeverity(raw)
		if !ok {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid severity filter", "details": raw})
		}
		filter.Severity = sev
	}
	if raw := strings.TrimSpace(c.Query("bucket")); raw != "" {
		bucket, ok := models.ParseBucket(raw)
		if !ok {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid bucket filter", "details": raw})
		}
		filter.Bucket = bucket
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status, ok := models.ParseFindingStatus(raw)
		if !ok {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid status filter", "details": raw})
		}
		filter.Status = status
	}

	all := fs.store.Findings()
	findings := make([]models.Finding, 0, len(all))
	hasProhibited := false
	for _, f := range all {
		if !filter.Match(f) {
			continue
		}
		findings = append(findings, f)
		if f.Bucket == models.BucketProhibited {
			hasProhibited = true
		}
	}

	return c.JSON(fiber.Map{
		"findings":       findings,
		"total":          len(findings),
		"has_prohibited": hasProhibited,
	})
}

func (fs *FindingService) HandleAPIFindingDetail(c *fiber.Ctx) error {
	finding, ok := fs.store.FindFinding(c.Params("id"))
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "Finding not found"})
	}
	return c.JSON(finding)
}
