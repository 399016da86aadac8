package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"

	"aceguard-demo/models"
	"aceguard-demo/store"
)

// scanDuration is the simulated duration shown for every deep scan
const scanDuration = "23:45:12"

type ScanService struct {
	store    *store.Store
	scanLogs []models.ScanLog
}

func NewScanService(s *store.Store, scanLogs []models.ScanLog) *ScanService {
	return &ScanService{store: s, scanLogs: scanLogs}
}

// ScanHistory derives scan records from repositories that have been scanned, newest first
func ScanHistory(repos []models.Repository) []models.ScanRecord {
	records := make([]models.ScanRecord, 0, len(repos))
	for _, r := range repos {
		if !r.Scanned() {
			continue
		}
		status := models.ScanStatusCompliant
		if r.HighRisk > 0 {
			status = models.ScanStatusIssuesFound
		}
		records = append(records, models.ScanRecord{
			Repository: r.Name,
			Branch:     r.Branch,
			ScannedAt:  *r.LastScan,
			HighRisk:   r.HighRisk,
			Status:     status,
			Duration:   scanDuration,
			DiffHash:   diffHash(r.Name),
		})
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ScannedAt.After(records[j].ScannedAt)
	})
	return records
}

func diffHash(name string) string {
	runes := []rune(name)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return string(runes) + "..."
}

func (ss *ScanService) HandleAPIScans(c *fiber.Ctx) error {
	repos := ss.store.Repositories()
	scanning := []string{}
	for _, r := range repos {
		if r.IsScanning {
			scanning = append(scanning, r.Name)
		}
	}
	return c.JSON(fiber.Map{
		"history":  ScanHistory(repos),
		"scanning": scanning,
	})
}

// HandleAPIScanLogs returns the scanner run log shown on the admin console
func (ss *ScanService) HandleAPIScanLogs(c *fiber.Ctx) error {
	return c.JSON(ss.scanLogs)
}

type ScanRequest struct {
	Repository string `json:"repository"`
}

// HandleAPIRunScan starts a deep compliance scan of a repository
func (ss *ScanService) HandleAPIRunScan(c *fiber.Ctx) error {
	var req ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body", "details": err.Error()})
	}
	name := strings.TrimSpace(req.Repository)
	if name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "repository is required"})
	}

	if repo, ok := ss.store.GetRepository(name); ok && repo.IsScanning {
		return c.Status(409).JSON(fiber.Map{
			"error":   "Scan already in progress",
			"details": fmt.Sprintf("A scan is already running for '%s'.", name),
		})
	}

	result := ss.store.RunScan(name)

	return c.Status(202).JSON(fiber.Map{
		"title":   "Deep Compliance Scan Initiated",
		"message": fmt.Sprintf("A full compliance scan for '%s' has been queued. Results may take up to 24 hours.", name),
		"result":  result,
	})
}
