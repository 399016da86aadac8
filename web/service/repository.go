package service

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"aceguard-demo/models"
	"aceguard-demo/store"
)

// StaleAfter is how long after its last scan a repository is flagged stale
const StaleAfter = 14 * 24 * time.Hour

// RepositoryView is a repository row as listed on the repositories page
type RepositoryView struct {
	models.Repository
	Stale bool `json:"stale"`
}

type RepositoryService struct {
	store       *store.Store
	connectable []models.ConnectableRepository
	now         func() time.Time
}

func NewRepositoryService(s *store.Store, connectable []models.ConnectableRepository, now func() time.Time) *RepositoryService {
	if now == nil {
		now = time.Now
	}
	return &RepositoryService{store: s, connectable: connectable, now: now}
}

// IsStale reports whether the repository has not been scanned within StaleAfter
func IsStale(r models.Repository, now time.Time) bool {
	return r.Scanned() && now.Sub(*r.LastScan) > StaleAfter
}

func (rs *RepositoryService) HandleAPIRepositories(c *fiber.Ctx) error {
	now := rs.now()
	repos := rs.store.Repositories()
	views := make([]RepositoryView, 0, len(repos))
	for _, r := range repos {
		views = append(views, RepositoryView{Repository: r, Stale: IsStale(r, now)})
	}
	return c.JSON(fiber.Map{
		"repositories": views,
		"is_adding":    rs.store.IsAddingRepository(),
	})
}

func (rs *RepositoryService) HandleAPIConnectable(c *fiber.Ctx) error {
	return c.JSON(rs.connectable)
}

type ConnectRequest struct {
	Name string `json:"name"`
}

// HandleAPIConnect starts connecting a repository. Only the demo repository can be connected.
func (rs *RepositoryService) HandleAPIConnect(c *fiber.Ctx) error {
	var req ConnectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body", "details": err.Error()})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name is required"})
	}

	if name != rs.store.DemoRepositoryName() {
		return c.Status(422).JSON(fiber.Map{
			"error":   "Connection Unavailable",
			"details": fmt.Sprintf("Connecting '%s' is not available in this version.", name),
		})
	}

	if _, started := rs.store.AddRepository(); !started {
		return c.Status(409).JSON(fiber.Map{
			"error":   "In Progress",
			"details": "Repository is already connected or being connected.",
		})
	}

	return c.Status(202).JSON(fiber.Map{
		"title":      "Connecting Repository",
		"message":    fmt.Sprintf("Connecting '%s'. It will appear in the list shortly.", name),
		"repository": name,
		"delay_ms":   rs.store.AddDelay().Milliseconds(),
	})
}

// HandleAPIRepositoryDetail serves /repositories/<owner>/<name>
func (rs *RepositoryService) HandleAPIRepositoryDetail(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("*"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid repository name"})
	}

	repo, ok := rs.store.GetRepository(name)
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "Repository not found"})
	}

	findings := []models.Finding{}
	for _, f := range rs.store.Findings() {
		if f.Repo == name {
			findings = append(findings, f)
		}
	}

	return c.JSON(fiber.Map{
		"repository": RepositoryView{Repository: repo, Stale: IsStale(repo, rs.now())},
		"findings":   findings,
	})
}
