package web

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"aceguard-demo/config"
	"aceguard-demo/models"
	"aceguard-demo/report"
	"aceguard-demo/seed"
	"aceguard-demo/store"
	"aceguard-demo/web/service"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server is the AceGuard HTTP API
type Server struct {
	app       *fiber.App
	cfg       *config.Config
	store     *store.Store
	generator *report.Generator
	gatherer  prometheus.Gatherer
	log       *logrus.Logger
	version   string
	now       func() time.Time
	onSetting func(models.Setting)

	settings *service.SettingService
}

type Option func(*Server)

// WithGenerator replaces the report generator built from configuration
func WithGenerator(g *report.Generator) Option {
	return func(s *Server) { s.generator = g }
}

// WithGatherer sets the registry served on /metrics
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

func WithLogger(l *logrus.Logger) Option {
	return func(s *Server) { s.log = l }
}

func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithSettingsHook is called after the runtime settings change
func WithSettingsHook(fn func(models.Setting)) Option {
	return func(s *Server) { s.onSetting = fn }
}

// NewServer creates the fiber app and registers every route
func NewServer(cfg *config.Config, st *store.Store, opts ...Option) (*Server, error) {
	s := &Server{
		cfg:      cfg,
		store:    st,
		gatherer: prometheus.DefaultGatherer,
		log:      logrus.StandardLogger(),
		version:  "dev",
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.generator == nil {
		s.generator = report.NewGenerator(cfg.Reports.Directory, cfg.Reports.FontPath, seed.SampleReport(), seed.ComplianceData()).
			WithClock(s.now)
	}

	templates, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(templates), ".html")

	app := fiber.New(fiber.Config{
		Views:                 engine,
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{Output: s.log.Writer()}))
	if cfg.Server.EnableCors {
		app.Use(cors.New())
	}

	s.app = app
	s.setupRoutes()
	return s, nil
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	health := service.NewHealthService(s.store, s.version)
	dashboard := service.NewDashboardService(s.store)
	repositories := service.NewRepositoryService(s.store, seed.ConnectableRepositories(), s.now)
	findings := service.NewFindingService(s.store)
	scans := service.NewScanService(s.store, seed.ScanLogs())
	gaps := service.NewGapService(s.store)
	claims := service.NewClaimService(s.store, s.now)
	reports := service.NewReportService(s.generator)
	admin := service.NewAdminService(service.AdminConsole{
		Users:      seed.AdminUsers(),
		RuleSets:   seed.RuleSets(),
		SystemLogs: seed.SystemLogs(),
		Plan:       seed.BillingPlan,
	})
	s.settings = service.NewSettingService(s.initialSettings(), s.onSetting)
	notifications := service.NewNotificationService(s.version)

	s.app.Get("/reports/view", reports.HandleReportView)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	api := s.app.Group("/api/v1")
	api.Get("/health", health.HandleHealthCheck)
	api.Post("/demo/reset", health.HandleAPIReset)

	api.Get("/dashboard", dashboard.HandleAPIDashboard)

	api.Get("/repositories", repositories.HandleAPIRepositories)
	api.Get("/repositories/connectable", repositories.HandleAPIConnectable)
	api.Post("/repositories/connect", repositories.HandleAPIConnect)
	api.Get("/repositories/*", repositories.HandleAPIRepositoryDetail)

	api.Get("/findings", findings.HandleAPIFindings)
	api.Get("/findings/:id", findings.HandleAPIFindingDetail)

	api.Get("/scans", scans.HandleAPIScans)
	api.Get("/scans/logs", scans.HandleAPIScanLogs)
	api.Post("/scans", scans.HandleAPIRunScan)

	api.Get("/gaps", gaps.HandleAPIGaps)
	api.Patch("/gaps/:id", gaps.HandleAPIUpdateGap)

	api.Get("/claims", claims.HandleAPIClaims)
	api.Post("/claims", claims.HandleAPIFileClaim)

	api.Get("/reports/compliance", reports.HandleAPICompliance)
	api.Get("/reports/summary", reports.HandleAPISummary)
	api.Get("/reports/:format", reports.HandleAPIReportDownload)

	api.Get("/admin", admin.HandleAPIAdmin)
	api.Get("/settings", s.settings.HandleAPIGetSettings)
	api.Put("/settings", s.settings.HandleAPIPutSettings)
	api.Post("/notifications/slack/test", notifications.HandleAPISlackTest)
}

func (s *Server) initialSettings() models.Setting {
	return models.Setting{
		AppName:          "AceGuard",
		AppVersion:       s.version,
		LogLevel:         s.cfg.Logging.Level,
		AddDelayMillis:   s.store.AddDelay().Milliseconds(),
		TrendWindow:      s.store.TrendWindow(),
		SlackChannel:     s.cfg.Notification.SlackChannel,
		SlackEnabled:     s.cfg.Notification.SlackEnabled(),
		NotifyOnScan:     s.cfg.Notification.NotifyOnScan,
		NotifyOnClaim:    s.cfg.Notification.NotifyOnClaim,
		EnableCors:       s.cfg.Server.EnableCors,
		ReportsDirectory: s.cfg.Reports.Directory,
	}
}

// App exposes the fiber app, mainly for app.Test
func (s *Server) App() *fiber.App {
	return s.app
}

// Start starts the web server
func (s *Server) Start() error {
	s.log.WithField("addr", s.cfg.Server.Address()).Info("Starting AceGuard API")
	return s.app.Listen(s.cfg.Server.Address())
}

// Stop gracefully stops the web server
func (s *Server) Stop() error {
	return s.app.Shutdown()
}
