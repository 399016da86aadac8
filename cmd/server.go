package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"aceguard-demo/config"
	"aceguard-demo/logging"
	"aceguard-demo/metrics"
	"aceguard-demo/models"
	"aceguard-demo/notifier"
	"aceguard-demo/seed"
	"aceguard-demo/store"
	"aceguard-demo/web"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the AceGuard API server",
	Long: `Start the AceGuard HTTP API together with the live event stream.

The demo state lives in memory and is restored with POST /api/v1/demo/reset.`,
	RunE: runServer,
}

var (
	serverPort   int
	serverEvents string
)

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().IntVarP(&serverPort, "port", "p", 0, "HTTP API port (overrides server.port)")
	serverCmd.Flags().StringVar(&serverEvents, "events-addr", "", "WebSocket event stream address (overrides server.events_addr)")
}

// app bundles the components shared by the server and demo commands
type app struct {
	cfg       *config.Config
	log       *logrus.Logger
	store     *store.Store
	collector *metrics.Collector
	slack     *notifier.Observer
}

// newApp wires the store with its observers from configuration
func newApp(cfg *config.Config, reg prometheus.Registerer) (*app, error) {
	if err := logging.Init(cfg.Logging); err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}
	log := logrus.StandardLogger()

	st := store.New(seed.Initial(), seed.Demo(),
		store.WithAddDelay(cfg.Demo.AddDelay),
		store.WithTrendWindow(cfg.Demo.TrendWindow),
		store.WithLogger(log),
	)

	collector, err := metrics.NewCollector("aceguard", reg)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	collector.Seed(st)
	st.AddObserver(collector)

	a := &app{cfg: cfg, log: log, store: st, collector: collector}

	if cfg.Notification.SlackEnabled() {
		slack := notifier.NewSlackNotifier(
			cfg.Notification.SlackWebhookURL,
			cfg.Notification.SlackUsername,
			cfg.Notification.SlackChannel,
			":shield:",
		)
		a.slack = slack.Observer(&notifier.NotificationOptions{
			NotifyOnScan:  cfg.Notification.NotifyOnScan,
			NotifyOnClaim: cfg.Notification.NotifyOnClaim,
		}, log)
		st.AddObserver(a.slack)
		log.WithField("channel", cfg.Notification.SlackChannel).Info("Slack notifications enabled")
	}

	return a, nil
}

// applySettings forwards runtime settings changes to the Slack observer
func (a *app) applySettings(s models.Setting) {
	if a.slack == nil {
		return
	}
	opts := a.slack.Options()
	opts.NotifyOnScan = s.NotifyOnScan
	opts.NotifyOnClaim = s.NotifyOnClaim
	opts.CustomChannel = s.SlackChannel
	a.slack.SetOptions(opts)
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}
	if serverEvents != "" {
		cfg.Server.EventsAddr = serverEvents
	}

	a, err := newApp(cfg, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}

	hub := web.NewHub(a.log)
	a.store.AddObserver(hub)
	events := web.NewEventServer(cfg.Server.EventsAddr, hub, a.log)

	server, err := web.NewServer(cfg, a.store,
		web.WithLogger(a.log),
		web.WithVersion(appVersion),
		web.WithSettingsHook(a.applySettings),
	)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	errs := make(chan error, 2)
	go func() { errs <- events.Start() }()
	go func() { errs <- server.Start() }()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	a.log.Infof("Dashboard API: http://%s/api/v1", cfg.Server.Address())
	a.log.Infof("Live events: ws://%s/ws", cfg.Server.EventsAddr)

	select {
	case <-quit:
		a.log.Info("Shutting down server...")
	case err := <-errs:
		if err != nil {
			a.log.WithError(err).Error("Server stopped")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := events.Shutdown(ctx); err != nil {
		a.log.WithError(err).Warn("Event stream forced to shutdown")
	}
	if err := server.Stop(); err != nil {
		a.log.WithError(err).Warn("Server forced to shutdown")
	}
	if a.slack != nil {
		a.slack.Wait()
	}
	return nil
}
