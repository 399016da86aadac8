package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"aceguard-demo/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long:  `Create a default configuration file or show the effective configuration.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file",
	Long:  `Write the default configuration to path (default ./.aceguard.yaml). Existing files are kept unless --force is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ".aceguard.yaml"
		if len(args) == 1 {
			path = args[0]
		}

		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
		}

		if err := config.GenerateDefaultConfig(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Default configuration written to %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  `Display the configuration after defaults, the config file and ACEGUARD_* environment variables are applied.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		webhook := "(not set)"
		if cfg.Notification.SlackEnabled() {
			webhook = "(set)"
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tVALUE")
		fmt.Fprintln(w, "---\t-----")
		fmt.Fprintf(w, "server.address\t%s\n", cfg.Server.Address())
		fmt.Fprintf(w, "server.events_addr\t%s\n", cfg.Server.EventsAddr)
		fmt.Fprintf(w, "server.enable_cors\t%t\n", cfg.Server.EnableCors)
		fmt.Fprintf(w, "demo.add_delay\t%s\n", cfg.Demo.AddDelay)
		fmt.Fprintf(w, "demo.trend_window\t%d\n", cfg.Demo.TrendWindow)
		fmt.Fprintf(w, "reports.directory\t%s\n", cfg.Reports.Directory)
		fmt.Fprintf(w, "reports.font_path\t%s\n", cfg.Reports.FontPath)
		fmt.Fprintf(w, "notification.slack_webhook_url\t%s\n", webhook)
		fmt.Fprintf(w, "notification.slack_channel\t%s\n", cfg.Notification.SlackChannel)
		fmt.Fprintf(w, "notification.notify_on_scan\t%t\n", cfg.Notification.NotifyOnScan)
		fmt.Fprintf(w, "notification.notify_on_claim\t%t\n", cfg.Notification.NotifyOnClaim)
		fmt.Fprintf(w, "logging.level\t%s\n", cfg.Logging.Level)
		fmt.Fprintf(w, "logging.format\t%s\n", cfg.Logging.Format)
		fmt.Fprintf(w, "logging.output\t%s\n", cfg.Logging.Output)
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
}
