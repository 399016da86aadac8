package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"aceguard-demo/config"
)

var (
	cfgFile string
	envFile string
	verbose bool

	// Version information
	appVersion string
	appCommit  string
	appDate    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "aceguard",
	Short: "AceGuard EU AI Act compliance demo",
	Long: `AceGuard is an interactive demo of an EU AI Act compliance scanner.

It keeps a self-contained set of repositories, findings, compliance gaps
and insurance claims in memory and serves them over an HTTP API.

Features:
- Simulated repository connection and deep compliance scans
- Kanban board of compliance gaps
- Insurance claims against regulatory fines
- Markdown, CSV, PDF and JSON compliance reports
- Live event stream over WebSocket
- Slack notifications and Prometheus metrics`,
	Version:       getVersionString(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(version, commit, date string) error {
	appVersion = version
	appCommit = commit
	appDate = date
	rootCmd.Version = getVersionString()

	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.aceguard.yaml or $HOME/.aceguard.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig loads the dotenv file and reads in the config file and ENV variables if set.
func initConfig() {
	// ACEGUARD_* variables from a .env file act like real environment variables
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", envFile, err)
		}
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".aceguard" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".aceguard")
	}

	// Environment variables
	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()

	// Read configuration file
	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// loadConfig loads the typed configuration for a subcommand
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = viper.ConfigFileUsed()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	config.SetConfig(cfg)
	return cfg, nil
}

// getVersionString returns formatted version information
func getVersionString() string {
	if appVersion == "" {
		appVersion = "unknown"
	}
	if appCommit == "" {
		appCommit = "unknown"
	}
	if appDate == "" {
		appDate = "unknown"
	}

	return fmt.Sprintf("%s (commit: %s, date: %s)", appVersion, appCommit, appDate)
}
