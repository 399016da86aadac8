package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variable overrides, e.g. ACEGUARD_SERVER_PORT
const EnvPrefix = "ACEGUARD"

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `yaml:"server" mapstructure:"server"`
	Demo         DemoConfig         `yaml:"demo" mapstructure:"demo"`
	Reports      ReportsConfig      `yaml:"reports" mapstructure:"reports"`
	Notification NotificationConfig `yaml:"notification" mapstructure:"notification"`
	Logging      LoggingConfig      `yaml:"logging" mapstructure:"logging"`
}

// ServerConfig configures the HTTP API and the live event listener
type ServerConfig struct {
	Host       string `yaml:"host" mapstructure:"host"`
	Port       int    `yaml:"port" mapstructure:"port"`
	EventsAddr string `yaml:"events_addr" mapstructure:"events_addr"`
	EnableCors bool   `yaml:"enable_cors" mapstructure:"enable_cors"`
}

// DemoConfig tunes the in-memory demo store
type DemoConfig struct {
	AddDelay    time.Duration `yaml:"add_delay" mapstructure:"add_delay"`
	TrendWindow int           `yaml:"trend_window" mapstructure:"trend_window"`
}

type ReportsConfig struct {
	Directory string `yaml:"directory" mapstructure:"directory"`
	FontPath  string `yaml:"font_path" mapstructure:"font_path"`
}

// NotificationConfig represents Slack notification settings
type NotificationConfig struct {
	SlackWebhookURL string `yaml:"slack_webhook_url" mapstructure:"slack_webhook_url"`
	SlackChannel    string `yaml:"slack_channel" mapstructure:"slack_channel"`
	SlackUsername   string `yaml:"slack_username" mapstructure:"slack_username"`
	NotifyOnScan    bool   `yaml:"notify_on_scan" mapstructure:"notify_on_scan"`
	NotifyOnClaim   bool   `yaml:"notify_on_claim" mapstructure:"notify_on_claim"`
}

// SlackEnabled reports whether a webhook is configured
func (n NotificationConfig) SlackEnabled() bool {
	return n.SlackWebhookURL != ""
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	Output string `yaml:"output" mapstructure:"output"`
	File   string `yaml:"file" mapstructure:"file"`
}

// Address returns the host:port the HTTP API listens on
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

var (
	mu     sync.Mutex
	config *Config
)

// GetConfig returns the loaded configuration, loading it from ACEGUARD_CONFIG_PATH on first use
func GetConfig() *Config {
	mu.Lock()
	defer mu.Unlock()
	if config == nil {
		loaded, err := LoadConfig(os.Getenv(EnvPrefix + "_CONFIG_PATH"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config, using defaults: %v\n", err)
			loaded = getMinimalConfig()
		}
		config = loaded
	}
	return config
}

// SetConfig replaces the process-wide configuration
func SetConfig(c *Config) {
	mu.Lock()
	defer mu.Unlock()
	config = c
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(".aceguard")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
		v.AddConfigPath("/etc/aceguard")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	loaded := &Config{}
	if err := v.Unmarshal(loaded); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateAndSetDefaults(loaded); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return loaded, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.events_addr", ":8081")
	v.SetDefault("server.enable_cors", true)

	v.SetDefault("demo.add_delay", "2500ms")
	v.SetDefault("demo.trend_window", 12)

	v.SetDefault("reports.directory", "./reports")
	v.SetDefault("reports.font_path", "")

	v.SetDefault("notification.slack_webhook_url", "")
	v.SetDefault("notification.slack_channel", "")
	v.SetDefault("notification.slack_username", "AceGuard")
	v.SetDefault("notification.notify_on_scan", true)
	v.SetDefault("notification.notify_on_claim", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.file", "")
}

// validateAndSetDefaults validates configuration and sets computed defaults
func validateAndSetDefaults(c *Config) error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Demo.AddDelay < 0 {
		return fmt.Errorf("demo.add_delay must not be negative")
	}
	if c.Demo.TrendWindow <= 0 {
		c.Demo.TrendWindow = 12
	}

	switch strings.ToLower(c.Logging.Format) {
	case "", "text":
		c.Logging.Format = "text"
	case "json":
		c.Logging.Format = "json"
	default:
		return fmt.Errorf("unsupported logging format %q", c.Logging.Format)
	}

	if webhook := c.Notification.SlackWebhookURL; webhook != "" && !strings.HasPrefix(webhook, "https://hooks.slack.com/") {
		return fmt.Errorf("invalid Slack webhook URL format")
	}

	c.Reports.Directory = os.ExpandEnv(c.Reports.Directory)
	c.Reports.FontPath = os.ExpandEnv(c.Reports.FontPath)
	c.Logging.File = os.ExpandEnv(c.Logging.File)
	if c.Reports.Directory == "" {
		c.Reports.Directory = "./reports"
	}
	c.Reports.Directory = filepath.Clean(c.Reports.Directory)

	return nil
}

// getMinimalConfig returns a minimal configuration with defaults
func getMinimalConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:       "0.0.0.0",
			Port:       8080,
			EventsAddr: ":8081",
			EnableCors: true,
		},
		Demo: DemoConfig{
			AddDelay:    2500 * time.Millisecond,
			TrendWindow: 12,
		},
		Reports: ReportsConfig{
			Directory: "./reports",
		},
		Notification: NotificationConfig{
			SlackUsername: "AceGuard",
			NotifyOnScan:  true,
			NotifyOnClaim: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
	}
}

// Default returns a fresh copy of the default configuration
func Default() *Config {
	return getMinimalConfig()
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateDefaultConfig creates a default configuration file
func GenerateDefaultConfig(filePath string) error {
	return SaveConfig(getMinimalConfig(), filePath)
}
