package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Schedule configuration
	ReportSchedule string // "daily" or "weekly"
	TimeZone       string

	// Publication sources
	DataDir          string
	ExportURL        string
	BlobSourcePrefix string

	// Report storage
	StorageBackend   string // "file" or "azure"
	ReportDir        string
	StorageAccount   string
	StorageContainer string

	// Notification configuration
	TeamsWebhookURL   string
	NotificationEmail string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string

	// Only publications carrying every tag are analyzed
	FilterTags []string

	// Threat alerting
	ThreatAlertThreshold int
	ThreatLookback       time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Debug:          getBoolEnv("DEBUG", false),
		ReportSchedule: getEnv("REPORT_SCHEDULE", "daily"),
		TimeZone:       getEnv("TIMEZONE", "America/Sao_Paulo"),

		DataDir:          getEnv("DATA_DIR", ""),
		ExportURL:        getEnv("EXPORT_URL", ""),
		BlobSourcePrefix: getEnv("BLOB_SOURCE_PREFIX", ""),

		StorageBackend:   strings.ToLower(getEnv("STORAGE_BACKEND", "file")),
		ReportDir:        getEnv("REPORT_DIR", "reports"),
		StorageAccount:   getEnv("AZURE_STORAGE_ACCOUNT", ""),
		StorageContainer: getEnv("AZURE_STORAGE_CONTAINER", "publications"),

		TeamsWebhookURL:   getEnv("TEAMS_WEBHOOK_URL", ""),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),

		FilterTags: getSliceEnv("FILTER_TAGS", nil),

		ThreatAlertThreshold: getIntEnv("THREAT_ALERT_THRESHOLD", 3),
		ThreatLookback:       getDurationEnv("THREAT_LOOKBACK", 48*time.Hour),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// NotificationsEnabled reports whether any delivery channel is configured
func (c *Config) NotificationsEnabled() bool {
	return c.TeamsWebhookURL != "" || c.NotificationEmail != ""
}

func (c *Config) validate() error {
	if c.ReportSchedule != "daily" && c.ReportSchedule != "weekly" {
		return fmt.Errorf("REPORT_SCHEDULE must be 'daily' or 'weekly'")
	}

	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("TIMEZONE %q is not a valid location: %w", c.TimeZone, err)
	}

	if c.DataDir == "" && c.ExportURL == "" && c.BlobSourcePrefix == "" {
		return fmt.Errorf("at least one publication source must be configured (DATA_DIR, EXPORT_URL or BLOB_SOURCE_PREFIX)")
	}

	switch c.StorageBackend {
	case "file":
		if c.ReportDir == "" {
			return fmt.Errorf("REPORT_DIR is required when STORAGE_BACKEND is 'file'")
		}
		if c.BlobSourcePrefix != "" {
			return fmt.Errorf("BLOB_SOURCE_PREFIX requires STORAGE_BACKEND 'azure'")
		}
	case "azure":
		if c.StorageAccount == "" {
			return fmt.Errorf("AZURE_STORAGE_ACCOUNT is required when STORAGE_BACKEND is 'azure'")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be 'file' or 'azure'")
	}

	if c.NotificationEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when NOTIFICATION_EMAIL is set")
		}
	}

	if c.ThreatAlertThreshold < 1 {
		return fmt.Errorf("THREAT_ALERT_THRESHOLD must be at least 1")
	}
	if c.ThreatLookback <= 0 {
		return fmt.Errorf("THREAT_LOOKBACK must be positive")
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
