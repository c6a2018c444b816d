package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("DATA_DIR", "/data/publications")
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("BLOB_SOURCE_PREFIX", "")
	t.Setenv("EXPORT_URL", "")
	t.Setenv("NOTIFICATION_EMAIL", "")
	t.Setenv("REPORT_SCHEDULE", "")
	t.Setenv("FILTER_TAGS", "")
	t.Setenv("THREAT_ALERT_THRESHOLD", "")
	t.Setenv("THREAT_LOOKBACK", "")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "daily", cfg.ReportSchedule)
	assert.Equal(t, "file", cfg.StorageBackend)
	assert.Equal(t, "reports", cfg.ReportDir)
	assert.Equal(t, 3, cfg.ThreatAlertThreshold)
	assert.Equal(t, 48*time.Hour, cfg.ThreatLookback)
	assert.Nil(t, cfg.FilterTags)
	assert.False(t, cfg.NotificationsEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("FILTER_TAGS", "corinthians, jogo ,,")
	t.Setenv("THREAT_LOOKBACK", "6h")
	t.Setenv("THREAT_ALERT_THRESHOLD", "5")
	t.Setenv("STORAGE_BACKEND", "AZURE")
	t.Setenv("AZURE_STORAGE_ACCOUNT", "fanwatch")
	t.Setenv("TEAMS_WEBHOOK_URL", "https://example.com/hook")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"corinthians", "jogo"}, cfg.FilterTags)
	assert.Equal(t, 6*time.Hour, cfg.ThreatLookback)
	assert.Equal(t, 5, cfg.ThreatAlertThreshold)
	assert.Equal(t, "azure", cfg.StorageBackend)
	assert.True(t, cfg.NotificationsEnabled())
}

func TestLoad_InvalidValuesFallBackToDefaults(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("THREAT_LOOKBACK", "two days")
	t.Setenv("SMTP_PORT", "smtp")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 48*time.Hour, cfg.ThreatLookback)
	assert.Equal(t, 587, cfg.SMTPPort)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			ReportSchedule:       "weekly",
			TimeZone:             "UTC",
			DataDir:              "/data",
			StorageBackend:       "file",
			ReportDir:            "reports",
			ThreatAlertThreshold: 1,
			ThreatLookback:       time.Hour,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "Valid", mutate: func(c *Config) {}},
		{name: "Bad schedule", mutate: func(c *Config) { c.ReportSchedule = "hourly" }, wantErr: "REPORT_SCHEDULE"},
		{name: "Bad timezone", mutate: func(c *Config) { c.TimeZone = "Mars/Olympus" }, wantErr: "TIMEZONE"},
		{name: "No source", mutate: func(c *Config) { c.DataDir = "" }, wantErr: "publication source"},
		{name: "Export only", mutate: func(c *Config) { c.DataDir = ""; c.ExportURL = "http://scraper/export" }},
		{name: "Unknown backend", mutate: func(c *Config) { c.StorageBackend = "s3" }, wantErr: "STORAGE_BACKEND"},
		{name: "Azure without account", mutate: func(c *Config) { c.StorageBackend = "azure" }, wantErr: "AZURE_STORAGE_ACCOUNT"},
		{name: "Blob prefix on file backend", mutate: func(c *Config) { c.BlobSourcePrefix = "raw/" }, wantErr: "BLOB_SOURCE_PREFIX"},
		{name: "Email without SMTP", mutate: func(c *Config) { c.NotificationEmail = "ops@example.com" }, wantErr: "SMTP"},
		{name: "Zero threshold", mutate: func(c *Config) { c.ThreatAlertThreshold = 0 }, wantErr: "THREAT_ALERT_THRESHOLD"},
		{name: "Zero lookback", mutate: func(c *Config) { c.ThreatLookback = 0 }, wantErr: "THREAT_LOOKBACK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
