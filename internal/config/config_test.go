package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Web.Port)
	assert.Equal(t, "USD", cfg.Pricing.Currency)
	assert.Equal(t, 3, cfg.Lifecycle.MaxAttempts)
	assert.Equal(t, AuditSinkNone, cfg.Audit.Sink)

	threshold, err := cfg.VIPThreshold()
	require.NoError(t, err)
	assert.True(t, threshold.IsZero())
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ordercore.yml")
	content := `
web:
  port: 9090
pricing:
  currency: EUR
lifecycle:
  max_attempts: 5
  initial_backoff: 50ms
stats:
  vip_threshold: "1000.00"
audit:
  sink: csv
  path: /tmp/audit.csv
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Web.Port)
	assert.Equal(t, "0.0.0.0", cfg.Web.Host, "unset keys keep defaults")
	assert.Equal(t, 5, cfg.Lifecycle.MaxAttempts)
	assert.Equal(t, 50*time.Millisecond, cfg.Lifecycle.InitialBackoff)
	assert.Equal(t, AuditSinkCSV, cfg.Audit.Sink)

	cur, err := cfg.StoreCurrency()
	require.NoError(t, err)
	assert.Equal(t, "EUR", cur.String())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"ORDERCORE_WEB_PORT":                  "7000",
		"ORDERCORE_DATABASE_MIGRATE":          "false",
		"ORDERCORE_LIFECYCLE_INITIAL_BACKOFF": "1s",
		"ORDERCORE_AUDIT_SINK":                "kafka",
		"ORDERCORE_AUDIT_BROKERS":             "k1:9092,k2:9092",
	}

	cfg := *DefaultAppConfig
	cfg.applyEnv(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})

	assert.Equal(t, 7000, cfg.Web.Port)
	assert.False(t, cfg.Database.Migrate)
	assert.Equal(t, time.Second, cfg.Lifecycle.InitialBackoff)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Audit.Brokers)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(c *AppConfig)
		wantError string
	}{
		{
			name:   "defaults: ok",
			modify: func(*AppConfig) {},
		},
		{
			name:      "bad currency: fail",
			modify:    func(c *AppConfig) { c.Pricing.Currency = "XYZW" },
			wantError: "pricing.currency",
		},
		{
			name:      "negative vip threshold: fail",
			modify:    func(c *AppConfig) { c.Stats.VIPThreshold = "-1" },
			wantError: "stats.vip_threshold \"-1\" is negative",
		},
		{
			name:      "zero attempts: fail",
			modify:    func(c *AppConfig) { c.Lifecycle.MaxAttempts = 0 },
			wantError: "lifecycle.max_attempts must be positive, got 0",
		},
		{
			name:      "xlsx sink without path: fail",
			modify:    func(c *AppConfig) { c.Audit.Sink = AuditSinkXLSX },
			wantError: "audit.path is required for the xlsx sink",
		},
		{
			name:      "unknown sink: fail",
			modify:    func(c *AppConfig) { c.Audit.Sink = "sheets" },
			wantError: "audit.sink \"sheets\" is unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *DefaultAppConfig
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.wantError != "" {
				require.ErrorContains(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}
