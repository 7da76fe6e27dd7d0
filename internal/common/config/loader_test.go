package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// ==========================
// LoadFromFile
// ==========================

func TestLoadFromFile_Defaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, "app:\n  name: test\n"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "id", cfg.Locale.Default)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "properties", cfg.Database.Elasticsearch.PropertyIndex)
	for _, name := range ServiceNames {
		svc := cfg.Services[name]
		assert.True(t, svc.Enabled, name)
		assert.Equal(t, SourceFixtures, svc.Source, name)
		assert.Equal(t, 300, svc.Delay, name)
	}
}

func TestLoadFromFile_ZeroDelayIsKept(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, `
services:
  leases:
    enabled: true
    delay: 0
`))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Services["leases"].Delay)
	assert.Equal(t, SourceFixtures, cfg.Services["leases"].Source)
}

func TestLoadFromFile_ExpandsEnv(t *testing.T) {
	t.Setenv("IWMS_TEST_PG_HOST", "db.internal")
	cfg, err := LoadFromFile(writeConfig(t, `
database:
  postgres:
    enabled: true
    host: ${IWMS_TEST_PG_HOST}
    database: iwms
    user: iwms
`))
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Postgres.Host)
	assert.Contains(t, cfg.Database.Postgres.GetDSN(), "host=db.internal port=5432")
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

// ==========================
// validateConfig
// ==========================

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "unknown locale",
			mutate:  func(c *Config) { c.Locale.Default = "fr" },
			wantErr: "locale.default",
		},
		{
			name: "postgres source requires host",
			mutate: func(c *Config) {
				c.Services["leases"] = ServiceConfig{Enabled: true, Source: SourcePostgres}
			},
			wantErr: "database.postgres.host is required",
		},
		{
			name: "bms only for environmental",
			mutate: func(c *Config) {
				c.Services["leases"] = ServiceConfig{Enabled: true, Source: SourceBMS}
			},
			wantErr: "only supported for environmental",
		},
		{
			name: "bms requires base url",
			mutate: func(c *Config) {
				c.Services["environmental"] = ServiceConfig{Enabled: true, Source: SourceBMS}
			},
			wantErr: "gateway.bms.base_url",
		},
		{
			name: "cache requires redis",
			mutate: func(c *Config) {
				c.Services["realestate"] = ServiceConfig{Enabled: true, Source: SourceFixtures, CacheTTL: 60}
			},
			wantErr: "requires database.redis.enabled",
		},
		{
			name:    "unknown source",
			mutate:  func(c *Config) { c.Services["spaces"] = ServiceConfig{Source: "mongo"} },
			wantErr: "unknown source",
		},
		{
			name: "elasticsearch requires addresses",
			mutate: func(c *Config) {
				c.Database.Elasticsearch.Enabled = true
			},
			wantErr: "database.elasticsearch.addresses",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			applyDefaults(cfg)
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// ==========================
// Helpers
// ==========================

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 300*time.Millisecond, GetDuration(300))
}

func TestGetServiceConfig(t *testing.T) {
	cfg := &Config{Services: map[string]ServiceConfig{
		"leases": {Enabled: false, Source: SourcePostgres},
	}}

	assert.Equal(t, SourcePostgres, GetServiceConfig(cfg, "leases").Source)
	assert.Equal(t, SourceFixtures, GetServiceConfig(cfg, "unknown").Source)
	assert.False(t, IsServiceEnabled(cfg, "leases"))
	assert.True(t, IsServiceEnabled(cfg, "unknown"))
}
