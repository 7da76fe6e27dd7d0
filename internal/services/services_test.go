package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iwms-dashboard/internal/common/config"
	"iwms-dashboard/internal/common/logger"
)

func createTestConfig() *config.Config {
	cfg := &config.Config{
		App:      config.AppConfig{Name: "iwms-test"},
		Services: map[string]config.ServiceConfig{},
	}
	for _, name := range config.ServiceNames {
		cfg.Services[name] = config.ServiceConfig{Enabled: true, Source: config.SourceFixtures, Timeout: 1000}
	}
	return cfg
}

func TestNew_AllFixtures(t *testing.T) {
	s, err := New(createTestConfig(), Dependencies{}, logger.NewTestLogger(t))
	require.NoError(t, err)

	assert.NotNil(t, s.RealEstate)
	assert.NotNil(t, s.Leases)
	assert.NotNil(t, s.Spaces)
	assert.NotNil(t, s.Maintenance)
	assert.NotNil(t, s.Environmental)
	assert.NotNil(t, s.Workplace)
	assert.NotNil(t, s.Certification)

	props, ok := s.RealEstate.SearchProperties(context.Background(), "jakarta").Data()
	require.True(t, ok)
	assert.NotEmpty(t, props)
}

func TestNew_DisabledServiceIsNil(t *testing.T) {
	cfg := createTestConfig()
	cfg.Services["workplace"] = config.ServiceConfig{Enabled: false}

	s, err := New(cfg, Dependencies{}, logger.NewTestLogger(t))
	require.NoError(t, err)
	assert.Nil(t, s.Workplace)
	assert.NotNil(t, s.Leases)
}

func TestNew_PostgresWithoutConnection(t *testing.T) {
	cfg := createTestConfig()
	cfg.Services["leases"] = config.ServiceConfig{Enabled: true, Source: config.SourcePostgres}

	_, err := New(cfg, Dependencies{}, logger.NewTestLogger(t))
	assert.Error(t, err)
}

func TestNew_NothingEnabled(t *testing.T) {
	cfg := createTestConfig()
	for _, name := range config.ServiceNames {
		cfg.Services[name] = config.ServiceConfig{Enabled: false}
	}
	_, err := New(cfg, Dependencies{}, logger.NewTestLogger(t))
	assert.Error(t, err)
}
