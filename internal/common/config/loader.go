// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ServiceNames lists the domain services configured under services.*.
var ServiceNames = []string{
	"realestate",
	"leases",
	"spaces",
	"maintenance",
	"environmental",
	"workplace",
	"certification",
}

func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	// base config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// environment overlay, optional
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig()

	return build(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return build(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	// SERVER_ADDRESS overrides server.address
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, name := range ServiceNames {
		v.SetDefault("services."+name+".enabled", true)
		v.SetDefault("services."+name+".source", SourceFixtures)
		v.SetDefault("services."+name+".timeout", 5000)
		v.SetDefault("services."+name+".delay", 300)
	}
	return v
}

func build(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// expandEnvVars replaces ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig fills secrets that are conventionally supplied by env only.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Database.Postgres.User == "" {
		if val := os.Getenv("DB_USER"); val != "" {
			cfg.Database.Postgres.User = val
		}
	}
	if cfg.Database.Postgres.Password == "" {
		if val := os.Getenv("DB_PASSWORD"); val != "" {
			cfg.Database.Postgres.Password = val
		}
	}
	if cfg.Database.Redis.Password == "" {
		if val := os.Getenv("REDIS_PASSWORD"); val != "" {
			cfg.Database.Redis.Password = val
		}
	}
	if cfg.Gateway.BMS.APIKey == "" {
		if val := os.Getenv("BMS_API_KEY"); val != "" {
			cfg.Gateway.BMS.APIKey = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "iwms-dashboard"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}

	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Elasticsearch.PropertyIndex == "" {
		cfg.Database.Elasticsearch.PropertyIndex = "properties"
	}

	if cfg.Gateway.BMS.Timeout == 0 {
		cfg.Gateway.BMS.Timeout = 10000
	}

	if cfg.Locale.Default == "" {
		cfg.Locale.Default = "id"
	}
	if cfg.Dashboard.RegistryPath == "" {
		cfg.Dashboard.RegistryPath = "configs/page-registry.json"
	}
	if cfg.Dashboard.BuildingID == "" {
		cfg.Dashboard.BuildingID = "BLD-001"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	if cfg.Services == nil {
		cfg.Services = map[string]ServiceConfig{}
	}
	for _, name := range ServiceNames {
		if _, ok := cfg.Services[name]; !ok {
			cfg.Services[name] = ServiceConfig{Enabled: true, Delay: 300}
		}
	}
	for key, svc := range cfg.Services {
		if svc.Source == "" {
			svc.Source = SourceFixtures
		}
		if svc.Timeout == 0 {
			svc.Timeout = 5000
		}
		cfg.Services[key] = svc
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	switch cfg.Locale.Default {
	case "id", "en":
	default:
		return fmt.Errorf("locale.default must be id or en, got %q", cfg.Locale.Default)
	}

	needsPostgres := false
	for name, svc := range cfg.Services {
		switch svc.Source {
		case SourceFixtures:
		case SourcePostgres:
			needsPostgres = true
		case SourceBMS:
			if name != "environmental" {
				return fmt.Errorf("services.%s.source: bms is only supported for environmental", name)
			}
			if cfg.Gateway.BMS.BaseURL == "" {
				return fmt.Errorf("gateway.bms.base_url is required when services.environmental.source is bms")
			}
		default:
			return fmt.Errorf("services.%s.source: unknown source %q", name, svc.Source)
		}
		if svc.CacheTTL > 0 && !cfg.Database.Redis.Enabled {
			return fmt.Errorf("services.%s.cache_ttl requires database.redis.enabled", name)
		}
		if svc.Delay < 0 {
			return fmt.Errorf("services.%s.delay must not be negative", name)
		}
	}

	if needsPostgres || cfg.Database.Postgres.Enabled {
		cfg.Database.Postgres.Enabled = true
		if cfg.Database.Postgres.Host == "" {
			return fmt.Errorf("database.postgres.host is required")
		}
		if cfg.Database.Postgres.Database == "" {
			return fmt.Errorf("database.postgres.database is required")
		}
		if cfg.Database.Postgres.User == "" {
			return fmt.Errorf("database.postgres.user is required")
		}
	}
	if cfg.Database.Elasticsearch.Enabled && len(cfg.Database.Elasticsearch.Addresses) == 0 {
		return fmt.Errorf("database.elasticsearch.addresses is required")
	}
	if cfg.Database.Redis.Enabled && cfg.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required")
	}
	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetServiceConfig retrieves service-specific configuration with fallback to defaults
func GetServiceConfig(cfg *Config, name string) ServiceConfig {
	if svc, exists := cfg.Services[name]; exists {
		return svc
	}
	return ServiceConfig{
		Enabled: true,
		Source:  SourceFixtures,
		Timeout: 5000,
		Delay:   300,
	}
}

// IsServiceEnabled checks if a specific service is enabled
func IsServiceEnabled(cfg *Config, name string) bool {
	if svc, exists := cfg.Services[name]; exists {
		return svc.Enabled
	}
	return true
}
