// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig                `mapstructure:"app"`
	Server    ServerConfig             `mapstructure:"server"`
	Database  DatabaseConfig           `mapstructure:"database"`
	Gateway   GatewayConfig            `mapstructure:"gateway"`
	Services  map[string]ServiceConfig `mapstructure:"services"`
	Locale    LocaleConfig             `mapstructure:"locale"`
	Dashboard DashboardConfig          `mapstructure:"dashboard"`
	Logging   LoggingConfig            `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Enabled       bool     `mapstructure:"enabled"`
	Addresses     []string `mapstructure:"addresses"`
	Username      string   `mapstructure:"username"`
	Password      string   `mapstructure:"password"`
	PropertyIndex string   `mapstructure:"property_index"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GatewayConfig holds upstream HTTP gateways.
type GatewayConfig struct {
	BMS struct {
		BaseURL string `mapstructure:"base_url"`
		APIKey  string `mapstructure:"api_key"`
		Timeout int    `mapstructure:"timeout"` // milliseconds
	} `mapstructure:"bms"`
}

// ServiceConfig holds the settings of one domain service.
type ServiceConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Source   string `mapstructure:"source"`    // fixtures, postgres, bms
	Timeout  int    `mapstructure:"timeout"`   // milliseconds, repository query timeout
	CacheTTL int    `mapstructure:"cache_ttl"` // seconds, 0 disables the summary cache
	Delay    int    `mapstructure:"delay"`     // milliseconds, fixture latency
}

const (
	SourceFixtures = "fixtures"
	SourcePostgres = "postgres"
	SourceBMS      = "bms"
)

// LocaleConfig holds the UI locale settings.
type LocaleConfig struct {
	Default string `mapstructure:"default"`
}

// DashboardConfig holds settings for the server-rendered pages.
type DashboardConfig struct {
	RegistryPath string `mapstructure:"registry_path"`
	BuildingID   string `mapstructure:"building_id"` // building shown on space/energy tabs
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
