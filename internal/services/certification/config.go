// internal/services/certification/config.go
package certification

import (
	"time"

	"iwms-dashboard/internal/common/config"
)

const ServiceName = "certification"

type Config struct {
	Source   string
	Timeout  time.Duration
	CacheTTL time.Duration
	Delay    time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	sc := config.GetServiceConfig(cfg, ServiceName)
	return &Config{
		Source:   sc.Source,
		Timeout:  config.GetDuration(sc.Timeout),
		CacheTTL: time.Duration(sc.CacheTTL) * time.Second,
		Delay:    config.GetDuration(sc.Delay),
	}
}
