// Package services builds the domain services from configuration.
package services

import (
	"fmt"

	"iwms-dashboard/internal/common/cache"
	"iwms-dashboard/internal/common/config"
	"iwms-dashboard/internal/common/database"
	httpclient "iwms-dashboard/internal/common/http"
	"iwms-dashboard/internal/common/logger"
	"iwms-dashboard/internal/common/result"
	"iwms-dashboard/internal/services/certification"
	"iwms-dashboard/internal/services/environmental"
	"iwms-dashboard/internal/services/leases"
	"iwms-dashboard/internal/services/maintenance"
	"iwms-dashboard/internal/services/realestate"
	"iwms-dashboard/internal/services/spaces"
	"iwms-dashboard/internal/services/workplace"
)

// Dependencies are the shared clients; any of them may be nil when the
// corresponding backend is disabled.
type Dependencies struct {
	Postgres      *database.PostgresClient
	Redis         *database.RedisClient
	Elasticsearch *database.ElasticsearchClient
	BMS           *httpclient.Client
}

// Services holds one service per domain. A disabled domain is nil.
type Services struct {
	RealEstate    *realestate.Service
	Leases        *leases.Service
	Spaces        *spaces.Service
	Maintenance   *maintenance.Service
	Environmental *environmental.Service
	Workplace     *workplace.Service
	Certification *certification.Service
}

// New builds every enabled service. opts are applied to every wrapped operation.
func New(cfg *config.Config, deps Dependencies, log logger.Logger, opts ...result.Option) (*Services, error) {
	c := cache.New(deps.Redis, cfg.App.Name+":", log)
	s := &Services{}

	if config.IsServiceEnabled(cfg, realestate.ServiceName) {
		scfg := realestate.LoadConfig(cfg)
		repo, err := realestate.NewRepository(scfg, deps.Postgres)
		if err != nil {
			return nil, err
		}
		searcher := realestate.NewSearcher(repo, deps.Elasticsearch, cfg.Database.Elasticsearch.PropertyIndex)
		s.RealEstate = realestate.NewService(scfg, repo, searcher, c, log, opts...)
	}

	if config.IsServiceEnabled(cfg, leases.ServiceName) {
		scfg := leases.LoadConfig(cfg)
		repo, err := leases.NewRepository(scfg, deps.Postgres)
		if err != nil {
			return nil, err
		}
		s.Leases = leases.NewService(scfg, repo, c, log, opts...)
	}

	if config.IsServiceEnabled(cfg, spaces.ServiceName) {
		scfg := spaces.LoadConfig(cfg)
		repo, err := spaces.NewRepository(scfg, deps.Postgres)
		if err != nil {
			return nil, err
		}
		s.Spaces = spaces.NewService(scfg, repo, c, log, opts...)
	}

	if config.IsServiceEnabled(cfg, maintenance.ServiceName) {
		scfg := maintenance.LoadConfig(cfg)
		repo, err := maintenance.NewRepository(scfg, deps.Postgres)
		if err != nil {
			return nil, err
		}
		s.Maintenance = maintenance.NewService(scfg, repo, c, log, opts...)
	}

	if config.IsServiceEnabled(cfg, environmental.ServiceName) {
		scfg := environmental.LoadConfig(cfg)
		repo, err := environmental.NewRepository(scfg, deps.Postgres, deps.BMS)
		if err != nil {
			return nil, err
		}
		s.Environmental = environmental.NewService(scfg, repo, c, log, opts...)
	}

	if config.IsServiceEnabled(cfg, workplace.ServiceName) {
		scfg := workplace.LoadConfig(cfg)
		repo, err := workplace.NewRepository(scfg, deps.Postgres)
		if err != nil {
			return nil, err
		}
		s.Workplace = workplace.NewService(scfg, repo, c, log, opts...)
	}

	if config.IsServiceEnabled(cfg, certification.ServiceName) {
		scfg := certification.LoadConfig(cfg)
		repo, err := certification.NewRepository(scfg, deps.Postgres)
		if err != nil {
			return nil, err
		}
		s.Certification = certification.NewService(scfg, repo, c, log, opts...)
	}

	if s.count() == 0 {
		return nil, fmt.Errorf("no services enabled")
	}
	return s, nil
}

func (s *Services) count() int {
	n := 0
	for _, ok := range []bool{
		s.RealEstate != nil, s.Leases != nil, s.Spaces != nil, s.Maintenance != nil,
		s.Environmental != nil, s.Workplace != nil, s.Certification != nil,
	} {
		if ok {
			n++
		}
	}
	return n
}
