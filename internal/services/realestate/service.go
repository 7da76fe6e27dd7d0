// internal/services/realestate/service.go
package realestate

import (
	"context"
	"strings"

	"iwms-dashboard/internal/common/cache"
	apperrors "iwms-dashboard/internal/common/errors"
	"iwms-dashboard/internal/common/logger"
	"iwms-dashboard/internal/common/result"
	"iwms-dashboard/internal/models"
)

type Service struct {
	ListProperties      result.Wrapped0[[]models.Property]
	GetProperty         result.Wrapped[string, models.Property]
	SearchProperties    result.Wrapped[string, []models.Property]
	GetPortfolioSummary result.Wrapped0[models.PortfolioSummary]
}

type handler struct {
	config   *Config
	repo     Repository
	searcher Searcher
	cache    *cache.Cache
	logger   logger.Logger
}

func NewService(cfg *Config, repo Repository, searcher Searcher, c *cache.Cache, log logger.Logger, opts ...result.Option) *Service {
	if searcher == nil {
		searcher = &ScanSearcher{Repo: repo}
	}
	h := &handler{
		config:   cfg,
		repo:     repo,
		searcher: searcher,
		cache:    c,
		logger:   log.WithFields(map[string]interface{}{"service": ServiceName}),
	}
	return &Service{
		ListProperties:      result.Wrap0(h.repo.ListProperties, result.Named("realestate.list", opts)...),
		GetProperty:         result.Wrap(h.repo.GetProperty, result.Named("realestate.get", opts)...),
		SearchProperties:    result.Wrap(h.search, result.Named("realestate.search", opts)...),
		GetPortfolioSummary: result.Wrap0(h.summary, result.Named("realestate.summary", opts)...),
	}
}

func (h *handler) search(ctx context.Context, query string) ([]models.Property, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.NewInvalidParameterError("q", "search text is required")
	}
	return h.searcher.SearchProperties(ctx, query)
}

func (h *handler) summary(ctx context.Context) (models.PortfolioSummary, error) {
	return cache.GetOrLoad(ctx, h.cache, "realestate:summary", h.config.CacheTTL, func(ctx context.Context) (models.PortfolioSummary, error) {
		all, err := h.repo.ListProperties(ctx)
		if err != nil {
			return models.PortfolioSummary{}, err
		}
		h.logger.Debug("summary recomputed", map[string]interface{}{"properties": len(all)})
		return models.SummarizePortfolio(all), nil
	})
}
