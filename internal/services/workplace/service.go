// internal/services/workplace/service.go
package workplace

import (
	"context"

	"iwms-dashboard/internal/common/cache"
	"iwms-dashboard/internal/common/logger"
	"iwms-dashboard/internal/common/result"
	"iwms-dashboard/internal/models"
)

type Service struct {
	ListAmenities          result.Wrapped0[[]models.Amenity]
	ListFeedback           result.Wrapped0[[]models.Feedback]
	GetSatisfactionSummary result.Wrapped0[models.SatisfactionSummary]
}

type handler struct {
	config *Config
	repo   Repository
	cache  *cache.Cache
	logger logger.Logger
}

func NewService(cfg *Config, repo Repository, c *cache.Cache, log logger.Logger, opts ...result.Option) *Service {
	h := &handler{
		config: cfg,
		repo:   repo,
		cache:  c,
		logger: log.WithFields(map[string]interface{}{"service": ServiceName}),
	}
	return &Service{
		ListAmenities:          result.Wrap0(h.repo.ListAmenities, result.Named("workplace.amenities", opts)...),
		ListFeedback:           result.Wrap0(h.repo.ListFeedback, result.Named("workplace.feedback", opts)...),
		GetSatisfactionSummary: result.Wrap0(h.summary, result.Named("workplace.satisfaction", opts)...),
	}
}

func (h *handler) summary(ctx context.Context) (models.SatisfactionSummary, error) {
	return cache.GetOrLoad(ctx, h.cache, "workplace:satisfaction", h.config.CacheTTL, func(ctx context.Context) (models.SatisfactionSummary, error) {
		feedback, err := h.repo.ListFeedback(ctx)
		if err != nil {
			return models.SatisfactionSummary{}, err
		}
		h.logger.Debug("summary recomputed", map[string]interface{}{"feedback": len(feedback)})
		return models.SummarizeFeedback(feedback), nil
	})
}
