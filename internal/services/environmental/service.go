// internal/services/environmental/service.go
package environmental

import (
	"context"

	"iwms-dashboard/internal/common/cache"
	apperrors "iwms-dashboard/internal/common/errors"
	"iwms-dashboard/internal/common/logger"
	"iwms-dashboard/internal/common/result"
	"iwms-dashboard/internal/models"
)

type Service struct {
	ListEnergyData      result.Wrapped[string, []models.EnergyData]
	GetEmissionsSummary result.Wrapped[string, models.EmissionsSummary]
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
		ListEnergyData:      result.Wrap(h.listEnergyData, result.Named("environmental.energy", opts)...),
		GetEmissionsSummary: result.Wrap(h.summary, result.Named("environmental.emissions", opts)...),
	}
}

func (h *handler) listEnergyData(ctx context.Context, buildingID string) ([]models.EnergyData, error) {
	if buildingID == "" {
		return nil, apperrors.NewInvalidParameterError("buildingId", "building id is required")
	}
	return h.repo.ListEnergyData(ctx, buildingID)
}

func (h *handler) summary(ctx context.Context, buildingID string) (models.EmissionsSummary, error) {
	if buildingID == "" {
		return models.EmissionsSummary{}, apperrors.NewInvalidParameterError("buildingId", "building id is required")
	}
	return cache.GetOrLoad(ctx, h.cache, "environmental:emissions:"+buildingID, h.config.CacheTTL, func(ctx context.Context) (models.EmissionsSummary, error) {
		data, err := h.repo.ListEnergyData(ctx, buildingID)
		if err != nil {
			return models.EmissionsSummary{}, err
		}
		if len(data) == 0 {
			return models.EmissionsSummary{}, apperrors.NewNotFoundError(apperrors.ErrCodeBuildingNotFound, "Building", buildingID)
		}
		h.logger.Debug("summary recomputed", map[string]interface{}{"buildingId": buildingID, "months": len(data)})
		return models.SummarizeEmissions(buildingID, data), nil
	})
}
