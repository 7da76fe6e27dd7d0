// internal/services/spaces/service.go
package spaces

import (
	"context"

	"iwms-dashboard/internal/common/cache"
	apperrors "iwms-dashboard/internal/common/errors"
	"iwms-dashboard/internal/common/logger"
	"iwms-dashboard/internal/common/result"
	"iwms-dashboard/internal/models"
)

type Service struct {
	ListFloors          result.Wrapped[string, []models.Floor]
	ListSpaces          result.Wrapped[string, []models.Space]
	GetOccupancySummary result.Wrapped[string, models.OccupancySummary]
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
		ListFloors:          result.Wrap(h.listFloors, result.Named("spaces.floors", opts)...),
		ListSpaces:          result.Wrap(h.listSpaces, result.Named("spaces.spaces", opts)...),
		GetOccupancySummary: result.Wrap(h.summary, result.Named("spaces.occupancy", opts)...),
	}
}

func (h *handler) listFloors(ctx context.Context, buildingID string) ([]models.Floor, error) {
	if buildingID == "" {
		return nil, apperrors.NewInvalidParameterError("buildingId", "building id is required")
	}
	return h.repo.ListFloors(ctx, buildingID)
}

func (h *handler) listSpaces(ctx context.Context, floorID string) ([]models.Space, error) {
	if floorID == "" {
		return nil, apperrors.NewInvalidParameterError("floorId", "floor id is required")
	}
	return h.repo.ListSpaces(ctx, floorID)
}

// summary fails with BUILDING_NOT_FOUND when the building has no floors.
func (h *handler) summary(ctx context.Context, buildingID string) (models.OccupancySummary, error) {
	if buildingID == "" {
		return models.OccupancySummary{}, apperrors.NewInvalidParameterError("buildingId", "building id is required")
	}
	return cache.GetOrLoad(ctx, h.cache, "spaces:occupancy:"+buildingID, h.config.CacheTTL, func(ctx context.Context) (models.OccupancySummary, error) {
		floors, err := h.repo.ListFloors(ctx, buildingID)
		if err != nil {
			return models.OccupancySummary{}, err
		}
		if len(floors) == 0 {
			return models.OccupancySummary{}, apperrors.NewNotFoundError(apperrors.ErrCodeBuildingNotFound, "Building", buildingID)
		}
		spaces, err := h.repo.ListBuildingSpaces(ctx, buildingID)
		if err != nil {
			return models.OccupancySummary{}, err
		}
		h.logger.Debug("summary recomputed", map[string]interface{}{"buildingId": buildingID, "floors": len(floors), "spaces": len(spaces)})
		return models.SummarizeOccupancy(buildingID, floors, spaces), nil
	})
}
