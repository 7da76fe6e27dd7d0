// internal/services/maintenance/service.go
package maintenance

import (
	"context"
	"fmt"

	"iwms-dashboard/internal/common/cache"
	apperrors "iwms-dashboard/internal/common/errors"
	"iwms-dashboard/internal/common/logger"
	"iwms-dashboard/internal/common/result"
	"iwms-dashboard/internal/models"
)

type Service struct {
	// ListWorkOrders filters by status; "" lists all.
	ListWorkOrders        result.Wrapped[string, []models.WorkOrder]
	GetWorkOrder          result.Wrapped[string, models.WorkOrder]
	GetMaintenanceSummary result.Wrapped0[models.MaintenanceSummary]
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
		ListWorkOrders:        result.Wrap(h.listWorkOrders, result.Named("maintenance.list", opts)...),
		GetWorkOrder:          result.Wrap(h.repo.GetWorkOrder, result.Named("maintenance.get", opts)...),
		GetMaintenanceSummary: result.Wrap0(h.summary, result.Named("maintenance.summary", opts)...),
	}
}

// ValidStatus reports whether s is accepted by ListWorkOrders.
func ValidStatus(s string) bool {
	switch s {
	case "", models.WorkOrderStatusOpen, models.WorkOrderStatusInProgress, models.WorkOrderStatusCompleted:
		return true
	}
	return false
}

func (h *handler) listWorkOrders(ctx context.Context, status string) ([]models.WorkOrder, error) {
	if !ValidStatus(status) {
		return nil, apperrors.NewInvalidParameterError("status", fmt.Sprintf("unknown work order status %q", status))
	}
	all, err := h.repo.ListWorkOrders(ctx)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return all, nil
	}
	out := make([]models.WorkOrder, 0, len(all))
	for _, o := range all {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (h *handler) summary(ctx context.Context) (models.MaintenanceSummary, error) {
	return cache.GetOrLoad(ctx, h.cache, "maintenance:summary", h.config.CacheTTL, func(ctx context.Context) (models.MaintenanceSummary, error) {
		all, err := h.repo.ListWorkOrders(ctx)
		if err != nil {
			return models.MaintenanceSummary{}, err
		}
		h.logger.Debug("summary recomputed", map[string]interface{}{"workOrders": len(all)})
		return models.SummarizeWorkOrders(all), nil
	})
}
