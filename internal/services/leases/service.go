// internal/services/leases/service.go
package leases

import (
	"context"
	"fmt"
	"time"

	"iwms-dashboard/internal/common/cache"
	apperrors "iwms-dashboard/internal/common/errors"
	"iwms-dashboard/internal/common/logger"
	"iwms-dashboard/internal/common/result"
	"iwms-dashboard/internal/models"
)

// Service exposes the lease read operations. Every field is an independently
// wrapped call that settles to a Result.
type Service struct {
	// ListLeases filters by status; "" lists all.
	ListLeases         result.Wrapped[string, []models.Lease]
	GetLease           result.Wrapped[string, models.Lease]
	ListExpiringLeases result.Wrapped[int, []models.Lease]
	GetLeaseSummary    result.Wrapped0[models.LeaseSummary]
}

type handler struct {
	config *Config
	repo   Repository
	cache  *cache.Cache
	logger logger.Logger
	now    func() time.Time
}

func NewService(cfg *Config, repo Repository, c *cache.Cache, log logger.Logger, opts ...result.Option) *Service {
	return newService(cfg, repo, c, log, time.Now, opts...)
}

func newService(cfg *Config, repo Repository, c *cache.Cache, log logger.Logger, now func() time.Time, opts ...result.Option) *Service {
	h := &handler{
		config: cfg,
		repo:   repo,
		cache:  c,
		logger: log.WithFields(map[string]interface{}{"service": ServiceName}),
		now:    now,
	}
	return &Service{
		ListLeases:         result.Wrap(h.listLeases, result.Named("leases.list", opts)...),
		GetLease:           result.Wrap(h.repo.GetLease, result.Named("leases.get", opts)...),
		ListExpiringLeases: result.Wrap(h.listExpiring, result.Named("leases.expiring", opts)...),
		GetLeaseSummary:    result.Wrap0(h.summary, result.Named("leases.summary", opts)...),
	}
}

var validStatuses = map[string]bool{
	models.LeaseStatusActive:   true,
	models.LeaseStatusExpiring: true,
	models.LeaseStatusExpired:  true,
}

// ValidStatus reports whether s is accepted by ListLeases.
func ValidStatus(s string) bool {
	return s == "" || validStatuses[s]
}

func (h *handler) listLeases(ctx context.Context, status string) ([]models.Lease, error) {
	if !ValidStatus(status) {
		return nil, apperrors.NewInvalidParameterError("status", fmt.Sprintf("unknown lease status %q", status))
	}
	all, err := h.repo.ListLeases(ctx)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return all, nil
	}
	out := make([]models.Lease, 0, len(all))
	for _, l := range all {
		if l.Status == status {
			out = append(out, l)
		}
	}
	return out, nil
}

func (h *handler) listExpiring(ctx context.Context, withinDays int) ([]models.Lease, error) {
	if withinDays <= 0 {
		return nil, apperrors.NewInvalidParameterError("withinDays", "must be a positive number of days")
	}
	all, err := h.repo.ListLeases(ctx)
	if err != nil {
		return nil, err
	}
	return models.ExpiringWithin(all, withinDays, h.now()), nil
}

func (h *handler) summary(ctx context.Context) (models.LeaseSummary, error) {
	key := "leases:summary:" + h.now().Format(models.DateLayout)
	return cache.GetOrLoad(ctx, h.cache, key, h.config.CacheTTL, func(ctx context.Context) (models.LeaseSummary, error) {
		all, err := h.repo.ListLeases(ctx)
		if err != nil {
			return models.LeaseSummary{}, err
		}
		h.logger.Debug("summary recomputed", map[string]interface{}{"leases": len(all)})
		return models.SummarizeLeases(all, h.now()), nil
	})
}
