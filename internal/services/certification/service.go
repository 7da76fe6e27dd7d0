// internal/services/certification/service.go
package certification

import (
	"context"

	"iwms-dashboard/internal/common/cache"
	apperrors "iwms-dashboard/internal/common/errors"
	"iwms-dashboard/internal/common/logger"
	"iwms-dashboard/internal/common/result"
	"iwms-dashboard/internal/models"
)

type Service struct {
	ListCertifications       result.Wrapped0[[]models.Certification]
	GetCertificationProgress result.Wrapped[string, models.CertificationProgress]
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
		ListCertifications:       result.Wrap0(h.repo.ListCertifications, result.Named("certification.list", opts)...),
		GetCertificationProgress: result.Wrap(h.progress, result.Named("certification.progress", opts)...),
	}
}

func (h *handler) progress(ctx context.Context, id string) (models.CertificationProgress, error) {
	if id == "" {
		return models.CertificationProgress{}, apperrors.NewInvalidParameterError("certificationId", "certification id is required")
	}
	return cache.GetOrLoad(ctx, h.cache, "certification:progress:"+id, h.config.CacheTTL, func(ctx context.Context) (models.CertificationProgress, error) {
		c, err := h.repo.GetCertification(ctx, id)
		if err != nil {
			return models.CertificationProgress{}, err
		}
		h.logger.Debug("summary recomputed", map[string]interface{}{"certificationId": id, "categories": len(c.Categories)})
		return models.ProgressOf(c), nil
	})
}
