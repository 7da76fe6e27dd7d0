// internal/services/certification/repository.go
package certification

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"iwms-dashboard/internal/common/config"
	"iwms-dashboard/internal/common/database"
	apperrors "iwms-dashboard/internal/common/errors"
	"iwms-dashboard/internal/fixtures"
	"iwms-dashboard/internal/models"
)

type Repository interface {
	ListCertifications(ctx context.Context) ([]models.Certification, error)
	GetCertification(ctx context.Context, id string) (models.Certification, error)
}

func NewRepository(cfg *Config, pg *database.PostgresClient) (Repository, error) {
	switch cfg.Source {
	case config.SourceFixtures, "":
		return &FixtureRepository{Delay: cfg.Delay}, nil
	case config.SourcePostgres:
		if pg == nil {
			return nil, fmt.Errorf("%s: postgres source configured without a connection", ServiceName)
		}
		return &PostgresRepository{DB: pg, Timeout: cfg.Timeout}, nil
	default:
		return nil, fmt.Errorf("%s: unsupported source %q", ServiceName, cfg.Source)
	}
}

func certificationNotFound(id string) error {
	return apperrors.NewNotFoundError(apperrors.ErrCodeCertificationNotFound, "Certification", id)
}

// ==========================
// Fixtures
// ==========================

type FixtureRepository struct {
	Delay time.Duration
}

func (r *FixtureRepository) ListCertifications(ctx context.Context) ([]models.Certification, error) {
	if err := fixtures.Delay(ctx, r.Delay); err != nil {
		return nil, err
	}
	return fixtures.Load[models.Certification](fixtures.Certifications)
}

func (r *FixtureRepository) GetCertification(ctx context.Context, id string) (models.Certification, error) {
	all, err := r.ListCertifications(ctx)
	if err != nil {
		return models.Certification{}, err
	}
	for _, c := range all {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Certification{}, certificationNotFound(id)
}

// ==========================
// PostgreSQL
// ==========================

// Categories are stored as a JSONB array on the certification row.
var queries = map[string]string{
	"list": `
		SELECT id, building_id, scheme, level, status, score, max_score, valid_until, categories
		FROM certifications
		ORDER BY id`,
	"get": `
		SELECT id, building_id, scheme, level, status, score, max_score, valid_until, categories
		FROM certifications
		WHERE id = $1`,
}

type PostgresRepository struct {
	DB      *database.PostgresClient
	Timeout time.Duration
}

func scanCertification(rows *sql.Rows) (models.Certification, error) {
	var (
		c          models.Certification
		validUntil sql.NullTime
		categories []byte
	)
	if err := rows.Scan(&c.ID, &c.BuildingID, &c.Scheme, &c.Level, &c.Status, &c.Score, &c.MaxScore, &validUntil, &categories); err != nil {
		return c, err
	}
	if validUntil.Valid {
		c.ValidUntil = validUntil.Time.Format(models.DateLayout)
	}
	c.Categories = []models.CertificationCategory{}
	if len(categories) > 0 {
		if err := json.Unmarshal(categories, &c.Categories); err != nil {
			return c, fmt.Errorf("decode categories of %s: %w", c.ID, err)
		}
	}
	return c, nil
}

func (r *PostgresRepository) ListCertifications(ctx context.Context) ([]models.Certification, error) {
	return database.QueryAll(ctx, r.DB, r.Timeout, "certification.list", queries["list"], scanCertification)
}

func (r *PostgresRepository) GetCertification(ctx context.Context, id string) (models.Certification, error) {
	return database.QueryOne(ctx, r.DB, r.Timeout, "certification.get", queries["get"], scanCertification, certificationNotFound(id), id)
}
