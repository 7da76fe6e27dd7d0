// internal/services/leases/repository.go
package leases

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"iwms-dashboard/internal/common/config"
	"iwms-dashboard/internal/common/database"
	apperrors "iwms-dashboard/internal/common/errors"
	"iwms-dashboard/internal/fixtures"
	"iwms-dashboard/internal/models"
)

// Repository reads lease records.
type Repository interface {
	ListLeases(ctx context.Context) ([]models.Lease, error)
	GetLease(ctx context.Context, id string) (models.Lease, error)
}

// NewRepository selects the repository for cfg.Source.
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

func leaseNotFound(id string) error {
	return apperrors.NewNotFoundError(apperrors.ErrCodeLeaseNotFound, "Lease", id)
}

// ==========================
// Fixtures
// ==========================

type FixtureRepository struct {
	Delay time.Duration
}

func (r *FixtureRepository) ListLeases(ctx context.Context) ([]models.Lease, error) {
	if err := fixtures.Delay(ctx, r.Delay); err != nil {
		return nil, err
	}
	return fixtures.Load[models.Lease](fixtures.Leases)
}

func (r *FixtureRepository) GetLease(ctx context.Context, id string) (models.Lease, error) {
	all, err := r.ListLeases(ctx)
	if err != nil {
		return models.Lease{}, err
	}
	for _, l := range all {
		if l.ID == id {
			return l, nil
		}
	}
	return models.Lease{}, leaseNotFound(id)
}

// ==========================
// PostgreSQL
// ==========================

var queries = map[string]string{
	"list": `
		SELECT id, property_id, tenant, lease_type, start_date, end_date, monthly_rent, status
		FROM leases
		ORDER BY id`,
	"get": `
		SELECT id, property_id, tenant, lease_type, start_date, end_date, monthly_rent, status
		FROM leases
		WHERE id = $1`,
}

type PostgresRepository struct {
	DB      *database.PostgresClient
	Timeout time.Duration
}

func scanLease(rows *sql.Rows) (models.Lease, error) {
	var l models.Lease
	var start, end time.Time
	if err := rows.Scan(&l.ID, &l.PropertyID, &l.Tenant, &l.Type, &start, &end, &l.MonthlyRent, &l.Status); err != nil {
		return l, err
	}
	l.StartDate = start.Format(models.DateLayout)
	l.EndDate = end.Format(models.DateLayout)
	return l, nil
}

func (r *PostgresRepository) ListLeases(ctx context.Context) ([]models.Lease, error) {
	return database.QueryAll(ctx, r.DB, r.Timeout, "leases.list", queries["list"], scanLease)
}

func (r *PostgresRepository) GetLease(ctx context.Context, id string) (models.Lease, error) {
	return database.QueryOne(ctx, r.DB, r.Timeout, "leases.get", queries["get"], scanLease, leaseNotFound(id), id)
}
