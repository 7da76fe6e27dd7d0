// internal/services/maintenance/repository.go
package maintenance

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

// Repository reads facility work orders.
type Repository interface {
	ListWorkOrders(ctx context.Context) ([]models.WorkOrder, error)
	GetWorkOrder(ctx context.Context, id string) (models.WorkOrder, error)
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

func workOrderNotFound(id string) error {
	return apperrors.NewNotFoundError(apperrors.ErrCodeWorkOrderNotFound, "Work order", id)
}

type FixtureRepository struct {
	Delay time.Duration
}

func (r *FixtureRepository) ListWorkOrders(ctx context.Context) ([]models.WorkOrder, error) {
	if err := fixtures.Delay(ctx, r.Delay); err != nil {
		return nil, err
	}
	return fixtures.Load[models.WorkOrder](fixtures.WorkOrders)
}

func (r *FixtureRepository) GetWorkOrder(ctx context.Context, id string) (models.WorkOrder, error) {
	all, err := r.ListWorkOrders(ctx)
	if err != nil {
		return models.WorkOrder{}, err
	}
	for _, o := range all {
		if o.ID == id {
			return o, nil
		}
	}
	return models.WorkOrder{}, workOrderNotFound(id)
}

var queries = map[string]string{
	"list": `
		SELECT id, asset_id, property_id, title, priority, status, COALESCE(assignee, ''), reported_at, due_at
		FROM work_orders
		ORDER BY reported_at DESC`,
	"get": `
		SELECT id, asset_id, property_id, title, priority, status, COALESCE(assignee, ''), reported_at, due_at
		FROM work_orders
		WHERE id = $1`,
}

type PostgresRepository struct {
	DB      *database.PostgresClient
	Timeout time.Duration
}

func scanWorkOrder(rows *sql.Rows) (models.WorkOrder, error) {
	var o models.WorkOrder
	var reported time.Time
	var due sql.NullTime
	if err := rows.Scan(&o.ID, &o.AssetID, &o.PropertyID, &o.Title, &o.Priority, &o.Status, &o.Assignee, &reported, &due); err != nil {
		return o, err
	}
	o.ReportedAt = reported.Format(time.RFC3339)
	if due.Valid {
		o.DueAt = due.Time.Format(time.RFC3339)
	}
	return o, nil
}

func (r *PostgresRepository) ListWorkOrders(ctx context.Context) ([]models.WorkOrder, error) {
	return database.QueryAll(ctx, r.DB, r.Timeout, "maintenance.list", queries["list"], scanWorkOrder)
}

func (r *PostgresRepository) GetWorkOrder(ctx context.Context, id string) (models.WorkOrder, error) {
	return database.QueryOne(ctx, r.DB, r.Timeout, "maintenance.get", queries["get"], scanWorkOrder, workOrderNotFound(id), id)
}
