// internal/services/spaces/repository.go
package spaces

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"iwms-dashboard/internal/common/config"
	"iwms-dashboard/internal/common/database"
	"iwms-dashboard/internal/fixtures"
	"iwms-dashboard/internal/models"
)

// Repository reads floors and spaces.
type Repository interface {
	ListFloors(ctx context.Context, buildingID string) ([]models.Floor, error)
	ListSpaces(ctx context.Context, floorID string) ([]models.Space, error)
	// ListBuildingSpaces returns every space on every floor of the building.
	ListBuildingSpaces(ctx context.Context, buildingID string) ([]models.Space, error)
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

// ==========================
// Fixtures
// ==========================

type FixtureRepository struct {
	Delay time.Duration
}

func (r *FixtureRepository) ListFloors(ctx context.Context, buildingID string) ([]models.Floor, error) {
	if err := fixtures.Delay(ctx, r.Delay); err != nil {
		return nil, err
	}
	all, err := fixtures.Load[models.Floor](fixtures.Floors)
	if err != nil {
		return nil, err
	}
	out := make([]models.Floor, 0)
	for _, f := range all {
		if f.BuildingID == buildingID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *FixtureRepository) ListSpaces(ctx context.Context, floorID string) ([]models.Space, error) {
	if err := fixtures.Delay(ctx, r.Delay); err != nil {
		return nil, err
	}
	all, err := fixtures.Load[models.Space](fixtures.Spaces)
	if err != nil {
		return nil, err
	}
	out := make([]models.Space, 0)
	for _, s := range all {
		if s.FloorID == floorID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *FixtureRepository) ListBuildingSpaces(ctx context.Context, buildingID string) ([]models.Space, error) {
	floors, err := r.ListFloors(ctx, buildingID)
	if err != nil {
		return nil, err
	}
	onFloor := make(map[string]bool, len(floors))
	for _, f := range floors {
		onFloor[f.ID] = true
	}
	all, err := fixtures.Load[models.Space](fixtures.Spaces)
	if err != nil {
		return nil, err
	}
	out := make([]models.Space, 0)
	for _, s := range all {
		if onFloor[s.FloorID] {
			out = append(out, s)
		}
	}
	return out, nil
}

// ==========================
// PostgreSQL
// ==========================

var queries = map[string]string{
	"floors": `
		SELECT id, building_id, name, level, area, capacity
		FROM floors
		WHERE building_id = $1
		ORDER BY level`,
	"spaces": `
		SELECT id, floor_id, name, space_type, area, capacity, occupied
		FROM spaces
		WHERE floor_id = $1
		ORDER BY id`,
	"building_spaces": `
		SELECT s.id, s.floor_id, s.name, s.space_type, s.area, s.capacity, s.occupied
		FROM spaces s
		JOIN floors f ON f.id = s.floor_id
		WHERE f.building_id = $1
		ORDER BY s.id`,
}

type PostgresRepository struct {
	DB      *database.PostgresClient
	Timeout time.Duration
}

func scanFloor(rows *sql.Rows) (models.Floor, error) {
	var f models.Floor
	err := rows.Scan(&f.ID, &f.BuildingID, &f.Name, &f.Level, &f.Area, &f.Capacity)
	return f, err
}

func scanSpace(rows *sql.Rows) (models.Space, error) {
	var s models.Space
	err := rows.Scan(&s.ID, &s.FloorID, &s.Name, &s.Type, &s.Area, &s.Capacity, &s.Occupied)
	return s, err
}

func (r *PostgresRepository) ListFloors(ctx context.Context, buildingID string) ([]models.Floor, error) {
	return database.QueryAll(ctx, r.DB, r.Timeout, "spaces.floors", queries["floors"], scanFloor, buildingID)
}

func (r *PostgresRepository) ListSpaces(ctx context.Context, floorID string) ([]models.Space, error) {
	return database.QueryAll(ctx, r.DB, r.Timeout, "spaces.spaces", queries["spaces"], scanSpace, floorID)
}

func (r *PostgresRepository) ListBuildingSpaces(ctx context.Context, buildingID string) ([]models.Space, error) {
	return database.QueryAll(ctx, r.DB, r.Timeout, "spaces.building_spaces", queries["building_spaces"], scanSpace, buildingID)
}
