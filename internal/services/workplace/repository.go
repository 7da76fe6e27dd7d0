// internal/services/workplace/repository.go
package workplace

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"iwms-dashboard/internal/common/config"
	"iwms-dashboard/internal/common/database"
	"iwms-dashboard/internal/fixtures"
	"iwms-dashboard/internal/models"
)

// Repository reads amenities and occupant feedback. Feedback is returned
// newest first.
type Repository interface {
	ListAmenities(ctx context.Context) ([]models.Amenity, error)
	ListFeedback(ctx context.Context) ([]models.Feedback, error)
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

func (r *FixtureRepository) ListAmenities(ctx context.Context) ([]models.Amenity, error) {
	if err := fixtures.Delay(ctx, r.Delay); err != nil {
		return nil, err
	}
	return fixtures.Load[models.Amenity](fixtures.Amenities)
}

func (r *FixtureRepository) ListFeedback(ctx context.Context) ([]models.Feedback, error) {
	if err := fixtures.Delay(ctx, r.Delay); err != nil {
		return nil, err
	}
	all, err := fixtures.Load[models.Feedback](fixtures.Feedback)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool { return submitted(all[i]).After(submitted(all[j])) })
	return all, nil
}

func submitted(f models.Feedback) time.Time {
	t, _ := time.Parse(time.RFC3339, f.SubmittedAt)
	return t
}

// ==========================
// PostgreSQL
// ==========================

var queries = map[string]string{
	"amenities": `
		SELECT id, property_id, name, category, available
		FROM amenities
		ORDER BY id`,
	"feedback": `
		SELECT id, property_id, category, rating, COALESCE(comment, ''), submitted_at
		FROM occupant_feedback
		ORDER BY submitted_at DESC`,
}

type PostgresRepository struct {
	DB      *database.PostgresClient
	Timeout time.Duration
}

func scanAmenity(rows *sql.Rows) (models.Amenity, error) {
	var a models.Amenity
	err := rows.Scan(&a.ID, &a.PropertyID, &a.Name, &a.Category, &a.Available)
	return a, err
}

func scanFeedback(rows *sql.Rows) (models.Feedback, error) {
	var (
		f  models.Feedback
		at time.Time
	)
	if err := rows.Scan(&f.ID, &f.PropertyID, &f.Category, &f.Rating, &f.Comment, &at); err != nil {
		return f, err
	}
	f.SubmittedAt = at.Format(time.RFC3339)
	return f, nil
}

func (r *PostgresRepository) ListAmenities(ctx context.Context) ([]models.Amenity, error) {
	return database.QueryAll(ctx, r.DB, r.Timeout, "workplace.amenities", queries["amenities"], scanAmenity)
}

func (r *PostgresRepository) ListFeedback(ctx context.Context) ([]models.Feedback, error) {
	return database.QueryAll(ctx, r.DB, r.Timeout, "workplace.feedback", queries["feedback"], scanFeedback)
}
