// internal/services/realestate/repository.go
package realestate

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"iwms-dashboard/internal/common/config"
	"iwms-dashboard/internal/common/database"
	apperrors "iwms-dashboard/internal/common/errors"
	"iwms-dashboard/internal/fixtures"
	"iwms-dashboard/internal/models"
)

// Repository reads the property portfolio.
type Repository interface {
	ListProperties(ctx context.Context) ([]models.Property, error)
	GetProperty(ctx context.Context, id string) (models.Property, error)
}

// Searcher finds properties matching free text.
type Searcher interface {
	SearchProperties(ctx context.Context, query string) ([]models.Property, error)
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

// NewSearcher uses the Elasticsearch index when a client is given, otherwise a
// substring match over repo.
func NewSearcher(repo Repository, es *database.ElasticsearchClient, index string) Searcher {
	if es != nil {
		return &ElasticsearchSearcher{ES: es, Index: index}
	}
	return &ScanSearcher{Repo: repo}
}

func propertyNotFound(id string) error {
	return apperrors.NewNotFoundError(apperrors.ErrCodePropertyNotFound, "Property", id)
}

// ==========================
// Fixtures
// ==========================

type FixtureRepository struct {
	Delay time.Duration
}

func (r *FixtureRepository) ListProperties(ctx context.Context) ([]models.Property, error) {
	if err := fixtures.Delay(ctx, r.Delay); err != nil {
		return nil, err
	}
	return fixtures.Load[models.Property](fixtures.Properties)
}

func (r *FixtureRepository) GetProperty(ctx context.Context, id string) (models.Property, error) {
	all, err := r.ListProperties(ctx)
	if err != nil {
		return models.Property{}, err
	}
	for _, p := range all {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Property{}, propertyNotFound(id)
}

// ==========================
// PostgreSQL
// ==========================

var queries = map[string]string{
	"list": `
		SELECT id, name, property_type, address, city, province, total_area,
		       occupancy_rate, status, acquisition_date, market_value
		FROM properties
		ORDER BY id`,
	"get": `
		SELECT id, name, property_type, address, city, province, total_area,
		       occupancy_rate, status, acquisition_date, market_value
		FROM properties
		WHERE id = $1`,
}

type PostgresRepository struct {
	DB      *database.PostgresClient
	Timeout time.Duration
}

func scanProperty(rows *sql.Rows) (models.Property, error) {
	var p models.Property
	var acquired time.Time
	err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.Address, &p.City, &p.Province, &p.TotalArea,
		&p.OccupancyRate, &p.Status, &acquired, &p.MarketValue)
	if err != nil {
		return p, err
	}
	p.AcquisitionDate = acquired.Format(models.DateLayout)
	return p, nil
}

func (r *PostgresRepository) ListProperties(ctx context.Context) ([]models.Property, error) {
	return database.QueryAll(ctx, r.DB, r.Timeout, "realestate.list", queries["list"], scanProperty)
}

func (r *PostgresRepository) GetProperty(ctx context.Context, id string) (models.Property, error) {
	return database.QueryOne(ctx, r.DB, r.Timeout, "realestate.get", queries["get"], scanProperty, propertyNotFound(id), id)
}

// ==========================
// Search
// ==========================

// ScanSearcher matches the query case-insensitively against name, address,
// city and province.
type ScanSearcher struct {
	Repo Repository
}

func (s *ScanSearcher) SearchProperties(ctx context.Context, query string) ([]models.Property, error) {
	all, err := s.Repo.ListProperties(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Property, 0)
	for _, p := range all {
		haystack := strings.ToLower(strings.Join([]string{p.Name, p.Address, p.City, p.Province}, " "))
		if strings.Contains(haystack, q) {
			out = append(out, p)
		}
	}
	return out, nil
}

type ElasticsearchSearcher struct {
	ES    *database.ElasticsearchClient
	Index string
}

func (s *ElasticsearchSearcher) SearchProperties(ctx context.Context, query string) ([]models.Property, error) {
	docs, err := s.ES.Search(ctx, s.Index, buildSearchQuery(query))
	if err != nil {
		return nil, err
	}
	out := make([]models.Property, 0, len(docs))
	for _, doc := range docs {
		var p models.Property
		if err := json.Unmarshal(doc, &p); err != nil {
			return nil, apperrors.NewSearchQueryFailedError(s.Index, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func buildSearchQuery(query string) map[string]interface{} {
	return map[string]interface{}{
		"size": 50,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []interface{}{
					map[string]interface{}{
						"multi_match": map[string]interface{}{
							"query":     query,
							"fields":    []string{"name^3", "address", "city^2", "province"},
							"type":      "best_fields",
							"fuzziness": "AUTO",
						},
					},
				},
				"must_not": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"status": models.PropertyStatusDisposed}},
				},
			},
		},
	}
}
