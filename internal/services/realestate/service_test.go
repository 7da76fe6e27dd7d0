package realestate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iwms-dashboard/internal/common/config"
	"iwms-dashboard/internal/common/database"
	"iwms-dashboard/internal/common/logger"
	"iwms-dashboard/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{Source: config.SourceFixtures, Timeout: time.Second}
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewTestLogger(t)
}

func createTestElasticsearch(t *testing.T, status int, body string) *database.ElasticsearchClient {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return &database.ElasticsearchClient{Client: es}
}

func propertyIDs(ps []models.Property) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

// ==========================
// Fixtures
// ==========================

func TestService_Fixtures(t *testing.T) {
	repo := &FixtureRepository{}
	svc := NewService(createTestConfig(), repo, nil, nil, createTestLogger(t))
	ctx := context.Background()

	t.Run("list", func(t *testing.T) {
		data, ok := svc.ListProperties(ctx).Data()
		require.True(t, ok)
		assert.Len(t, data, 8)
	})

	t.Run("get", func(t *testing.T) {
		data, ok := svc.GetProperty(ctx, "PRP-007").Data()
		require.True(t, ok)
		assert.Equal(t, "Batam", data.City)
	})

	t.Run("get missing", func(t *testing.T) {
		msg, failed := svc.GetProperty(ctx, "PRP-404").Error()
		require.True(t, failed)
		assert.Equal(t, "Property not found", msg)
	})

	t.Run("substring search", func(t *testing.T) {
		data, ok := svc.SearchProperties(ctx, "JAKARTA").Data()
		require.True(t, ok)
		assert.Equal(t, []string{"PRP-001", "PRP-002"}, propertyIDs(data))
	})

	t.Run("search without matches", func(t *testing.T) {
		data, ok := svc.SearchProperties(ctx, "Jayapura").Data()
		require.True(t, ok)
		assert.NotNil(t, data)
		assert.Empty(t, data)
	})

	t.Run("blank search", func(t *testing.T) {
		assert.False(t, svc.SearchProperties(ctx, "  ").IsOk())
	})

	t.Run("summary excludes disposed", func(t *testing.T) {
		s, ok := svc.GetPortfolioSummary(ctx).Data()
		require.True(t, ok)
		assert.Equal(t, 7, s.TotalProperties)
		assert.Equal(t, 178400.0, s.TotalArea)
		assert.Equal(t, 82.3, s.AverageOccupancyRate)
		assert.Equal(t, 2, s.ByCity["Jakarta"])
	})
}

// ==========================
// Elasticsearch
// ==========================

func TestService_ElasticsearchSearch(t *testing.T) {
	es := createTestElasticsearch(t, http.StatusOK,
		`{"hits":{"hits":[{"_source":{"id":"PRP-004","name":"Plaza Tunjungan Office","city":"Surabaya"}}]}}`)

	repo := &FixtureRepository{}
	svc := NewService(createTestConfig(), repo, NewSearcher(repo, es, "properties"), nil, createTestLogger(t))

	data, ok := svc.SearchProperties(context.Background(), "tunjungan").Data()
	require.True(t, ok)
	require.Len(t, data, 1)
	assert.Equal(t, "Surabaya", data[0].City)
}

func TestService_ElasticsearchMissingIndex(t *testing.T) {
	es := createTestElasticsearch(t, http.StatusNotFound, `{"error":{"type":"index_not_found_exception"}}`)

	repo := &FixtureRepository{}
	svc := NewService(createTestConfig(), repo, NewSearcher(repo, es, "properties"), nil, createTestLogger(t))

	msg, failed := svc.SearchProperties(context.Background(), "tunjungan").Error()
	require.True(t, failed)
	assert.Equal(t, "Search index not found", msg)
}

func TestBuildSearchQuery(t *testing.T) {
	q := buildSearchQuery("kuningan")
	must := q["query"].(map[string]interface{})["bool"].(map[string]interface{})["must"].([]interface{})
	mm := must[0].(map[string]interface{})["multi_match"].(map[string]interface{})
	assert.Equal(t, "kuningan", mm["query"])
}

func TestNewSearcher_FallsBackToScan(t *testing.T) {
	assert.IsType(t, &ScanSearcher{}, NewSearcher(&FixtureRepository{}, nil, "properties"))
}

// ==========================
// PostgreSQL
// ==========================

func TestPostgresRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{"id", "name", "property_type", "address", "city", "province", "total_area",
		"occupancy_rate", "status", "acquisition_date", "market_value"}
	mock.ExpectQuery(`SELECT id, name, property_type, .* FROM properties ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("PRP-001", "Menara Sudirman", "office", "Jl. Jend. Sudirman", "Jakarta", "DKI Jakarta",
				42500.0, 91.5, "active", time.Date(2015, 3, 12, 0, 0, 0, 0, time.UTC), int64(1850000000000)))

	repo := &PostgresRepository{DB: database.NewPostgresFromDB(db), Timeout: time.Second}
	svc := NewService(createTestConfig(), repo, nil, nil, createTestLogger(t))

	data, ok := svc.ListProperties(context.Background()).Data()
	require.True(t, ok)
	require.Len(t, data, 1)
	assert.Equal(t, "2015-03-12", data[0].AcquisitionDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_QueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM properties`).WillReturnError(sqlmock.ErrCancelled)

	repo := &PostgresRepository{DB: database.NewPostgresFromDB(db), Timeout: time.Second}
	svc := NewService(createTestConfig(), repo, nil, nil, createTestLogger(t))

	msg, failed := svc.GetPortfolioSummary(context.Background()).Error()
	require.True(t, failed)
	assert.Equal(t, "Database query execution error", msg)
}
