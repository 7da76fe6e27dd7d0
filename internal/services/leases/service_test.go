package leases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iwms-dashboard/internal/common/cache"
	"iwms-dashboard/internal/common/config"
	"iwms-dashboard/internal/common/database"
	"iwms-dashboard/internal/common/i18n"
	"iwms-dashboard/internal/common/logger"
	"iwms-dashboard/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

var testNow = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func createTestConfig() *Config {
	return &Config{Source: config.SourceFixtures, Timeout: time.Second}
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewTestLogger(t)
}

func createTestService(t *testing.T, repo Repository) *Service {
	return newService(createTestConfig(), repo, nil, createTestLogger(t), func() time.Time { return testNow })
}

type stubRepository struct {
	leases []models.Lease
	err    error
	panic  interface{}
}

func (s *stubRepository) ListLeases(ctx context.Context) ([]models.Lease, error) {
	if s.panic != nil {
		panic(s.panic)
	}
	return s.leases, s.err
}

func (s *stubRepository) GetLease(ctx context.Context, id string) (models.Lease, error) {
	if s.err != nil {
		return models.Lease{}, s.err
	}
	return s.leases[0], nil
}

func ids(leases []models.Lease) []string {
	out := make([]string, len(leases))
	for i, l := range leases {
		out[i] = l.ID
	}
	return out
}

// ==========================
// Fixtures
// ==========================

func TestService_Fixtures(t *testing.T) {
	svc := createTestService(t, &FixtureRepository{})
	ctx := context.Background()

	t.Run("list all", func(t *testing.T) {
		data, ok := svc.ListLeases(ctx, "").Data()
		require.True(t, ok)
		assert.Len(t, data, 8)
	})

	t.Run("list by status", func(t *testing.T) {
		data, ok := svc.ListLeases(ctx, models.LeaseStatusExpiring).Data()
		require.True(t, ok)
		assert.ElementsMatch(t, []string{"LSE-002", "LSE-004", "LSE-007"}, ids(data))
	})

	t.Run("unknown status", func(t *testing.T) {
		msg, failed := svc.ListLeases(ctx, "pending").Error()
		require.True(t, failed)
		assert.Equal(t, "Invalid parameter 'status'", msg)
	})

	t.Run("get", func(t *testing.T) {
		data, ok := svc.GetLease(ctx, "LSE-003").Data()
		require.True(t, ok)
		assert.Equal(t, "PT Asuransi Jiwa Merdeka", data.Tenant)
	})

	t.Run("get missing", func(t *testing.T) {
		msg, failed := svc.GetLease(ctx, "LSE-999").Error()
		require.True(t, failed)
		assert.Equal(t, "Lease not found", msg)
	})

	t.Run("expiring within 90 days", func(t *testing.T) {
		data, ok := svc.ListExpiringLeases(ctx, 90).Data()
		require.True(t, ok)
		assert.Equal(t, []string{"LSE-002", "LSE-007", "LSE-004"}, ids(data))
	})

	t.Run("expiring rejects non-positive window", func(t *testing.T) {
		assert.False(t, svc.ListExpiringLeases(ctx, 0).IsOk())
	})

	t.Run("summary", func(t *testing.T) {
		s, ok := svc.GetLeaseSummary(ctx).Data()
		require.True(t, ok)
		assert.Equal(t, 8, s.TotalLeases)
		assert.Equal(t, 7, s.ActiveLeases)
		assert.Equal(t, 3, s.ExpiringIn90Days)
		assert.Equal(t, int64(5688000000), s.MonthlyRentIncome)
		assert.Equal(t, int64(665000000), s.MonthlyRentCost)
	})
}

func TestService_FixtureDelayHonoursCancellation(t *testing.T) {
	svc := createTestService(t, &FixtureRepository{Delay: time.Minute})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	msg, failed := svc.ListLeases(ctx, "").Error()
	require.True(t, failed)
	assert.Equal(t, context.Canceled.Error(), msg)
}

// ==========================
// Failure mapping
// ==========================

func TestService_FailuresBecomeErrResults(t *testing.T) {
	ctx := i18n.NewContext(context.Background(), i18n.Indonesian)

	t.Run("returned error", func(t *testing.T) {
		svc := createTestService(t, &stubRepository{err: errors.New("Network Error")})
		msg, failed := svc.GetLeaseSummary(ctx).Error()
		require.True(t, failed)
		assert.Equal(t, "Network Error", msg)
	})

	t.Run("panic with unknown value", func(t *testing.T) {
		svc := createTestService(t, &stubRepository{panic: 42})
		var msg string
		assert.NotPanics(t, func() { msg, _ = svc.ListLeases(ctx, "").Error() })
		assert.Equal(t, "Terjadi kesalahan saat memuat data. Silakan coba lagi nanti.", msg)
	})
}

// ==========================
// PostgreSQL
// ==========================

func TestPostgresRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &PostgresRepository{DB: database.NewPostgresFromDB(db), Timeout: time.Second}
	cols := []string{"id", "property_id", "tenant", "lease_type", "start_date", "end_date", "monthly_rent", "status"}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, property_id, tenant, lease_type, start_date, end_date, monthly_rent, status FROM leases WHERE id = \$1`).
		WithArgs("LSE-001").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("LSE-001", "PRP-001", "PT Bank Nusantara Tbk", "lessor", start, end, int64(2450000000), "active"))

	lease, err := repo.GetLease(context.Background(), "LSE-001")
	require.NoError(t, err)
	assert.Equal(t, "2026-12-31", lease.EndDate)
	assert.Equal(t, int64(2450000000), lease.MonthlyRent)

	mock.ExpectQuery(`SELECT .* FROM leases WHERE id = \$1`).
		WithArgs("LSE-404").
		WillReturnRows(sqlmock.NewRows(cols))

	svc := createTestService(t, repo)
	msg, failed := svc.GetLease(context.Background(), "LSE-404").Error()
	require.True(t, failed)
	assert.Equal(t, "Lease not found", msg)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Summary cache
// ==========================

func TestService_SummaryCacheHit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := cache.New(database.NewRedisFromClient(rdb), "iwms:", createTestLogger(t))

	cfg := createTestConfig()
	cfg.CacheTTL = time.Minute
	repo := &stubRepository{err: errors.New("repository must not be called")}
	svc := newService(cfg, repo, c, createTestLogger(t), func() time.Time { return testNow })

	mock.ExpectGet("iwms:leases:summary:2026-10-18").SetVal(`{"totalLeases":5,"byStatus":{}}`)

	s, ok := svc.GetLeaseSummary(context.Background()).Data()
	require.True(t, ok)
	assert.Equal(t, 5, s.TotalLeases)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Repository selection
// ==========================

func TestNewRepository(t *testing.T) {
	repo, err := NewRepository(&Config{Source: config.SourceFixtures}, nil)
	require.NoError(t, err)
	assert.IsType(t, &FixtureRepository{}, repo)

	_, err = NewRepository(&Config{Source: config.SourcePostgres}, nil)
	assert.Error(t, err)

	_, err = NewRepository(&Config{Source: "bms"}, nil)
	assert.Error(t, err)
}
