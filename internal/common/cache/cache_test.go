package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iwms-dashboard/internal/common/database"
	"iwms-dashboard/internal/common/logger"
)

type summary struct {
	Total int `json:"total"`
}

func createTestCache(t *testing.T) (*Cache, redismock.ClientMock) {
	rdb, mock := redismock.NewClientMock()
	return New(database.NewRedisFromClient(rdb), "iwms:", logger.NewTestLogger(t)), mock
}

func loader(calls *int, v summary, err error) func(context.Context) (summary, error) {
	return func(context.Context) (summary, error) {
		*calls++
		return v, err
	}
}

func TestGetOrLoad_Hit(t *testing.T) {
	c, mock := createTestCache(t)
	mock.ExpectGet("iwms:leases:summary").SetVal(`{"total":7}`)

	calls := 0
	got, err := GetOrLoad(context.Background(), c, "leases:summary", time.Minute, loader(&calls, summary{}, nil))

	require.NoError(t, err)
	assert.Equal(t, 7, got.Total)
	assert.Zero(t, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrLoad_MissStores(t *testing.T) {
	c, mock := createTestCache(t)
	mock.ExpectGet("iwms:leases:summary").RedisNil()
	mock.ExpectSet("iwms:leases:summary", []byte(`{"total":3}`), time.Minute).SetVal("OK")

	calls := 0
	got, err := GetOrLoad(context.Background(), c, "leases:summary", time.Minute, loader(&calls, summary{Total: 3}, nil))

	require.NoError(t, err)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrLoad_RedisDownFallsThrough(t *testing.T) {
	c, mock := createTestCache(t)
	mock.ExpectGet("iwms:leases:summary").SetErr(errors.New("connection refused"))
	mock.ExpectSet("iwms:leases:summary", []byte(`{"total":3}`), time.Minute).SetErr(errors.New("connection refused"))

	calls := 0
	got, err := GetOrLoad(context.Background(), c, "leases:summary", time.Minute, loader(&calls, summary{Total: 3}, nil))

	require.NoError(t, err)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 1, calls)
}

func TestGetOrLoad_LoadErrorIsNotCached(t *testing.T) {
	c, mock := createTestCache(t)
	mock.ExpectGet("iwms:leases:summary").RedisNil()

	calls := 0
	_, err := GetOrLoad(context.Background(), c, "leases:summary", time.Minute, loader(&calls, summary{}, errors.New("db down")))

	assert.EqualError(t, err, "db down")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrLoad_Disabled(t *testing.T) {
	calls := 0
	var nilCache *Cache

	_, err := GetOrLoad(context.Background(), nilCache, "k", time.Minute, loader(&calls, summary{}, nil))
	require.NoError(t, err)

	c, _ := createTestCache(t)
	_, err = GetOrLoad(context.Background(), c, "k", 0, loader(&calls, summary{}, nil))
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}
