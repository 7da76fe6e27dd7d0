package database

import (
	"context"
	"database/sql"
	stderrors "errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "iwms-dashboard/internal/common/errors"
)

type floorRow struct {
	ID    string
	Level int
}

func scanFloor(rows *sql.Rows) (floorRow, error) {
	var f floorRow
	err := rows.Scan(&f.ID, &f.Level)
	return f, err
}

func createTestPostgres(t *testing.T) (*PostgresClient, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresFromDB(db), mock
}

func TestQueryAll(t *testing.T) {
	pg, mock := createTestPostgres(t)
	mock.ExpectQuery(`SELECT id, level FROM floors WHERE building_id = \$1`).
		WithArgs("BLD-001").
		WillReturnRows(sqlmock.NewRows([]string{"id", "level"}).AddRow("FLR-1", 0).AddRow("FLR-2", 1))

	got, err := QueryAll(context.Background(), pg, time.Second, "floors.list",
		`SELECT id, level FROM floors WHERE building_id = $1`, scanFloor, "BLD-001")

	require.NoError(t, err)
	assert.Equal(t, []floorRow{{"FLR-1", 0}, {"FLR-2", 1}}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryAll_EmptyIsNotNil(t *testing.T) {
	pg, mock := createTestPostgres(t)
	mock.ExpectQuery(`SELECT id, level FROM floors`).WillReturnRows(sqlmock.NewRows([]string{"id", "level"}))

	got, err := QueryAll(context.Background(), pg, 0, "floors.list", `SELECT id, level FROM floors`, scanFloor)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestQueryAll_Errors(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(mock sqlmock.Sqlmock)
		timeout  time.Duration
		wantCode apperrors.ErrorCode
	}{
		{
			name: "execution failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT`).WillReturnError(stderrors.New("relation does not exist"))
			},
			timeout:  time.Second,
			wantCode: apperrors.ErrCodeQueryExecutionFailed,
		},
		{
			name: "timeout",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT`).WillDelayFor(200 * time.Millisecond).
					WillReturnRows(sqlmock.NewRows([]string{"id", "level"}))
			},
			timeout:  20 * time.Millisecond,
			wantCode: apperrors.ErrCodeQueryTimeout,
		},
		{
			name: "scan failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT`).WillReturnRows(sqlmock.NewRows([]string{"id", "level"}).AddRow("FLR-1", "ground"))
			},
			timeout:  time.Second,
			wantCode: apperrors.ErrCodeQueryExecutionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pg, mock := createTestPostgres(t)
			tt.setup(mock)

			_, err := QueryAll(context.Background(), pg, tt.timeout, "floors.list", `SELECT id, level FROM floors`, scanFloor)

			var stdErr *apperrors.StandardError
			require.True(t, stderrors.As(err, &stdErr), "got %v", err)
			assert.Equal(t, tt.wantCode, stdErr.Code)
		})
	}
}

func TestQueryOne_NotFound(t *testing.T) {
	pg, mock := createTestPostgres(t)
	mock.ExpectQuery(`SELECT id, level FROM floors WHERE id = \$1`).
		WithArgs("FLR-9").
		WillReturnRows(sqlmock.NewRows([]string{"id", "level"}))

	notFound := apperrors.NewNotFoundError(apperrors.ErrCodeFloorNotFound, "Floor", "FLR-9")
	_, err := QueryOne(context.Background(), pg, time.Second, "floors.get",
		`SELECT id, level FROM floors WHERE id = $1`, scanFloor, notFound, "FLR-9")

	assert.Same(t, notFound, err)
}
