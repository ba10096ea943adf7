package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return &PostgresStore{pool: mock}, mock
}

func TestPostgres_GetSearch_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, name, ring, place_count, created_at FROM saved_searches`).
		WithArgs("missing-id").
		WillReturnError(pgx.ErrNoRows)

	got, err := s.GetSearch(context.Background(), "missing-id")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetSearch_Found(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	ringJSON, err := json.Marshal(testRing)
	require.NoError(t, err)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT id, name, ring, place_count, created_at FROM saved_searches`).
		WithArgs("abc").
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "name", "ring", "place_count", "created_at"}).
			AddRow("abc", "downtown", ringJSON, 9, now))

	got, err := s.GetSearch(context.Background(), "abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "downtown", got.Name)
	assert.Equal(t, 9, got.PlaceCount)
	assert.Equal(t, testRing, got.Ring)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SaveSearch(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO saved_searches`).
		WithArgs(pgxmock.AnyArg(), "harbor", pgxmock.AnyArg(), 3, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	saved, err := s.SaveSearch(context.Background(), "harbor", testRing, 3)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, testRing, saved.Ring)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_DeleteSearch(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`DELETE FROM saved_searches`).
		WithArgs("abc").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, s.DeleteSearch(context.Background(), "abc"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_UpsertArea(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO areas`).
		WithArgs(pgxmock.AnyArg(), "soho", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	area, err := s.UpsertArea(context.Background(), "soho", testRing)
	require.NoError(t, err)
	assert.Equal(t, "soho", area.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListAreas(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	ringJSON, err := json.Marshal(testRing)
	require.NoError(t, err)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT id, name, ring, created_at FROM areas`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "ring", "created_at"}).
			AddRow("1", "alpha", ringJSON, now).
			AddRow("2", "beta", ringJSON, now))

	areas, err := s.ListAreas(context.Background())
	require.NoError(t, err)
	require.Len(t, areas, 2)
	assert.Equal(t, "alpha", areas[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
