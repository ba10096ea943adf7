package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lasosearch/lasso/internal/geo"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

var testRing = geo.Ring{
	{Lat: 40.0, Lng: -74.0},
	{Lat: 40.01, Lng: -74.0},
	{Lat: 40.0, Lng: -73.99},
	{Lat: 40.0, Lng: -74.0},
}

func TestSQLite_SaveAndGetSearch(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	saved, err := st.SaveSearch(ctx, "downtown coffee", testRing, 17)
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	got, err := st.GetSearch(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "downtown coffee", got.Name)
	assert.Equal(t, 17, got.PlaceCount)
	assert.Equal(t, testRing, got.Ring)
}

func TestSQLite_GetSearch_Missing(t *testing.T) {
	st := newTestSQLiteStore(t)

	got, err := st.GetSearch(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLite_ListSearches_NewestFirst(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		_, err := st.SaveSearch(ctx, name, testRing, 0)
		require.NoError(t, err)
	}

	got, err := st.ListSearches(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	all, err := st.ListSearches(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSQLite_DeleteSearch(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	saved, err := st.SaveSearch(ctx, "temp", testRing, 1)
	require.NoError(t, err)

	require.NoError(t, st.DeleteSearch(ctx, saved.ID))

	got, err := st.GetSearch(ctx, saved.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLite_Areas_UpsertReplacesRing(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.UpsertArea(ctx, "soho", testRing)
	require.NoError(t, err)

	bigger := geo.Ring{
		{Lat: 40.0, Lng: -74.0},
		{Lat: 40.1, Lng: -74.0},
		{Lat: 40.0, Lng: -73.9},
		{Lat: 40.0, Lng: -74.0},
	}
	_, err = st.UpsertArea(ctx, "soho", bigger)
	require.NoError(t, err)

	got, err := st.GetArea(ctx, "soho")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, bigger, got.Ring)

	areas, err := st.ListAreas(ctx)
	require.NoError(t, err)
	assert.Len(t, areas, 1, "upsert must not duplicate")
}

func TestSQLite_ListAreas_SortedByName(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	for _, name := range []string{"zebra", "alpha", "mid"} {
		_, err := st.UpsertArea(ctx, name, testRing)
		require.NoError(t, err)
	}

	areas, err := st.ListAreas(ctx)
	require.NoError(t, err)
	require.Len(t, areas, 3)
	assert.Equal(t, "alpha", areas[0].Name)
	assert.Equal(t, "zebra", areas[2].Name)
}
