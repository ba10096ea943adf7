package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/lasosearch/lasso/internal/db"
	"github.com/lasosearch/lasso/internal/geo"
)

// PostgresStore implements Store using a pgx pool.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgres wraps an open pool.
func NewPostgres(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS saved_searches (
	id          UUID PRIMARY KEY,
	name        TEXT NOT NULL,
	ring        JSONB NOT NULL,
	place_count INTEGER NOT NULL DEFAULT 0,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS areas (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	ring       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_saved_searches_created_at ON saved_searches(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveSearch(ctx context.Context, name string, ring geo.Ring, placeCount int) (*SavedSearch, error) {
	ringJSON, err := json.Marshal(ring)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal ring")
	}

	search := &SavedSearch{
		ID:         uuid.NewString(),
		Name:       name,
		Ring:       ring,
		PlaceCount: placeCount,
		CreatedAt:  time.Now().UTC(),
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO saved_searches (id, name, ring, place_count, created_at) VALUES ($1, $2, $3, $4, $5)`,
		search.ID, search.Name, ringJSON, search.PlaceCount, search.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: save search")
	}
	return search, nil
}

func (s *PostgresStore) GetSearch(ctx context.Context, id string) (*SavedSearch, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, name, ring, place_count, created_at FROM saved_searches WHERE id = $1`, id)

	var search SavedSearch
	var ringJSON []byte
	err := row.Scan(&search.ID, &search.Name, &ringJSON, &search.PlaceCount, &search.CreatedAt)
	if eris.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get search")
	}
	if err := json.Unmarshal(ringJSON, &search.Ring); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal ring")
	}
	return &search, nil
}

func (s *PostgresStore) ListSearches(ctx context.Context, limit, offset int) ([]SavedSearch, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, ring, place_count, created_at FROM saved_searches
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list searches")
	}
	defer rows.Close()

	var out []SavedSearch
	for rows.Next() {
		var search SavedSearch
		var ringJSON []byte
		if err := rows.Scan(&search.ID, &search.Name, &ringJSON, &search.PlaceCount, &search.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan search")
		}
		if err := json.Unmarshal(ringJSON, &search.Ring); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal ring")
		}
		out = append(out, search)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate searches")
}

func (s *PostgresStore) DeleteSearch(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM saved_searches WHERE id = $1`, id)
	return eris.Wrap(err, "postgres: delete search")
}

func (s *PostgresStore) UpsertArea(ctx context.Context, name string, ring geo.Ring) (*Area, error) {
	ringJSON, err := json.Marshal(ring)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal ring")
	}

	area := &Area{
		ID:        uuid.NewString(),
		Name:      name,
		Ring:      ring,
		CreatedAt: time.Now().UTC(),
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO areas (id, name, ring, created_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (name) DO UPDATE SET ring = EXCLUDED.ring`,
		area.ID, area.Name, ringJSON, area.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: upsert area")
	}
	return area, nil
}

func (s *PostgresStore) GetArea(ctx context.Context, name string) (*Area, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, name, ring, created_at FROM areas WHERE name = $1`, name)

	var area Area
	var ringJSON []byte
	err := row.Scan(&area.ID, &area.Name, &ringJSON, &area.CreatedAt)
	if eris.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get area")
	}
	if err := json.Unmarshal(ringJSON, &area.Ring); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal ring")
	}
	return &area, nil
}

func (s *PostgresStore) ListAreas(ctx context.Context) ([]Area, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, ring, created_at FROM areas ORDER BY name`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list areas")
	}
	defer rows.Close()

	var out []Area
	for rows.Next() {
		var area Area
		var ringJSON []byte
		if err := rows.Scan(&area.ID, &area.Name, &ringJSON, &area.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan area")
		}
		if err := json.Unmarshal(ringJSON, &area.Ring); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal ring")
		}
		out = append(out, area)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate areas")
}
