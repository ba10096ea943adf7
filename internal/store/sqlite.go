package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/lasosearch/lasso/internal/geo"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS saved_searches (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	ring        TEXT NOT NULL,
	place_count INTEGER NOT NULL DEFAULT 0,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS areas (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	ring       TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_saved_searches_created_at ON saved_searches(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveSearch(ctx context.Context, name string, ring geo.Ring, placeCount int) (*SavedSearch, error) {
	ringJSON, err := json.Marshal(ring)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal ring")
	}

	search := &SavedSearch{
		ID:         uuid.NewString(),
		Name:       name,
		Ring:       ring,
		PlaceCount: placeCount,
		CreatedAt:  time.Now().UTC(),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO saved_searches (id, name, ring, place_count, created_at) VALUES (?, ?, ?, ?, ?)`,
		search.ID, search.Name, string(ringJSON), search.PlaceCount, search.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: save search")
	}
	return search, nil
}

func (s *SQLiteStore) GetSearch(ctx context.Context, id string) (*SavedSearch, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, ring, place_count, created_at FROM saved_searches WHERE id = ?`, id)

	var search SavedSearch
	var ringJSON string
	err := row.Scan(&search.ID, &search.Name, &ringJSON, &search.PlaceCount, &search.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get search")
	}
	if err := json.Unmarshal([]byte(ringJSON), &search.Ring); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal ring")
	}
	return &search, nil
}

func (s *SQLiteStore) ListSearches(ctx context.Context, limit, offset int) ([]SavedSearch, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, ring, place_count, created_at FROM saved_searches
		 ORDER BY created_at DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list searches")
	}
	defer rows.Close() //nolint:errcheck

	var out []SavedSearch
	for rows.Next() {
		var search SavedSearch
		var ringJSON string
		if err := rows.Scan(&search.ID, &search.Name, &ringJSON, &search.PlaceCount, &search.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan search")
		}
		if err := json.Unmarshal([]byte(ringJSON), &search.Ring); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal ring")
		}
		out = append(out, search)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate searches")
}

func (s *SQLiteStore) DeleteSearch(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM saved_searches WHERE id = ?`, id)
	return eris.Wrap(err, "sqlite: delete search")
}

func (s *SQLiteStore) UpsertArea(ctx context.Context, name string, ring geo.Ring) (*Area, error) {
	ringJSON, err := json.Marshal(ring)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal ring")
	}

	area := &Area{
		ID:        uuid.NewString(),
		Name:      name,
		Ring:      ring,
		CreatedAt: time.Now().UTC(),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO areas (id, name, ring, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET ring = excluded.ring`,
		area.ID, area.Name, string(ringJSON), area.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: upsert area")
	}
	return area, nil
}

func (s *SQLiteStore) GetArea(ctx context.Context, name string) (*Area, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, ring, created_at FROM areas WHERE name = ?`, name)

	var area Area
	var ringJSON string
	err := row.Scan(&area.ID, &area.Name, &ringJSON, &area.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get area")
	}
	if err := json.Unmarshal([]byte(ringJSON), &area.Ring); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal ring")
	}
	return &area, nil
}

func (s *SQLiteStore) ListAreas(ctx context.Context) ([]Area, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, ring, created_at FROM areas ORDER BY name`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list areas")
	}
	defer rows.Close() //nolint:errcheck

	var out []Area
	for rows.Next() {
		var area Area
		var ringJSON string
		if err := rows.Scan(&area.ID, &area.Name, &ringJSON, &area.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan area")
		}
		if err := json.Unmarshal([]byte(ringJSON), &area.Ring); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal ring")
		}
		out = append(out, area)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate areas")
}
