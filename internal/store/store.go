// Package store persists saved searches and preset areas behind a driver
// switch: SQLite for single-user local runs, Postgres for shared deploys.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/lasosearch/lasso/internal/db"
	"github.com/lasosearch/lasso/internal/geo"
)

// SavedSearch is a completed polygon search the user chose to keep.
type SavedSearch struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Ring       geo.Ring  `json:"ring"`
	PlaceCount int       `json:"place_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// Area is a named preset polygon (e.g. a neighborhood boundary imported
// from a shapefile) offered as an alternative to freehand drawing.
type Area struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Ring      geo.Ring  `json:"ring"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the persistence interface for searches and areas.
type Store interface {
	SaveSearch(ctx context.Context, name string, ring geo.Ring, placeCount int) (*SavedSearch, error)
	GetSearch(ctx context.Context, id string) (*SavedSearch, error)
	ListSearches(ctx context.Context, limit, offset int) ([]SavedSearch, error)
	DeleteSearch(ctx context.Context, id string) error

	UpsertArea(ctx context.Context, name string, ring geo.Ring) (*Area, error)
	GetArea(ctx context.Context, name string) (*Area, error)
	ListAreas(ctx context.Context) ([]Area, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a Store for the configured driver.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "sqlite":
		return NewSQLite(dsn)
	case "postgres":
		pool, err := db.Connect(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return NewPostgres(pool), nil
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}
