// Package server exposes the geometry, fit, and places engines over HTTP
// for the map front-end.
package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lasosearch/lasso/internal/geo"
	"github.com/lasosearch/lasso/internal/places"
	"github.com/lasosearch/lasso/internal/store"
	"github.com/lasosearch/lasso/internal/viewport"
)

// PlacesSearcher is the slice of the places client the server needs.
type PlacesSearcher interface {
	SearchCircle(ctx context.Context, circle geo.Circle, opts places.SearchOptions) ([]places.Place, error)
}

// Options configures the HTTP server.
type Options struct {
	// StaticDir serves the front-end when non-empty.
	StaticDir string
	// AllowedOrigins for CORS; empty allows any origin (dev default).
	AllowedOrigins []string
	// TileSize of the basemap, for server-side fit computation.
	TileSize float64
}

// Server wires the engines, the places client, and the store into a router.
type Server struct {
	store  store.Store
	places PlacesSearcher
	proj   viewport.Mercator
	opts   Options
}

// New creates a Server.
func New(st store.Store, pc PlacesSearcher, opts Options) *Server {
	if opts.TileSize <= 0 {
		opts.TileSize = 256
	}
	return &Server{
		store:  st,
		places: pc,
		proj:   viewport.NewMercator(opts.TileSize),
		opts:   opts,
	}
}

// Router builds the chi routing tree.
func (s *Server) Router(tiles *TileProxy) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	origins := s.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Post("/fit", s.handleFit)
		r.Get("/areas", s.handleListAreas)
		r.Route("/searches", func(r chi.Router) {
			r.Get("/", s.handleListSearches)
			r.Post("/", s.handleSaveSearch)
			r.Get("/{id}", s.handleGetSearch)
			r.Delete("/{id}", s.handleDeleteSearch)
		})
	})

	if tiles != nil {
		r.Get("/tiles/{z}/{x}/{y}", tiles.handleTile)
		r.Get("/tiles/stats", func(w http.ResponseWriter, r *http.Request) {
			if tiles.cache == nil {
				respondJSON(w, http.StatusOK, TileCacheStats{})
				return
			}
			respondJSON(w, http.StatusOK, tiles.cache.Stats())
		})
	}

	if s.opts.StaticDir != "" {
		r.NotFound(NewStaticHandler(s.opts.StaticDir).ServeHTTP)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
