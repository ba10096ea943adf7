package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lasosearch/lasso/internal/geo"
	"github.com/lasosearch/lasso/internal/places"
	"github.com/lasosearch/lasso/internal/viewport"
)

// defaultRefZoom anchors server-side fit computations when the client
// does not send one. Any value works; the result is zoom-invariant.
const defaultRefZoom = 15.0

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

func decodeRing(raw json.RawMessage) (geo.Ring, error) {
	return geo.ParsePolygon(raw)
}

type searchRequest struct {
	Polygon  json.RawMessage `json:"polygon"`
	Category string          `json:"category,omitempty"`
	Limit    int             `json:"limit,omitempty"`
	// Sort is one of "name", "rating", "distance". Empty keeps the
	// provider's page order.
	Sort string `json:"sort,omitempty"`
}

type searchResponse struct {
	Places []places.Place `json:"places"`
	Count  int            `json:"count"`
	AreaM2 float64        `json:"area_m2"`
	Circle geo.Circle     `json:"circle"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ring, err := decodeRing(req.Polygon)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !ring.Valid() {
		respondError(w, http.StatusBadRequest, "polygon needs at least 3 distinct vertices")
		return
	}

	circle := ring.BoundingCircle()
	results, err := s.places.SearchCircle(r.Context(), circle, places.SearchOptions{
		Category: req.Category,
		Limit:    req.Limit,
	})
	if err != nil {
		zap.L().Error("places search failed",
			zap.Float64("radius_m", circle.Radius),
			zap.Error(err),
		)
		respondError(w, http.StatusBadGateway, "places search failed")
		return
	}

	filtered := places.FilterRing(results, ring)
	switch req.Sort {
	case "name":
		places.SortByName(filtered)
	case "rating":
		places.SortByRating(filtered)
	case "distance":
		places.SortByDistance(filtered, circle.Center)
	case "":
	default:
		respondError(w, http.StatusBadRequest, "unknown sort: "+req.Sort)
		return
	}

	respondJSON(w, http.StatusOK, searchResponse{
		Places: filtered,
		Count:  len(filtered),
		AreaM2: ring.Area(),
		Circle: circle,
	})
}

type fitRequest struct {
	Polygon json.RawMessage `json:"polygon"`
	Canvas  viewport.Size   `json:"canvas"`
	Padding viewport.Insets `json:"padding"`
	RefZoom float64         `json:"ref_zoom,omitempty"`
	// DrawZoomFloor, when present, clamps the result into the single
	// zoom level band the polygon was drawn at.
	DrawZoomFloor *float64 `json:"draw_zoom_floor,omitempty"`
}

func (s *Server) handleFit(w http.ResponseWriter, r *http.Request) {
	var req fitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ring, err := decodeRing(req.Polygon)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(ring) == 0 {
		respondError(w, http.StatusBadRequest, "polygon is empty")
		return
	}
	if req.Canvas.Width <= 0 || req.Canvas.Height <= 0 {
		respondError(w, http.StatusBadRequest, "canvas dimensions must be positive")
		return
	}

	refZoom := req.RefZoom
	if refZoom == 0 {
		refZoom = defaultRefZoom
	}

	pose := viewport.Fit(s.proj, ring, req.Canvas, refZoom, req.Padding)
	if req.DrawZoomFloor != nil {
		pose.Zoom = viewport.ClampToDrawContext(pose.Zoom, *req.DrawZoomFloor)
	}

	respondJSON(w, http.StatusOK, pose)
}

func (s *Server) handleListAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := s.store.ListAreas(r.Context())
	if err != nil {
		zap.L().Error("list areas failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "list areas failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"areas": areas, "count": len(areas)})
}

func (s *Server) handleListSearches(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		offset = n
	}

	searches, err := s.store.ListSearches(r.Context(), limit, offset)
	if err != nil {
		zap.L().Error("list searches failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "list searches failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"searches": searches, "count": len(searches)})
}

type saveSearchRequest struct {
	Name       string          `json:"name"`
	Polygon    json.RawMessage `json:"polygon"`
	PlaceCount int             `json:"place_count"`
}

func (s *Server) handleSaveSearch(w http.ResponseWriter, r *http.Request) {
	var req saveSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	ring, err := decodeRing(req.Polygon)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !ring.Valid() {
		respondError(w, http.StatusBadRequest, "polygon needs at least 3 distinct vertices")
		return
	}

	saved, err := s.store.SaveSearch(r.Context(), req.Name, ring, req.PlaceCount)
	if err != nil {
		zap.L().Error("save search failed", zap.String("name", req.Name), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "save search failed")
		return
	}
	respondJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleGetSearch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	saved, err := s.store.GetSearch(r.Context(), id)
	if err != nil {
		zap.L().Error("get search failed", zap.String("id", id), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "get search failed")
		return
	}
	if saved == nil {
		respondError(w, http.StatusNotFound, "search not found")
		return
	}
	respondJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteSearch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.DeleteSearch(r.Context(), id); err != nil {
		zap.L().Error("delete search failed", zap.String("id", id), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "delete search failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
