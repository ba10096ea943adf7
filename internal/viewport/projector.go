// Package viewport computes camera poses that frame a drawn polygon inside
// the visible canvas, accounting for asymmetric padding such as a sliding
// results panel along the bottom edge.
package viewport

import (
	"math"

	"github.com/lasosearch/lasso/internal/geo"
)

// Pixel is a position in world-pixel space at some zoom level.
type Pixel struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a canvas extent in CSS pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Pose is a camera position: a center coordinate and a fractional zoom.
type Pose struct {
	Center geo.Point `json:"center"`
	Zoom   float64   `json:"zoom"`
}

// Projector maps coordinates to world-pixel space at a given zoom and back.
// Project and Unproject must be exact inverses at a fixed zoom, and pixel
// density must double per zoom level.
type Projector interface {
	Project(p geo.Point, zoom float64) Pixel
	Unproject(px Pixel, zoom float64) geo.Point
}

// Web Mercator clamps latitude at arctan(sinh(pi)).
const maxMercatorLat = 85.0511

// Mercator is the standard Web Mercator projector used by slippy maps.
// The zero value is not usable; use NewMercator.
type Mercator struct {
	tileSize float64
}

// NewMercator returns a Mercator projector with the given tile size
// (256 for classic raster tiles, 512 for most vector basemaps).
func NewMercator(tileSize float64) Mercator {
	return Mercator{tileSize: tileSize}
}

// worldSize is the width of the projected world in pixels at the zoom.
func (m Mercator) worldSize(zoom float64) float64 {
	return m.tileSize * math.Pow(2, zoom)
}

// Project converts a coordinate to world pixels at the given zoom.
func (m Mercator) Project(p geo.Point, zoom float64) Pixel {
	lat := p.Lat
	if lat > maxMercatorLat {
		lat = maxMercatorLat
	} else if lat < -maxMercatorLat {
		lat = -maxMercatorLat
	}

	ws := m.worldSize(zoom)
	x := (p.Lng + 180) / 360 * ws

	sinLat := math.Sin(lat * math.Pi / 180)
	y := (0.5 - math.Log((1+sinLat)/(1-sinLat))/(4*math.Pi)) * ws

	return Pixel{X: x, Y: y}
}

// Unproject converts world pixels at the given zoom back to a coordinate.
func (m Mercator) Unproject(px Pixel, zoom float64) geo.Point {
	ws := m.worldSize(zoom)
	lng := px.X/ws*360 - 180

	n := math.Pi - 2*math.Pi*px.Y/ws
	lat := math.Atan(math.Sinh(n)) * 180 / math.Pi

	return geo.Point{Lat: lat, Lng: lng}
}
