package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lasosearch/lasso/internal/geo"
)

func TestMercator_RoundTrip(t *testing.T) {
	m := NewMercator(256)

	points := []geo.Point{
		{Lat: 0, Lng: 0},
		{Lat: 40.0, Lng: -74.0},
		{Lat: -33.87, Lng: 151.21},
		{Lat: 64.13, Lng: -21.9},
	}
	for _, zoom := range []float64{0, 3, 10.5, 18} {
		for _, p := range points {
			got := m.Unproject(m.Project(p, zoom), zoom)
			assert.InDelta(t, p.Lat, got.Lat, 1e-9, "lat at zoom %v", zoom)
			assert.InDelta(t, p.Lng, got.Lng, 1e-9, "lng at zoom %v", zoom)
		}
	}
}

func TestMercator_DensityDoublesPerZoom(t *testing.T) {
	m := NewMercator(256)
	a := geo.Point{Lat: 40.0, Lng: -74.0}
	b := geo.Point{Lat: 40.01, Lng: -73.99}

	for zoom := 1.0; zoom < 19; zoom++ {
		d1 := m.Project(b, zoom).X - m.Project(a, zoom).X
		d2 := m.Project(b, zoom+1).X - m.Project(a, zoom+1).X
		assert.InEpsilon(t, 2.0, d2/d1, 1e-9)
	}
}

func TestMercator_ClampsLatitude(t *testing.T) {
	m := NewMercator(256)

	pole := m.Project(geo.Point{Lat: 90, Lng: 0}, 4)
	clamped := m.Project(geo.Point{Lat: maxMercatorLat, Lng: 0}, 4)
	assert.InDelta(t, clamped.Y, pole.Y, 1e-9)

	// World origin maps to the top-left pixel, equator to the middle.
	eq := m.Project(geo.Point{Lat: 0, Lng: 0}, 0)
	assert.InDelta(t, 128, eq.X, 1e-9)
	assert.InDelta(t, 128, eq.Y, 1e-9)
}
