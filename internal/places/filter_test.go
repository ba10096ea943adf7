package places

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lasosearch/lasso/internal/geo"
)

// ~1 km square centered on (40, -74).
var square = geo.Ring{
	{Lat: 39.9955, Lng: -74.0059},
	{Lat: 39.9955, Lng: -73.9941},
	{Lat: 40.0045, Lng: -73.9941},
	{Lat: 40.0045, Lng: -74.0059},
}

func TestFilterRing(t *testing.T) {
	in := []Place{
		{ID: "inside", Location: geo.Point{Lat: 40.0, Lng: -74.0}},
		{ID: "corner", Location: geo.Point{Lat: 40.004, Lng: -74.005}},
		{ID: "far", Location: geo.Point{Lat: 40.1, Lng: -74.0}},
		{ID: "outside", Location: geo.Point{Lat: 40.02, Lng: -73.99}},
	}

	got := FilterRing(in, square)
	require.Len(t, got, 2)
	assert.Equal(t, "inside", got[0].ID)
	assert.Equal(t, "corner", got[1].ID)

	// Input order preserved, input untouched.
	assert.Len(t, in, 4)
}

func TestFilterRing_EdgeTolerance(t *testing.T) {
	// ~5 m outside the northern edge: kept by the 10 m tolerance.
	near := Place{ID: "near", Location: geo.Point{
		Lat: 40.0045 + 5.0/geo.MetersPerDegree,
		Lng: -74.0,
	}}
	// ~50 m outside: dropped.
	off := Place{ID: "off", Location: geo.Point{
		Lat: 40.0045 + 50.0/geo.MetersPerDegree,
		Lng: -74.0,
	}}

	got := FilterRing([]Place{near, off}, square)
	require.Len(t, got, 1)
	assert.Equal(t, "near", got[0].ID)
}

func TestFilterRing_Empty(t *testing.T) {
	assert.Empty(t, FilterRing(nil, square))
}

func TestSortByName(t *testing.T) {
	places := []Place{{Name: "Zebra"}, {Name: "Acme"}, {Name: "Mid"}}
	SortByName(places)
	assert.Equal(t, []string{"Acme", "Mid", "Zebra"},
		[]string{places[0].Name, places[1].Name, places[2].Name})
}

func TestSortByRating(t *testing.T) {
	places := []Place{{Name: "a", Rating: 3.1}, {Name: "b", Rating: 4.8}, {Name: "c", Rating: 4.8}}
	SortByRating(places)
	assert.Equal(t, 4.8, places[0].Rating)
	assert.Equal(t, "b", places[0].Name, "stable for equal ratings")
	assert.Equal(t, "a", places[2].Name)
}

func TestSortByDistance(t *testing.T) {
	ref := geo.Point{Lat: 40.0, Lng: -74.0}
	places := []Place{
		{ID: "far", Location: geo.Point{Lat: 40.01, Lng: -74.0}},
		{ID: "close", Location: geo.Point{Lat: 40.001, Lng: -74.0}},
	}
	SortByDistance(places, ref)

	assert.Equal(t, "close", places[0].ID)
	assert.InEpsilon(t, 111.2, places[0].DistanceMeters, 0.01)
	assert.Greater(t, places[1].DistanceMeters, places[0].DistanceMeters)
}
