package geo

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// ParsePolygon decodes a GeoJSON Polygon geometry and returns its exterior
// ring, closed. Interior rings (holes) are ignored.
func ParsePolygon(raw []byte) (Ring, error) {
	if len(raw) == 0 {
		return nil, eris.New("geo: polygon is required")
	}
	var g geom.T
	if err := geojson.Unmarshal(raw, &g); err != nil {
		return nil, eris.Wrap(err, "geo: decode polygon")
	}
	poly, ok := g.(*geom.Polygon)
	if !ok {
		return nil, eris.Errorf("geo: expected Polygon geometry, got %T", g)
	}
	if poly.NumLinearRings() == 0 {
		return nil, eris.New("geo: polygon has no rings")
	}
	ext := poly.LinearRing(0)
	ring := make(Ring, 0, ext.NumCoords())
	for _, c := range ext.Coords() {
		ring = append(ring, Point{Lat: c.Y(), Lng: c.X()})
	}
	return ring.Closed(), nil
}

// ToGeoJSON encodes the ring as a GeoJSON Polygon geometry.
func (r Ring) ToGeoJSON() ([]byte, error) {
	closed := r.Closed()
	coords := make([]geom.Coord, 0, len(closed))
	for _, p := range closed {
		coords = append(coords, geom.Coord{p.Lng, p.Lat})
	}
	poly := geom.NewPolygon(geom.XY)
	if _, err := poly.SetCoords([][]geom.Coord{coords}); err != nil {
		return nil, eris.Wrap(err, "geo: build polygon")
	}
	out, err := geojson.Marshal(poly)
	if err != nil {
		return nil, eris.Wrap(err, "geo: encode polygon")
	}
	return out, nil
}
