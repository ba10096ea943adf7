package geo

import "math"

// Area returns the polygon's surface area in square meters using the
// spherical-excess summation over consecutive vertex pairs. The result is
// orientation-independent. Rings with fewer than 3 distinct vertices have
// zero area.
func (r Ring) Area() float64 {
	if r.DistinctVertices() < 3 {
		return 0
	}
	ring := r.Closed()

	var sum float64
	for i := 0; i < len(ring)-1; i++ {
		p1, p2 := ring[i], ring[i+1]
		lng1 := p1.Lng * math.Pi / 180
		lng2 := p2.Lng * math.Pi / 180
		lat1 := p1.Lat * math.Pi / 180
		lat2 := p2.Lat * math.Pi / 180
		sum += (lng2 - lng1) * (2 + math.Sin(lat1) + math.Sin(lat2))
	}
	return math.Abs(sum * EarthRadiusMeters * EarthRadiusMeters / 2)
}

// centroidEpsilon guards the shoelace divisor. Signed areas below this are
// treated as degenerate (collinear or coincident vertices).
const centroidEpsilon = 1e-12

// Centroid returns the planar shoelace centroid, treating (lng, lat) as
// Cartesian coordinates. This is a small-extent approximation: it is what a
// slippy map needs for placing a label or anchoring a search circle, not a
// geodesic center of mass. The second return is false when the signed area
// is numerically degenerate.
func (r Ring) Centroid() (Point, bool) {
	if r.DistinctVertices() < 3 {
		return Point{}, false
	}
	ring := r.Closed()

	var signedArea, cx, cy float64
	for i := 0; i < len(ring)-1; i++ {
		x0, y0 := ring[i].Lng, ring[i].Lat
		x1, y1 := ring[i+1].Lng, ring[i+1].Lat
		cross := x0*y1 - x1*y0
		signedArea += cross
		cx += (x0 + x1) * cross
		cy += (y0 + y1) * cross
	}
	signedArea /= 2
	if math.Abs(signedArea) < centroidEpsilon {
		return Point{}, false
	}
	return Point{Lat: cy / (6 * signedArea), Lng: cx / (6 * signedArea)}, true
}
