package geo

import "math"

// Haversine returns the great-circle distance between two points in meters.
func Haversine(p1, p2 Point) float64 {
	lat1 := p1.Lat * math.Pi / 180
	lat2 := p2.Lat * math.Pi / 180
	dLat := (p2.Lat - p1.Lat) * math.Pi / 180
	dLng := (p2.Lng - p1.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMeters * c
}

// DistanceTo returns the minimum distance in meters from p to any edge of
// the ring. Each edge is measured in a locally flattened frame: longitude
// deltas are compressed by cos(mean latitude) before scaling to meters,
// an approximation valid for the short edges of a hand-drawn polygon.
// Returns +Inf for rings with fewer than 2 vertices.
func (r Ring) DistanceTo(p Point) float64 {
	ring := r.Closed()
	if len(ring) < 2 {
		return math.Inf(1)
	}

	min := math.Inf(1)
	for i := 0; i < len(ring)-1; i++ {
		if d := pointSegmentMeters(p, ring[i], ring[i+1]); d < min {
			min = d
		}
	}
	return min
}

// pointSegmentMeters measures p against the segment (a, b) after projecting
// all three into a flat frame centered on the segment's mean latitude.
func pointSegmentMeters(p, a, b Point) float64 {
	meanLat := (a.Lat + b.Lat) / 2 * math.Pi / 180
	lngScale := math.Cos(meanLat)

	// Flatten to meters with a at the origin.
	ax, ay := 0.0, 0.0
	bx := (b.Lng - a.Lng) * lngScale * MetersPerDegree
	by := (b.Lat - a.Lat) * MetersPerDegree
	px := (p.Lng - a.Lng) * lngScale * MetersPerDegree
	py := (p.Lat - a.Lat) * MetersPerDegree

	dx, dy := bx-ax, by-ay
	segLenSq := dx*dx + dy*dy
	if segLenSq == 0 {
		return math.Hypot(px-ax, py-ay)
	}

	// Clamp the projection parameter to the segment.
	t := (px*dx + py*dy) / segLenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return math.Hypot(px-t*dx, py-t*dy)
}
