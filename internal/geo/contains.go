package geo

// Contains reports whether p lies inside the ring using the even-odd
// ray-casting rule. Points exactly on an edge are implementation-defined:
// callers needing an on-edge tolerance should combine this with DistanceTo.
func (r Ring) Contains(p Point) bool {
	ring := r.Closed()
	if len(ring) < 4 {
		return false
	}

	inside := false
	for i := 0; i < len(ring)-1; i++ {
		a, b := ring[i], ring[i+1]
		// Edge straddles the horizontal ray through p?
		if (a.Lat > p.Lat) == (b.Lat > p.Lat) {
			continue
		}
		// Longitude where the edge crosses p's latitude.
		crossLng := a.Lng + (p.Lat-a.Lat)/(b.Lat-a.Lat)*(b.Lng-a.Lng)
		if p.Lng < crossLng {
			inside = !inside
		}
	}
	return inside
}
