package places

import "github.com/lasosearch/lasso/internal/geo"

// FilterRing narrows circle-search results to the exact drawn polygon.
// A place is kept when it is strictly inside the ring, or within
// EdgeToleranceMeters of an edge. The input slice is not modified.
func FilterRing(in []Place, ring geo.Ring) []Place {
	out := make([]Place, 0, len(in))
	for _, p := range in {
		if ring.Contains(p.Location) || ring.DistanceTo(p.Location) <= EdgeToleranceMeters {
			out = append(out, p)
		}
	}
	return out
}
