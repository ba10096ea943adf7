package geo

const (
	// CirclePadding widens the bounding circle so edge-hugging places are
	// not missed by the provider's radius search.
	CirclePadding = 1.10

	// MaxCircleRadiusMeters is the largest radius the places provider
	// accepts for a single circle search.
	MaxCircleRadiusMeters = 50000.0
)

// Circle is a center plus radius in meters, used to bound a places query.
type Circle struct {
	Center Point   `json:"center"`
	Radius float64 `json:"radius_m"`
}

// BoundingCircle returns a circle covering every vertex of the ring: the
// centroid plus the maximum centroid-to-vertex haversine distance, widened
// by CirclePadding and capped at MaxCircleRadiusMeters. When the centroid
// is degenerate the bounding-box midpoint is used instead.
func (r Ring) BoundingCircle() Circle {
	center, ok := r.Centroid()
	if !ok {
		sw, ne := r.BBox()
		center = Point{Lat: (sw.Lat + ne.Lat) / 2, Lng: (sw.Lng + ne.Lng) / 2}
	}

	var max float64
	for _, v := range r {
		if d := Haversine(center, v); d > max {
			max = d
		}
	}

	radius := max * CirclePadding
	if radius > MaxCircleRadiusMeters {
		radius = MaxCircleRadiusMeters
	}
	return Circle{Center: center, Radius: radius}
}
