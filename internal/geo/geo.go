// Package geo implements the planar and spherical geometry used by the
// drawing and search flows: polygon area, centroid, containment, edge
// distance, and the padded bounding circle sent to the places provider.
//
// All functions are pure and total over well-formed input. Rings may be
// passed open (first != last vertex) or explicitly closed; every entry
// point closes the ring internally before iterating, so both forms behave
// identically.
package geo

// EarthRadiusMeters is the mean Earth radius used for great-circle math.
const EarthRadiusMeters = 6371000.0

// MetersPerDegree approximates one degree of latitude along a meridian.
// Used by the locally-flattened edge distance, valid for short edges.
const MetersPerDegree = 111000.0

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Ring is an ordered list of vertices describing a polygon boundary.
type Ring []Point

// Closed returns the ring with the first vertex repeated at the end.
// Already-closed rings are returned as-is.
func (r Ring) Closed() Ring {
	if len(r) < 2 {
		return r
	}
	if r[0] == r[len(r)-1] {
		return r
	}
	out := make(Ring, len(r)+1)
	copy(out, r)
	out[len(r)] = r[0]
	return out
}

// DistinctVertices counts vertices ignoring a closing duplicate.
func (r Ring) DistinctVertices() int {
	n := len(r)
	if n >= 2 && r[0] == r[n-1] {
		n--
	}
	return n
}

// Valid reports whether the ring describes a polygon (at least 3 distinct
// vertices).
func (r Ring) Valid() bool {
	return r.DistinctVertices() >= 3
}

// BBox returns the axis-aligned bounding box as (southwest, northeast).
// Both corners are the zero Point for an empty ring.
func (r Ring) BBox() (sw, ne Point) {
	if len(r) == 0 {
		return Point{}, Point{}
	}
	sw, ne = r[0], r[0]
	for _, p := range r[1:] {
		if p.Lat < sw.Lat {
			sw.Lat = p.Lat
		}
		if p.Lat > ne.Lat {
			ne.Lat = p.Lat
		}
		if p.Lng < sw.Lng {
			sw.Lng = p.Lng
		}
		if p.Lng > ne.Lng {
			ne.Lng = p.Lng
		}
	}
	return sw, ne
}
