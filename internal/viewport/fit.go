package viewport

import (
	"math"

	"github.com/lasosearch/lasso/internal/geo"
)

// Insets is per-edge canvas padding in pixels. Bottom typically models the
// results panel, which may be zero, a fixed peek height, or half the canvas.
type Insets struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Uniform returns equal padding on all four edges.
func Uniform(px float64) Insets {
	return Insets{Top: px, Right: px, Bottom: px, Left: px}
}

// Fit computes the camera pose that places the ring's bounding extremes at
// the padding boundary of the canvas. The returned zoom is fractional: the
// exact level at which the tighter-fitting axis spans the available space.
//
// Degenerate inputs never divide by zero: a zero content dimension leaves
// that axis unconstrained, a fully degenerate ring (all vertices coincident)
// keeps refZoom, and padding that consumes the whole canvas falls back to
// the bounding-box center at refZoom.
//
// The ring must be non-empty; polygon arity (>= 3 distinct vertices) is
// validated by the drawing session before fitting is ever requested.
func Fit(proj Projector, ring geo.Ring, canvas Size, refZoom float64, pad Insets) Pose {
	// Single pass over the vertices in world-pixel space at the reference
	// zoom.
	first := proj.Project(ring[0], refZoom)
	minX, maxX := first.X, first.X
	minY, maxY := first.Y, first.Y
	for _, v := range ring[1:] {
		px := proj.Project(v, refZoom)
		if px.X < minX {
			minX = px.X
		}
		if px.X > maxX {
			maxX = px.X
		}
		if px.Y < minY {
			minY = px.Y
		}
		if px.Y > maxY {
			maxY = px.Y
		}
	}

	contentW := maxX - minX
	contentH := maxY - minY
	mid := Pixel{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}

	availW := canvas.Width - pad.Left - pad.Right
	availH := canvas.Height - pad.Top - pad.Bottom
	if availW <= 0 || availH <= 0 {
		// Obstructions swallowed the canvas; no zoom can satisfy the
		// padding, so just center on the content.
		return Pose{Center: proj.Unproject(mid, refZoom), Zoom: refZoom}
	}

	// The tighter-fitting axis wins; a zero-size axis is unconstrained.
	scaleX := math.Inf(1)
	scaleY := math.Inf(1)
	if contentW > 0 {
		scaleX = availW / contentW
	}
	if contentH > 0 {
		scaleY = availH / contentH
	}
	scale := math.Min(scaleX, scaleY)

	zoom := refZoom
	if !math.IsInf(scale, 1) {
		// Pixel density doubles per zoom level.
		zoom = refZoom + math.Log2(scale)
	}

	// Re-center at the target zoom, then bias toward the less-padded side
	// so the polygon sits visually centered in the unobstructed area.
	center := proj.Unproject(mid, refZoom)
	target := proj.Project(center, zoom)
	target.X += (pad.Right - pad.Left) / 2
	target.Y += (pad.Bottom - pad.Top) / 2

	return Pose{Center: proj.Unproject(target, zoom), Zoom: zoom}
}

// ClampToDrawContext restricts a fit zoom to [floor, floor+1), where floor
// is the integer zoom the polygon was drawn at (already decremented by the
// caller if drawing strayed off-canvas). Keeps the auto-fit from zooming
// far out of the user's drawing context.
func ClampToDrawContext(zoom, floor float64) float64 {
	if zoom < floor {
		return floor
	}
	if upper := floor + 1; zoom >= upper {
		return math.Nextafter(upper, floor)
	}
	return zoom
}
