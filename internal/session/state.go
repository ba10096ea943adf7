// Package session models the freehand drawing flow as an explicit state
// value with pure transition functions, replacing the ad hoc flag soup a
// map UI tends to accumulate. Handlers thread a State through; no globals.
package session

import (
	"github.com/rotisserie/eris"

	"github.com/lasosearch/lasso/internal/geo"
)

// Phase is the drawing lifecycle position.
type Phase int

const (
	// PhaseIdle means no drawing is in progress and no polygon is held.
	PhaseIdle Phase = iota
	// PhaseDrawing means pointer input is being accumulated.
	PhaseDrawing
	// PhaseClosed means a valid polygon has been completed.
	PhaseClosed
)

// MinVertices is the smallest polygon the search flow accepts.
const MinVertices = 3

// ErrTooFewVertices is returned by Close when the drawn path cannot form a
// polygon. It is a user-facing validation error, caught before the
// geometry or fit engines are ever invoked.
var ErrTooFewVertices = eris.New("session: polygon needs at least 3 distinct points")

// ErrNotDrawing is returned by transitions that require an active drawing.
var ErrNotDrawing = eris.New("session: no drawing in progress")

// State is an immutable snapshot of the drawing session. Transitions
// return a new State and never mutate the receiver, so a stale snapshot
// held by a deferred callback stays internally consistent.
type State struct {
	Phase    Phase
	Vertices geo.Ring

	// StartZoom is the integer map zoom when drawing began.
	StartZoom int
	// StrayedOffCanvas is set once any vertex lands outside the visible
	// canvas; it widens the post-draw zoom clamp by one level.
	StrayedOffCanvas bool

	// Epoch increments on every full reset. Deferred results tagged with
	// an older epoch must be ignored on arrival.
	Epoch uint64
}

// Begin starts a new drawing at the given integer zoom, discarding any
// held polygon but preserving the epoch.
func (s State) Begin(zoom int) State {
	return State{
		Phase:     PhaseDrawing,
		StartZoom: zoom,
		Epoch:     s.Epoch,
	}
}

// AddVertex appends a pointer sample. inView is false when the projected
// vertex fell outside the visible canvas. Ignored outside PhaseDrawing.
func (s State) AddVertex(p geo.Point, inView bool) State {
	if s.Phase != PhaseDrawing {
		return s
	}
	next := s
	next.Vertices = append(s.Vertices[:len(s.Vertices):len(s.Vertices)], p)
	if !inView {
		next.StrayedOffCanvas = true
	}
	return next
}

// Close completes the drawing, validating and explicitly closing the ring.
func (s State) Close() (State, error) {
	if s.Phase != PhaseDrawing {
		return s, ErrNotDrawing
	}
	if s.Vertices.DistinctVertices() < MinVertices {
		return s, ErrTooFewVertices
	}
	next := s
	next.Phase = PhaseClosed
	next.Vertices = s.Vertices.Closed()
	return next, nil
}

// Reset returns to idle and bumps the epoch, invalidating any deferred
// work started before this point.
func (s State) Reset() State {
	return State{Epoch: s.Epoch + 1}
}

// DrawZoomFloor is the lower bound for the post-draw fit clamp: the zoom
// the user drew at, minus one if the drawing strayed off-canvas.
func (s State) DrawZoomFloor() float64 {
	floor := s.StartZoom
	if s.StrayedOffCanvas {
		floor--
	}
	return float64(floor)
}
