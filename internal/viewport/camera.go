package viewport

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Animator is the external camera-transition capability: FlyTo starts an
// animated transition to the pose and returns a channel that closes once
// the transition settles. Cancelling the context aborts the transition
// without closing the channel.
type Animator interface {
	FlyTo(ctx context.Context, pose Pose, duration time.Duration) <-chan struct{}
}

// Camera serializes animated transitions to an Animator. A new FlyTo
// cancels any in-flight animation rather than queueing behind it, since
// only the latest polygon and viewport state is meaningful. Completion
// callbacks are tagged with the generation current at registration and are
// dropped if a Reset happened before they arrived.
type Camera struct {
	mu         sync.Mutex
	anim       Animator
	generation uint64
	cancel     context.CancelFunc
}

// NewCamera wraps an Animator.
func NewCamera(anim Animator) *Camera {
	return &Camera{anim: anim}
}

// Generation returns the current epoch. It increments on every Reset.
func (c *Camera) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// FlyTo starts a transition to pose, cancelling any in-flight transition.
// onSettled, if non-nil, runs once when the transition completes, unless
// the transition was superseded or the camera was reset in the meantime.
func (c *Camera) FlyTo(ctx context.Context, pose Pose, duration time.Duration, onSettled func(Pose)) {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	flightCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	gen := c.generation
	c.mu.Unlock()

	done := c.anim.FlyTo(flightCtx, pose, duration)

	go func() {
		select {
		case <-flightCtx.Done():
			return
		case <-done:
		}

		c.mu.Lock()
		stale := c.generation != gen
		c.mu.Unlock()
		if stale {
			// A reset landed mid-animation; the pose no longer
			// describes current state.
			zap.L().Debug("viewport: dropping stale camera completion",
				zap.Uint64("generation", gen))
			return
		}
		if onSettled != nil {
			onSettled(pose)
		}
	}()
}

// Reset cancels any in-flight transition and invalidates completion
// callbacks registered before this point.
func (c *Camera) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
