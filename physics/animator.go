package physics

import (
	"math"
	"sync"
	"time"

	"github.com/beadgame/beadgraph/models"
)

// Animator is the per-frame spring-damper loop that eases visible node
// positions toward the targets computed by the relax/fit pipeline. It is
// the only long-lived process in the engine: a single ticker-driven
// goroutine that re-enters every frame and stops scheduling itself once
// every node's velocity falls below the settle threshold.
//
// The loop is restartable: Wake starts it only when it is not already
// running, so resizes and new turns can never leak a duplicate loop.
// Close flips the liveness flag; a frame firing after teardown exits
// silently.
type Animator struct {
	p Params

	mu      sync.Mutex
	graph   *models.Graph
	onFrame func()
	running bool
	alive   bool
}

// NewAnimator creates an animator. onFrame, if non-nil, runs after every
// integration step so the host can redraw; it is called without the
// animator's lock held.
func NewAnimator(p Params, onFrame func()) *Animator {
	if p.FrameInterval <= 0 {
		p.FrameInterval = DefaultParams().FrameInterval
	}
	return &Animator{p: p, onFrame: onFrame, alive: true}
}

// SetGraph swaps in a new graph snapshot. The swap is atomic with respect
// to frame boundaries: the next frame reads the new node set in full.
func (a *Animator) SetGraph(g *models.Graph) {
	a.mu.Lock()
	a.graph = g
	a.mu.Unlock()
}

// Step advances the animation by one frame and reports whether the system
// has settled. Exposed for hosts that drive frames themselves (and for
// tests); the internal loop calls the same code.
func (a *Animator) Step() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stepLocked()
}

func (a *Animator) stepLocked() bool {
	g := a.graph
	if g == nil {
		return true
	}

	// Angular correction as a velocity nudge. Smaller coefficient than the
	// static pass: this runs every frame, not once per iteration.
	for _, hub := range g.Nodes {
		if hub.Degree() <= 1 {
			continue
		}
		for _, id := range hub.Neighbors {
			sat := g.FindNode(id)
			if sat == nil || sat.Pinned {
				continue
			}
			ideal, ok := hub.IdealAngles[id]
			if !ok {
				continue
			}
			shift := AngularShift(hub.Pos, sat.Pos, ideal, a.p.AngularCap, a.p.MinDistance)
			sat.Vel = sat.Vel.Add(shift.Scale(a.p.FrameAngularGain))
		}
	}

	// Damped spring toward target, then integrate.
	settled := true
	for _, n := range g.Nodes {
		if n.Pinned {
			n.Vel = models.Vec2{}
			continue
		}
		if n.HasTarget {
			disp := n.Target.Sub(n.Pos)
			n.Vel = n.Vel.Scale(a.p.Damping).Add(disp.Scale(a.p.SpringFactor))
			n.Pos = n.Pos.Add(n.Vel)
		}
		if math.Abs(n.Vel.X) >= a.p.SettleThreshold || math.Abs(n.Vel.Y) >= a.p.SettleThreshold {
			settled = false
		}
	}
	return settled
}

// Sync runs fn while the frame loop is excluded, making multi-field
// mutations of the current graph atomic with respect to frame boundaries.
// fn must not call back into the animator.
func (a *Animator) Sync(fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn()
}

// Wake starts the frame loop if it is alive and not already running. Safe
// to call from any goroutine, any number of times.
func (a *Animator) Wake() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.alive || a.running {
		return
	}
	a.running = true
	go a.loop()
}

// Running reports whether a frame loop is currently scheduled.
func (a *Animator) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

// Close tears the animator down. Any in-flight frame sees the cleared
// liveness flag and exits without touching the graph again.
func (a *Animator) Close() {
	a.mu.Lock()
	a.alive = false
	a.mu.Unlock()
}

func (a *Animator) loop() {
	ticker := time.NewTicker(a.p.FrameInterval)
	defer ticker.Stop()

	for range ticker.C {
		a.mu.Lock()
		if !a.alive {
			a.running = false
			a.mu.Unlock()
			return
		}
		settled := a.stepLocked()
		if settled {
			a.running = false
		}
		frame := a.onFrame
		a.mu.Unlock()

		if frame != nil {
			frame()
		}
		if settled {
			return
		}
	}
}
