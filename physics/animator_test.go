package physics

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beadgame/beadgraph/models"
)

func animGraph(nodes ...*models.Node) *models.Graph {
	g := models.NewGraph()
	for _, n := range nodes {
		g.AddNode(n)
	}
	return g
}

func TestAnimatorSettledAtRest(t *testing.T) {
	a := NewAnimator(DefaultParams(), nil)
	a.SetGraph(animGraph(&models.Node{
		ID: "a", Pos: models.Vec2{X: 100, Y: 100}, Target: models.Vec2{X: 100, Y: 100}, HasTarget: true,
	}))

	assert.True(t, a.Step(), "a node at its target with zero velocity settles in one step")
}

func TestAnimatorConvergesToTarget(t *testing.T) {
	n := &models.Node{ID: "a", Target: models.Vec2{X: 100, Y: 50}, HasTarget: true}
	a := NewAnimator(DefaultParams(), nil)
	a.SetGraph(animGraph(n))

	settled := false
	for i := 0; i < 2000 && !settled; i++ {
		settled = a.Step()
	}
	require.True(t, settled, "animation must settle")
	assert.InDelta(t, 100.0, n.Pos.X, 0.5)
	assert.InDelta(t, 50.0, n.Pos.Y, 0.5)
}

func TestAnimatorPinnedNodeHolds(t *testing.T) {
	n := &models.Node{
		ID: "a", Pos: models.Vec2{X: 10, Y: 10},
		Target: models.Vec2{X: 500, Y: 500}, HasTarget: true,
		Vel: models.Vec2{X: 5, Y: 5}, Pinned: true,
	}
	a := NewAnimator(DefaultParams(), nil)
	a.SetGraph(animGraph(n))

	assert.True(t, a.Step(), "a fully pinned graph has nothing left to move")
	assert.Equal(t, models.Vec2{X: 10, Y: 10}, n.Pos)
	assert.Equal(t, models.Vec2{}, n.Vel, "pinned nodes shed their velocity")
}

func TestAnimatorNilGraph(t *testing.T) {
	a := NewAnimator(DefaultParams(), nil)
	assert.True(t, a.Step())
}

func TestAnimatorLoopStopsWhenSettled(t *testing.T) {
	p := DefaultParams()
	p.FrameInterval = time.Millisecond

	var frames atomic.Int32
	a := NewAnimator(p, func() { frames.Add(1) })
	a.SetGraph(animGraph(&models.Node{
		ID: "a", Target: models.Vec2{X: 40, Y: 40}, HasTarget: true,
	}))
	a.Wake()

	assert.Eventually(t, func() bool { return !a.Running() }, 2*time.Second, 5*time.Millisecond)
	assert.Positive(t, frames.Load(), "the frame callback fires while animating")
}

func TestAnimatorWakeIsIdempotent(t *testing.T) {
	p := DefaultParams()
	p.FrameInterval = time.Millisecond

	a := NewAnimator(p, nil)
	a.SetGraph(animGraph(&models.Node{
		ID: "a", Target: models.Vec2{X: 1000, Y: 0}, HasTarget: true,
	}))

	a.Wake()
	a.Wake()
	a.Wake()
	assert.True(t, a.Running())
	a.Close()
	assert.Eventually(t, func() bool { return !a.Running() }, 2*time.Second, 5*time.Millisecond)
}

func TestAnimatorWakeAfterClose(t *testing.T) {
	a := NewAnimator(DefaultParams(), nil)
	a.Close()
	a.Wake()
	assert.False(t, a.Running(), "a closed animator never restarts")
}

func TestAnimatorAngularNudge(t *testing.T) {
	// A degree-2 hub with both satellites bunched on the right: the frame
	// loop must push them apart toward opposite spokes.
	hub := &models.Node{ID: "hub", Pos: models.Vec2{X: 0, Y: 0}, Target: models.Vec2{X: 0, Y: 0}, HasTarget: true}
	s1 := &models.Node{ID: "s1", Pos: models.Vec2{X: 100, Y: 10}, Target: models.Vec2{X: 100, Y: 10}, HasTarget: true}
	s2 := &models.Node{ID: "s2", Pos: models.Vec2{X: 95, Y: 30}, Target: models.Vec2{X: 95, Y: 30}, HasTarget: true}

	g := animGraph(hub, s1, s2)
	g.AddLink(models.Link{Source: "hub", Target: "s1"})
	g.AddLink(models.Link{Source: "hub", Target: "s2"})
	g.RefreshTopology()

	a := NewAnimator(DefaultParams(), nil)
	a.SetGraph(g)
	a.Step()

	// Ideal angles are 0 and π in neighbor order: s1 drops back onto the
	// +x axis, s2 swings counterclockwise toward the -x side.
	assert.Less(t, s1.Vel.Y, 0.0)
	assert.Greater(t, s2.Vel.Y, 0.0)
}
