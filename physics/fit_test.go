package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beadgame/beadgraph/models"
)

func fitGraph(positions ...models.Vec2) *models.Graph {
	g := models.NewGraph()
	for i, p := range positions {
		g.AddNode(&models.Node{ID: string(rune('a' + i)), Pos: p})
	}
	return g
}

func TestFitToViewportBounds(t *testing.T) {
	g := fitGraph(
		models.Vec2{X: -500, Y: 200},
		models.Vec2{X: 900, Y: -100},
		models.Vec2{X: 120, Y: 4000},
	)
	vp := Viewport{Width: 800, Height: 600, Padding: 40}
	FitToViewport(g, vp)

	for _, n := range g.Nodes {
		require.True(t, n.HasTarget)
		assert.GreaterOrEqual(t, n.Target.X, vp.Padding)
		assert.LessOrEqual(t, n.Target.X, vp.Width-vp.Padding)
		assert.GreaterOrEqual(t, n.Target.Y, vp.Padding)
		assert.LessOrEqual(t, n.Target.Y, vp.Height-vp.Padding)
	}
}

func TestFitToViewportPreservesDistanceRatios(t *testing.T) {
	g := fitGraph(
		models.Vec2{X: 0, Y: 0},
		models.Vec2{X: 10, Y: 0},
		models.Vec2{X: 0, Y: 10},
	)
	FitToViewport(g, Viewport{Width: 800, Height: 600, Padding: 40})

	a, b, c := g.Nodes[0], g.Nodes[1], g.Nodes[2]
	dab := math.Hypot(b.Target.X-a.Target.X, b.Target.Y-a.Target.Y)
	dac := math.Hypot(c.Target.X-a.Target.X, c.Target.Y-a.Target.Y)
	assert.InDelta(t, 1.0, dab/dac, 1e-9, "uniform scaling keeps equal distances equal")
}

func TestFitToViewportSingleNode(t *testing.T) {
	g := fitGraph(models.Vec2{X: 12345, Y: -999})
	vp := Viewport{Width: 800, Height: 600, Padding: 40}
	FitToViewport(g, vp)

	n := g.Nodes[0]
	assert.False(t, math.IsNaN(n.Target.X) || math.IsNaN(n.Target.Y))
	assert.GreaterOrEqual(t, n.Target.X, vp.Padding)
	assert.LessOrEqual(t, n.Target.X, vp.Width-vp.Padding)
}

func TestFitToViewportCollinearNodes(t *testing.T) {
	// Zero vertical span must not divide by zero.
	g := fitGraph(
		models.Vec2{X: 0, Y: 50},
		models.Vec2{X: 100, Y: 50},
	)
	vp := Viewport{Width: 400, Height: 300, Padding: 20}
	FitToViewport(g, vp)

	for _, n := range g.Nodes {
		assert.False(t, math.IsNaN(n.Target.X) || math.IsNaN(n.Target.Y))
	}
	// The flat axis centers in the viewport, modulo the substituted span.
	assert.InDelta(t, vp.Height/2, g.Nodes[0].Target.Y, 2.0)
}

func TestFitToViewportEmptyGraph(t *testing.T) {
	g := models.NewGraph()
	assert.NotPanics(t, func() {
		FitToViewport(g, Viewport{Width: 800, Height: 600, Padding: 40})
	})
}
