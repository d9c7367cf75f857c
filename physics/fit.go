package physics

import "github.com/beadgame/beadgraph/models"

// Viewport describes the drawing surface the graph must fit into.
type Viewport struct {
	Width   float64
	Height  float64
	Padding float64
}

// FitToViewport rewrites every node's target so the bounding box of the
// current positions fits inside the padded viewport. Scaling is uniform
// (the smaller of the two axis factors) so pairwise distance ratios are
// preserved, and the result is centered in the leftover space. A zero-area
// graph (single node, or all nodes coincident on one axis) substitutes a
// span of 1 instead of dividing by zero.
func FitToViewport(g *models.Graph, vp Viewport) {
	if len(g.Nodes) == 0 {
		return
	}

	minX, minY := g.Nodes[0].Pos.X, g.Nodes[0].Pos.Y
	maxX, maxY := minX, minY
	for _, n := range g.Nodes[1:] {
		if n.Pos.X < minX {
			minX = n.Pos.X
		}
		if n.Pos.X > maxX {
			maxX = n.Pos.X
		}
		if n.Pos.Y < minY {
			minY = n.Pos.Y
		}
		if n.Pos.Y > maxY {
			maxY = n.Pos.Y
		}
	}

	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	innerW := vp.Width - 2*vp.Padding
	innerH := vp.Height - 2*vp.Padding
	scale := innerW / spanX
	if s := innerH / spanY; s < scale {
		scale = s
	}

	// Center the scaled bounding box inside the padded area.
	offX := vp.Padding + (innerW-spanX*scale)/2
	offY := vp.Padding + (innerH-spanY*scale)/2

	for _, n := range g.Nodes {
		n.Target = models.Vec2{
			X: (n.Pos.X-minX)*scale + offX,
			Y: (n.Pos.Y-minY)*scale + offY,
		}
		n.HasTarget = true
	}
}
