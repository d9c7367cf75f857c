// Package render turns graph snapshots into drawable primitives and output
// formats. A Frame is the per-redraw contract with the rendering layer:
// ordered node and link arrays with every coordinate already resolved.
package render

import (
	"github.com/beadgame/beadgraph/graph"
	"github.com/beadgame/beadgraph/models"
)

// Options configures rendering output.
type Options struct {
	Width      float64
	Height     float64
	Background string
	EdgeWidth  float64
	FontSize   float64
	ShowLabels bool
}

// DefaultOptions returns sensible rendering defaults.
func DefaultOptions() *Options {
	return &Options{
		Width:      800,
		Height:     600,
		Background: graph.DefaultPalette().Background,
		EdgeWidth:  1.5,
		FontSize:   11,
		ShowLabels: true,
	}
}

// FrameNode is one drawable node.
type FrameNode struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Radius    float64 `json:"radius"`
	Color     string  `json:"color"`
	Ring      bool    `json:"ring,omitempty"`      // current-topic marker
	Highlight bool    `json:"highlight,omitempty"` // hover state
	ShowLabel bool    `json:"showLabel"`
}

// FrameLink is one drawable link with endpoints resolved to the current
// node positions.
type FrameLink struct {
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
	Color  string  `json:"color"`
	Width  float64 `json:"width"`
	Dashed bool    `json:"dashed"`
}

// Frame is everything the rendering layer needs for one redraw.
type Frame struct {
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Background string      `json:"background"`
	Nodes      []FrameNode `json:"nodes"`
	Links      []FrameLink `json:"links"`
}

// Snapshot extracts a drawable frame from the graph. hoverID, when
// non-empty, marks that node highlighted and forces its label visible.
// Links whose endpoints are missing from the snapshot are skipped, not
// rendered.
func Snapshot(g *models.Graph, opts *Options, hoverID string) Frame {
	if opts == nil {
		opts = DefaultOptions()
	}
	palette := graph.DefaultPalette()

	f := Frame{
		Width:      opts.Width,
		Height:     opts.Height,
		Background: opts.Background,
		Nodes:      make([]FrameNode, 0, len(g.Nodes)),
		Links:      make([]FrameLink, 0, len(g.Links)),
	}

	for _, l := range g.Links {
		src := g.FindNode(l.Source)
		dst := g.FindNode(l.Target)
		if src == nil || dst == nil {
			continue
		}
		color := palette.Link
		if l.Custom {
			color = palette.CustomLink
		}
		f.Links = append(f.Links, FrameLink{
			X1:     src.Pos.X,
			Y1:     src.Pos.Y,
			X2:     dst.Pos.X,
			Y2:     dst.Pos.Y,
			Color:  color,
			Width:  strokeWidth(l.Similarity, opts.EdgeWidth),
			Dashed: l.Custom,
		})
	}

	for _, n := range g.Nodes {
		f.Nodes = append(f.Nodes, FrameNode{
			ID:        n.ID,
			Label:     n.Label,
			X:         n.Pos.X,
			Y:         n.Pos.Y,
			Radius:    n.Radius,
			Color:     n.Color,
			Ring:      n.CurrentTopic,
			Highlight: n.ID == hoverID || n.Selected,
			ShowLabel: opts.ShowLabels || n.ID == hoverID,
		})
	}

	return f
}

// strokeWidth scales a link's stroke by its similarity score, with a floor
// so weak connections stay visible.
func strokeWidth(similarity, base float64) float64 {
	w := base * similarity / 5
	if w < 0.5 {
		w = 0.5
	}
	return w
}
