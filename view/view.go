// Package view owns the lifecycle of one on-screen concept graph: it
// rebuilds the snapshot when the turn history changes, relaxes and fits the
// new layout, and drives the animator that eases visible positions toward
// it. All mutable layout state is reached through a single view, so the
// rebuild path and the frame loop never race.
package view

import (
	"sync"

	"github.com/beadgame/beadgraph/game"
	"github.com/beadgame/beadgraph/graph"
	"github.com/beadgame/beadgraph/models"
	"github.com/beadgame/beadgraph/physics"
	"github.com/beadgame/beadgraph/render"
)

// Config configures a graph view.
type Config struct {
	Width   float64
	Height  float64
	Padding float64
	Params  physics.Params
	Render  *render.Options

	// OnFrame, if set, receives a drawable frame after every animation
	// step.
	OnFrame func(render.Frame)

	// OnSelect receives the full history entry behind a clicked node. The
	// click never mutates graph topology; what to do with the concept is
	// the surrounding application's business.
	OnSelect func(game.Turn)
}

// GraphView is the render/interaction adapter around one game's concept
// graph.
type GraphView struct {
	mu  sync.Mutex
	cfg Config

	originalTopic string
	currentTopic  string
	history       []game.Turn
	connections   []game.Connection

	graph   *models.Graph
	hoverID string
	anim    *physics.Animator
	closed  bool
}

// New creates a view for a game that starts from the given original topic.
func New(originalTopic string, cfg Config) *GraphView {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	if cfg.Padding <= 0 {
		cfg.Padding = 40
	}
	if cfg.Params.Iterations == 0 {
		cfg.Params = physics.DefaultParams()
	}
	if cfg.Render == nil {
		cfg.Render = render.DefaultOptions()
	}
	cfg.Render.Width = cfg.Width
	cfg.Render.Height = cfg.Height

	v := &GraphView{
		cfg:           cfg,
		originalTopic: originalTopic,
		currentTopic:  originalTopic,
	}
	v.anim = physics.NewAnimator(cfg.Params, v.emitFrame)
	v.rebuildLocked()
	return v
}

// SetHistory replaces the whole turn history, rebuilding the graph while
// preserving the physics state of every node that survives.
func (v *GraphView) SetHistory(h *game.History) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.originalTopic = h.OriginalTopic
	if h.CurrentTopic != "" {
		v.currentTopic = h.CurrentTopic
	}
	v.history = append(v.history[:0], h.Turns...)
	v.connections = append(v.connections[:0], h.Connections...)
	v.rebuildLocked()
}

// AppendTurn adds one judged turn and rebuilds incrementally: every
// previously placed node keeps its position, only the new node is relaxed
// into place.
func (v *GraphView) AppendTurn(t game.Turn) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.history = append(v.history, t)
	if !t.Malformed() {
		v.currentTopic = t.Response
	}
	v.rebuildLocked()
}

// AddConnection merges a user-added connection between two history entries.
func (v *GraphView) AddConnection(c game.Connection) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.connections = append(v.connections, c)
	v.rebuildLocked()
}

// Reset discards the whole graph and starts over from a fresh topic. No
// positions survive a reset.
func (v *GraphView) Reset(originalTopic string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.originalTopic = originalTopic
	v.currentTopic = originalTopic
	v.history = nil
	v.connections = nil
	v.graph = nil
	v.rebuildLocked()
}

// Resize refits the layout targets to new viewport dimensions and re-awakens
// the animation if it had settled.
func (v *GraphView) Resize(width, height float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || width <= 0 || height <= 0 {
		return
	}
	v.cfg.Width = width
	v.cfg.Height = height
	v.cfg.Render.Width = width
	v.cfg.Render.Height = height
	g := v.graph
	v.anim.Sync(func() {
		physics.FitToViewport(g, v.viewport())
	})
	v.anim.Wake()
}

// Hover marks a node as hovered; an empty id clears the state. Hover only
// affects the highlight and label flags the next frame reports.
func (v *GraphView) Hover(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.hoverID = id
}

// Click forwards the history entry behind the node to the OnSelect
// callback. Clicks on the original topic node (which has no backing turn)
// are ignored.
func (v *GraphView) Click(id string) {
	v.mu.Lock()
	n := v.graph.FindNode(id)
	var turn *game.Turn
	if n != nil && n.Turn >= 0 && n.Turn < len(v.history) {
		t := v.history[n.Turn]
		turn = &t
	}
	cb := v.cfg.OnSelect
	v.mu.Unlock()

	if turn != nil && cb != nil {
		cb(*turn)
	}
}

// DragStart pins a node: springs and angular correction leave it alone
// until DragEnd releases it.
func (v *GraphView) DragStart(id string) {
	v.withNode(id, func(n *models.Node) {
		n.Pinned = true
		n.Vel = models.Vec2{}
	})
}

// DragMove places a pinned node directly under the pointer.
func (v *GraphView) DragMove(id string, pos models.Vec2) {
	v.withNode(id, func(n *models.Node) {
		if n.Pinned {
			n.Pos = pos
		}
	})
}

// DragEnd releases a node back into the spring system.
func (v *GraphView) DragEnd(id string) {
	v.withNode(id, func(n *models.Node) {
		n.Pinned = false
	})
	v.anim.Wake()
}

// Frame returns the current drawable frame, highlighting the view's stored
// hover state.
func (v *GraphView) Frame() render.Frame {
	v.mu.Lock()
	hover := v.hoverID
	v.mu.Unlock()
	return v.FrameWithHover(hover)
}

// FrameWithHover returns the current drawable frame with the given node
// hover-highlighted, without touching the view's stored hover state. Useful
// for stateless per-request rendering.
func (v *GraphView) FrameWithHover(hoverID string) render.Frame {
	v.mu.Lock()
	defer v.mu.Unlock()
	var f render.Frame
	g, opts := v.graph, v.cfg.Render
	v.anim.Sync(func() {
		f = render.Snapshot(g, opts, hoverID)
	})
	return f
}

// Graph exposes the current snapshot for inspection. Callers must treat it
// as read-only.
func (v *GraphView) Graph() *models.Graph {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.graph
}

// Animator exposes the underlying frame loop, mainly so hosts can drive
// Step themselves instead of using the internal ticker.
func (v *GraphView) Animator() *physics.Animator { return v.anim }

// Close tears the view down and cancels the animation loop. The view is
// unusable afterwards.
func (v *GraphView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	v.anim.Close()
}

// rebuildLocked runs the full pipeline: snapshot carried-over state, build,
// relax new nodes, fit to viewport, swap the graph in, wake the loop.
// Callers hold v.mu.
func (v *GraphView) rebuildLocked() {
	var prev map[string]models.NodeState
	if v.graph != nil {
		old := v.graph
		v.anim.Sync(func() {
			prev = old.States()
		})
	}

	g := graph.Build(graph.Input{
		History:       v.history,
		OriginalTopic: v.originalTopic,
		CurrentTopic:  v.currentTopic,
		Connections:   v.connections,
		Previous:      prev,
		Width:         v.cfg.Width,
		Height:        v.cfg.Height,
	})
	physics.Relax(g, v.cfg.Params)
	physics.FitToViewport(g, v.viewport())

	v.graph = g
	v.anim.SetGraph(g)
	v.anim.Wake()
}

func (v *GraphView) viewport() physics.Viewport {
	return physics.Viewport{
		Width:   v.cfg.Width,
		Height:  v.cfg.Height,
		Padding: v.cfg.Padding,
	}
}

func (v *GraphView) withNode(id string, fn func(*models.Node)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	g := v.graph
	v.anim.Sync(func() {
		if n := g.FindNode(id); n != nil {
			fn(n)
		}
	})
}

func (v *GraphView) emitFrame() {
	v.mu.Lock()
	cb := v.cfg.OnFrame
	g, hover, opts := v.graph, v.hoverID, v.cfg.Render
	v.mu.Unlock()
	if cb == nil || g == nil {
		return
	}
	// Snapshot under the animator lock so concurrent drags and a freshly
	// woken loop cannot write positions mid-read.
	var f render.Frame
	v.anim.Sync(func() {
		f = render.Snapshot(g, opts, hover)
	})
	cb(f)
}
