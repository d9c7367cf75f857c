package physics

import (
	"github.com/beadgame/beadgraph/models"
)

// Layout is the contract every layout pass implements: seed internal state
// from a graph, iterate until done, write the result back.
type Layout interface {
	Initialize(g *models.Graph)
	Step() bool // true when no more steps are needed
	Apply(g *models.Graph)
	Name() string
}

// Relaxer is the static simulator. It runs a fixed budget of relaxation
// iterations that place newly added nodes around the existing ones.
// Previously placed nodes act as immovable anchors: they exert repulsion
// and spring forces but are never displaced, which is what keeps an
// incremental update from jittering the rest of the picture.
type Relaxer struct {
	p       Params
	nodes   []*models.Node
	pos     map[string]models.Vec2
	movable map[string]bool
	links   []models.Link
	iter    int
}

// NewRelaxer creates a relaxer with the given parameters.
func NewRelaxer(p Params) *Relaxer {
	return &Relaxer{p: p}
}

// Name identifies the layout pass.
func (r *Relaxer) Name() string { return "incremental-relax" }

// Initialize snapshots node positions and movability from the graph.
// A node moves during relaxation only if it is newly added and not pinned.
func (r *Relaxer) Initialize(g *models.Graph) {
	r.nodes = g.Nodes
	r.links = g.Links
	r.pos = make(map[string]models.Vec2, len(g.Nodes))
	r.movable = make(map[string]bool, len(g.Nodes))
	r.iter = 0
	for _, n := range g.Nodes {
		r.pos[n.ID] = n.Pos
		r.movable[n.ID] = n.NewlyAdded && !n.Pinned
	}
}

// Step runs one relaxation iteration and reports whether the iteration
// budget is exhausted. Angular correction only joins in the second half of
// the budget, once repulsion and springs have roughed out the shape.
func (r *Relaxer) Step() bool {
	if r.iter >= r.p.Iterations {
		return true
	}

	disp := make(map[string]models.Vec2, len(r.nodes))

	// Repulsion over every unordered pair.
	for i, a := range r.nodes {
		for _, b := range r.nodes[i+1:] {
			if r.movable[b.ID] {
				f := Repulse(r.pos[a.ID], r.pos[b.ID], r.p.Repulsion, r.p.MinDistance)
				disp[b.ID] = disp[b.ID].Add(f)
			}
			if r.movable[a.ID] {
				f := Repulse(r.pos[b.ID], r.pos[a.ID], r.p.Repulsion, r.p.MinDistance)
				disp[a.ID] = disp[a.ID].Add(f)
			}
		}
	}

	// Spring attraction along links, toward the score-derived rest length.
	for _, l := range r.links {
		rest := r.p.RestLength(l.SemanticDistance)
		src, ok1 := r.pos[l.Source]
		dst, ok2 := r.pos[l.Target]
		if !ok1 || !ok2 {
			continue
		}
		if r.movable[l.Source] {
			f := SpringPull(src, dst, rest, r.p.MinDistance).Scale(r.p.SpringGain)
			disp[l.Source] = disp[l.Source].Add(f)
		}
		if r.movable[l.Target] {
			f := SpringPull(dst, src, rest, r.p.MinDistance).Scale(r.p.SpringGain)
			disp[l.Target] = disp[l.Target].Add(f)
		}
	}

	// Angular correction around hubs, second half of the budget only.
	if r.iter >= r.p.Iterations/2 {
		for _, hub := range r.nodes {
			if hub.Degree() <= 1 {
				continue
			}
			hubPos := r.pos[hub.ID]
			for _, id := range hub.Neighbors {
				if !r.movable[id] {
					continue
				}
				ideal, ok := hub.IdealAngles[id]
				if !ok {
					continue
				}
				shift := AngularShift(hubPos, r.pos[id], ideal, r.p.AngularCap, r.p.MinDistance)
				disp[id] = disp[id].Add(shift.Scale(r.p.AngularGain))
			}
		}
	}

	for id, d := range disp {
		r.pos[id] = r.pos[id].Add(clampStep(d, r.p.MaxStep))
	}

	r.iter++
	return r.iter >= r.p.Iterations
}

// Apply writes the relaxed positions back to the graph, copies them into
// each node's target, and retires the newly-added flags: the flag is good
// for exactly one relaxation pass.
func (r *Relaxer) Apply(g *models.Graph) {
	for _, n := range g.Nodes {
		if p, ok := r.pos[n.ID]; ok {
			n.Pos = p
		}
		n.Target = n.Pos
		n.HasTarget = true
		n.NewlyAdded = false
	}
}

// Relax runs a full relaxation pass over the graph with the given
// parameters.
func Relax(g *models.Graph, p Params) {
	r := NewRelaxer(p)
	r.Initialize(g)
	for !r.Step() {
	}
	r.Apply(g)
}
