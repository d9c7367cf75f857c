// Package models provides the data structures shared by the beadgraph
// layout engine: nodes, links and graph snapshots of a game's concept chain.
package models

// Player identifies who produced a response. It is a closed enum; any other
// value is rejected at the input boundary.
type Player string

const (
	PlayerHuman Player = "human"
	PlayerAI    Player = "ai"
)

// Valid reports whether p is one of the two known players.
func (p Player) Valid() bool {
	switch p {
	case PlayerHuman, PlayerAI:
		return true
	}
	return false
}

// Vec2 is a 2D vector used for positions, velocities and displacements.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Node is a concept in the graph. Pos is owned by the simulator and animator
// once the node exists; Target is written by the relax/fit pipeline and read
// by the animator.
type Node struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Player Player `json:"player,omitempty"`

	Pos       Vec2 `json:"pos"`
	Vel       Vec2 `json:"-"`
	Target    Vec2 `json:"target"`
	HasTarget bool `json:"-"`

	OriginalTopic bool `json:"originalTopic,omitempty"`
	CurrentTopic  bool `json:"currentTopic,omitempty"`
	Selected      bool `json:"selected,omitempty"`
	// NewlyAdded marks nodes that may be displaced during the next
	// relaxation pass. It is cleared once the pass completes.
	NewlyAdded bool `json:"-"`
	// Pinned disables spring and angular correction for the duration of a
	// drag gesture.
	Pinned bool `json:"-"`

	Radius float64 `json:"radius"`
	Color  string  `json:"color"`

	// Turn is the index of the first history entry backed by this node,
	// or -1 for the original-topic node.
	Turn int `json:"-"`

	// Neighbors lists adjacent node ids in first-link order. IdealAngles
	// maps each neighbor to its target bearing; it is only meaningful when
	// the degree is greater than one.
	Neighbors   []string           `json:"-"`
	IdealAngles map[string]float64 `json:"-"`
}

// Degree returns the number of distinct neighbors.
func (n *Node) Degree() int { return len(n.Neighbors) }

// Link connects two nodes and carries the judged scores of the turn that
// produced it. Semantic distance drives the rest length of the spring,
// similarity the rendered stroke weight.
type Link struct {
	Source           string  `json:"source"`
	Target           string  `json:"target"`
	SemanticDistance float64 `json:"semanticDistance"`
	Similarity       float64 `json:"similarity"`
	// Custom marks user-added connections outside the natural turn
	// sequence. It changes stroke style only, never physics.
	Custom bool `json:"custom,omitempty"`
}

// Graph is one snapshot of the concept chain: an ordered node list plus the
// links between them. It is rebuilt wholesale from the externally owned turn
// history and never mutates that history.
type Graph struct {
	ID    string  `json:"id"`
	Nodes []*Node `json:"nodes"`
	Links []Link  `json:"links"`

	index map[string]*Node
}
