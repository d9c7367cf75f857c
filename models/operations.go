package models

import (
	"math"

	"github.com/google/uuid"
)

// NewGraph creates an empty graph snapshot with a unique id.
func NewGraph() *Graph {
	return &Graph{
		ID:    uuid.New().String(),
		Nodes: []*Node{},
		Links: []Link{},
		index: make(map[string]*Node),
	}
}

// AddNode appends a node to the graph. A node with a duplicate id is
// ignored and the existing node returned, so identical concepts merge.
func (g *Graph) AddNode(n *Node) *Node {
	if existing, ok := g.index[n.ID]; ok {
		return existing
	}
	g.Nodes = append(g.Nodes, n)
	g.index[n.ID] = n
	return n
}

// AddLink appends a link to the graph. Links whose endpoints do not resolve
// to known nodes are dropped; a broken connection is not worth a crashed
// render cycle. Returns false when the link was dropped.
func (g *Graph) AddLink(l Link) bool {
	if _, ok := g.index[l.Source]; !ok {
		return false
	}
	if _, ok := g.index[l.Target]; !ok {
		return false
	}
	g.Links = append(g.Links, l)
	return true
}

// RefreshTopology recomputes every node's neighbor list, and from it the
// ideal angular bearings that evenly divide 2π among a node's neighbors in
// neighbor-list order. Must be called after the link set changes.
func (g *Graph) RefreshTopology() {
	for _, n := range g.Nodes {
		n.Neighbors = n.Neighbors[:0]
		n.IdealAngles = nil
	}
	seen := make(map[[2]string]bool, len(g.Links))
	for _, l := range g.Links {
		key := [2]string{l.Source, l.Target}
		if l.Target < l.Source {
			key = [2]string{l.Target, l.Source}
		}
		if seen[key] || l.Source == l.Target {
			continue
		}
		seen[key] = true
		g.index[l.Source].Neighbors = append(g.index[l.Source].Neighbors, l.Target)
		g.index[l.Target].Neighbors = append(g.index[l.Target].Neighbors, l.Source)
	}
	for _, n := range g.Nodes {
		deg := len(n.Neighbors)
		if deg <= 1 {
			continue
		}
		n.IdealAngles = make(map[string]float64, deg)
		for i, id := range n.Neighbors {
			n.IdealAngles[id] = 2 * math.Pi * float64(i) / float64(deg)
		}
	}
}
