package models

// FindNode returns the node with the given id, or nil when absent.
func (g *Graph) FindNode(id string) *Node {
	return g.index[id]
}

// LinksFor returns all links touching the given node id.
func (g *Graph) LinksFor(id string) []Link {
	var result []Link
	for _, l := range g.Links {
		if l.Source == id || l.Target == id {
			result = append(result, l)
		}
	}
	return result
}

// NodeState is the carried-over motion state of a node from a previous
// snapshot, used to seed an incremental rebuild.
type NodeState struct {
	Pos Vec2
	Vel Vec2
}

// States captures every node's position and velocity keyed by id. The map
// is a copy; mutating it does not touch the graph.
func (g *Graph) States() map[string]NodeState {
	out := make(map[string]NodeState, len(g.Nodes))
	for _, n := range g.Nodes {
		out[n.ID] = NodeState{Pos: n.Pos, Vel: n.Vel}
	}
	return out
}
