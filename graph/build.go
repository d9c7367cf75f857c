// Package graph builds concept-graph snapshots from a game's judged turn
// history. The builder is the only writer of graph topology; positions and
// velocities carried over from a previous snapshot are seeded verbatim so
// the physics state survives incremental rebuilds.
package graph

import (
	"fmt"
	"hash/fnv"
	"strings"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/beadgame/beadgraph/game"
	"github.com/beadgame/beadgraph/models"
)

// OriginNodeID is the fixed id of the original-topic node. The slot exists
// in every snapshot of a game regardless of history content.
const OriginNodeID = "origin"

// scatterNoise seeds initial positions for nodes that have no carried-over
// state. Simplex noise keyed on the node id keeps the scatter deterministic
// per concept, so repeated rebuilds of the same history place new nodes in
// the same spot.
var scatterNoise = opensimplex.NewNormalized(42)

// ResponseID derives the stable node id for a response string. Identical
// concepts (case- and whitespace-insensitive) share an id and therefore
// merge into one node.
func ResponseID(label string) string {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(label))))
	return fmt.Sprintf("resp-%08x", h.Sum32())
}

// Input is everything the builder needs for one snapshot.
type Input struct {
	History       []game.Turn
	OriginalTopic string
	CurrentTopic  string
	Connections   []game.Connection

	// Previous carries position/velocity state from the prior snapshot,
	// keyed by node id. Nodes found here are seeded from it and are not
	// marked newly added.
	Previous map[string]models.NodeState

	// Width and Height bound the scatter area for brand-new nodes.
	Width, Height float64
}

// neutralScore is attached to user-added connections, which carry no judged
// scores of their own.
const neutralScore = 5

// Build constructs a graph snapshot from the input. It never fails:
// malformed turns are skipped and connections with unresolvable endpoints
// are dropped, because this runs on every UI update.
func Build(in Input) *models.Graph {
	if in.Width <= 0 {
		in.Width = 800
	}
	if in.Height <= 0 {
		in.Height = 600
	}

	g := models.NewGraph()

	origin := &models.Node{
		ID:            OriginNodeID,
		Label:         in.OriginalTopic,
		OriginalTopic: true,
		Turn:          -1,
		NewlyAdded:    true,
	}
	g.AddNode(origin)

	// One node per unique response, in first-occurrence order, chained by
	// links that carry the turn's scores. turnNodes maps history positions
	// to node ids for custom-connection resolution.
	turnNodes := make([]string, len(in.History))
	prevID := OriginNodeID
	for i, t := range in.History {
		if t.Malformed() {
			continue
		}
		id := ResponseID(t.Response)
		node := g.AddNode(&models.Node{
			ID:         id,
			Label:      strings.TrimSpace(t.Response),
			Player:     t.Player,
			Turn:       i,
			NewlyAdded: true,
		})
		turnNodes[i] = node.ID

		if id != prevID {
			g.AddLink(models.Link{
				Source:           prevID,
				Target:           id,
				SemanticDistance: t.Scores.SemanticDistance,
				Similarity:       t.Scores.Similarity,
			})
		}
		if oc := t.Scores.OriginalConnection; oc != nil && id != OriginNodeID {
			g.AddLink(models.Link{
				Source:           id,
				Target:           OriginNodeID,
				SemanticDistance: oc.SemanticDistance,
				Similarity:       oc.Similarity,
			})
		}
		prevID = id
	}

	// User-added connections resolve through history positions; anything
	// referencing an unknown or malformed turn is silently dropped.
	for _, c := range in.Connections {
		src := nodeAt(turnNodes, c.From)
		dst := nodeAt(turnNodes, c.To)
		if src == "" || dst == "" || src == dst {
			continue
		}
		g.AddLink(models.Link{
			Source:           src,
			Target:           dst,
			SemanticDistance: neutralScore,
			Similarity:       neutralScore,
			Custom:           true,
		})
	}

	g.RefreshTopology()

	current := strings.TrimSpace(in.CurrentTopic)
	palette := DefaultPalette()
	for _, n := range g.Nodes {
		if st, ok := in.Previous[n.ID]; ok {
			n.Pos = st.Pos
			n.Vel = st.Vel
			n.NewlyAdded = false
		} else {
			n.Pos = scatter(n.ID, in.Width, in.Height)
			n.Vel = models.Vec2{}
		}
		if current != "" && strings.EqualFold(n.Label, current) {
			n.CurrentTopic = true
		}
		n.Color = palette.NodeColor(n)
		n.Radius = radiusFor(n)
	}

	return g
}

func nodeAt(turnNodes []string, i int) string {
	if i < 0 || i >= len(turnNodes) {
		return ""
	}
	return turnNodes[i]
}

// scatter places a node pseudo-randomly inside the viewport, deterministic
// in the node id.
func scatter(id string, width, height float64) models.Vec2 {
	h := fnv.New32a()
	h.Write([]byte(id))
	seed := float64(h.Sum32()%10000) * 0.013
	return models.Vec2{
		X: scatterNoise.Eval2(seed, 0.7) * width,
		Y: scatterNoise.Eval2(seed, 4.2) * height,
	}
}

// radiusFor sizes a node by role and degree, clamped so dense hubs stay
// readable.
func radiusFor(n *models.Node) float64 {
	base := 12.0
	if n.OriginalTopic {
		base = 16.0
	}
	r := base + 1.5*float64(n.Degree())
	if r < 8 {
		r = 8
	}
	if r > 24 {
		r = 24
	}
	return r
}
