package graph

import "github.com/beadgame/beadgraph/models"

// Palette provides the colors used for nodes and links.
type Palette struct {
	Origin     string
	Human      string
	AI         string
	Unknown    string
	Link       string
	CustomLink string
	Background string
}

// DefaultPalette returns the standard game colors.
func DefaultPalette() *Palette {
	return &Palette{
		Origin:     "#673AB7", // purple, the fixed original topic
		Human:      "#4285F4", // blue
		AI:         "#EA4335", // red
		Unknown:    "#808080",
		Link:       "#666666",
		CustomLink: "#9C27B0",
		Background: "#f8f8f8",
	}
}

// NodeColor derives a node's fill from its role and originating player.
func (p *Palette) NodeColor(n *models.Node) string {
	if n.OriginalTopic {
		return p.Origin
	}
	switch n.Player {
	case models.PlayerHuman:
		return p.Human
	case models.PlayerAI:
		return p.AI
	}
	return p.Unknown
}
