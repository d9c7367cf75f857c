// Package game defines the judged turn history the layout engine consumes.
// The history is owned by the surrounding game controller: append-only while
// a game runs, cleared wholesale on restart. Nothing in this module mutates
// it.
package game

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/beadgame/beadgraph/models"
)

// ScorePair holds the two judged axes for a single connection, each in
// [1,10]. Semantic distance reads "how far from the direct, obvious
// connection"; low values keep nodes close together.
type ScorePair struct {
	SemanticDistance float64 `json:"semanticDistance"`
	Similarity       float64 `json:"similarity"`
}

// TurnScores carries a turn's judged scores. OriginalConnection is only set
// on final-round turns that circle back to the original topic.
type TurnScores struct {
	SemanticDistance   float64    `json:"semanticDistance"`
	Similarity         float64    `json:"similarity"`
	Total              float64    `json:"total"`
	OriginalConnection *ScorePair `json:"originalConnection,omitempty"`
}

// UnmarshalJSON accepts both "similarity" and the older "relevanceQuality"
// key for the second axis.
func (s *TurnScores) UnmarshalJSON(data []byte) error {
	type alias TurnScores
	aux := struct {
		*alias
		RelevanceQuality *float64 `json:"relevanceQuality"`
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if s.Similarity == 0 && aux.RelevanceQuality != nil {
		s.Similarity = *aux.RelevanceQuality
	}
	return nil
}

// Turn is one judged exchange: the topic shown, the concept offered in
// response, who offered it, and how the judge scored the connection.
type Turn struct {
	Round    int           `json:"round"`
	Topic    string        `json:"topic"`
	Response string        `json:"response"`
	Player   models.Player `json:"player"`
	Scores   TurnScores    `json:"scores"`
}

// Malformed reports whether the turn cannot be visualized. Such turns are
// skipped rather than surfaced; a missing node beats a crashed game.
func (t Turn) Malformed() bool {
	return strings.TrimSpace(t.Response) == ""
}

// Connection is a user-added link between two turns, referenced by their
// positions in the history.
type Connection struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// History is a full game document as loaded from disk or held by a server
// session.
type History struct {
	OriginalTopic string       `json:"originalTopic"`
	CurrentTopic  string       `json:"currentTopic"`
	Turns         []Turn       `json:"turns"`
	Connections   []Connection `json:"connections,omitempty"`
}

// ParseHistory decodes a JSON game document. Individual malformed turns are
// kept in place (the layout builder skips them); only undecodable JSON or a
// missing original topic is an error.
func ParseHistory(data []byte) (*History, error) {
	var h History
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("parsing history: %w", err)
	}
	if strings.TrimSpace(h.OriginalTopic) == "" {
		return nil, fmt.Errorf("history has no original topic")
	}
	for i, t := range h.Turns {
		if t.Player != "" && !t.Player.Valid() {
			return nil, fmt.Errorf("turn %d: unknown player %q", i, t.Player)
		}
	}
	if h.CurrentTopic == "" && len(h.Turns) > 0 {
		h.CurrentTopic = h.Turns[len(h.Turns)-1].Response
	}
	return &h, nil
}
