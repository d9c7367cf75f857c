package server

import (
	"github.com/beadgame/beadgraph/game"
	"github.com/beadgame/beadgraph/models"
)

type createGameRequest struct {
	OriginalTopic string  `json:"originalTopic" validate:"required"`
	Width         float64 `json:"width" validate:"omitempty,gt=0"`
	Height        float64 `json:"height" validate:"omitempty,gt=0"`
}

type scorePairPayload struct {
	SemanticDistance float64 `json:"semanticDistance" validate:"gte=0,lte=10"`
	Similarity       float64 `json:"similarity" validate:"gte=0,lte=10"`
}

type scoresPayload struct {
	SemanticDistance   float64           `json:"semanticDistance" validate:"gte=0,lte=10"`
	Similarity         float64           `json:"similarity" validate:"gte=0,lte=10"`
	Total              float64           `json:"total"`
	OriginalConnection *scorePairPayload `json:"originalConnection,omitempty"`
}

type turnRequest struct {
	Topic    string        `json:"topic"`
	Response string        `json:"response" validate:"required"`
	Player   string        `json:"player" validate:"required,oneof=human ai"`
	Scores   scoresPayload `json:"scores"`
}

func (r turnRequest) toTurn(round int) game.Turn {
	t := game.Turn{
		Round:    round,
		Topic:    r.Topic,
		Response: r.Response,
		Player:   models.Player(r.Player),
		Scores: game.TurnScores{
			SemanticDistance: r.Scores.SemanticDistance,
			Similarity:       r.Scores.Similarity,
			Total:            r.Scores.Total,
		},
	}
	if oc := r.Scores.OriginalConnection; oc != nil {
		t.Scores.OriginalConnection = &game.ScorePair{
			SemanticDistance: oc.SemanticDistance,
			Similarity:       oc.Similarity,
		}
	}
	return t
}

type connectionRequest struct {
	From *int `json:"from" validate:"required,gte=0"`
	To   *int `json:"to" validate:"required,gte=0"`
}

type resizeRequest struct {
	Width  float64 `json:"width" validate:"required,gt=0"`
	Height float64 `json:"height" validate:"required,gt=0"`
}

type selectRequest struct {
	NodeID string `json:"nodeId" validate:"required"`
}
