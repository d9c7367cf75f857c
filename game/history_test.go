package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beadgame/beadgraph/models"
)

func TestParseHistory(t *testing.T) {
	data := []byte(`{
		"originalTopic": "Sound",
		"turns": [
			{"round": 1, "topic": "Sound", "response": "Echo", "player": "human",
			 "scores": {"semanticDistance": 3, "similarity": 8, "total": 11}},
			{"round": 2, "topic": "Echo", "response": "Resonance", "player": "ai",
			 "scores": {"semanticDistance": 5, "similarity": 6, "total": 11,
			            "originalConnection": {"semanticDistance": 4, "similarity": 7}}}
		]
	}`)

	h, err := ParseHistory(data)
	require.NoError(t, err)
	assert.Equal(t, "Sound", h.OriginalTopic)
	require.Len(t, h.Turns, 2)
	assert.Equal(t, models.PlayerHuman, h.Turns[0].Player)
	assert.Equal(t, 8.0, h.Turns[0].Scores.Similarity)

	oc := h.Turns[1].Scores.OriginalConnection
	require.NotNil(t, oc)
	assert.Equal(t, 4.0, oc.SemanticDistance)

	// CurrentTopic defaults to the last response when absent.
	assert.Equal(t, "Resonance", h.CurrentTopic)
}

func TestParseHistoryErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `{"originalTopic": "Sound",`},
		{"missing original topic", `{"turns": []}`},
		{"blank original topic", `{"originalTopic": "   "}`},
		{"unknown player", `{"originalTopic": "Sound", "turns": [{"response": "Echo", "player": "judge"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHistory([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParseHistoryKeepsMalformedTurns(t *testing.T) {
	data := []byte(`{
		"originalTopic": "Sound",
		"turns": [
			{"round": 1, "response": "Echo", "player": "human"},
			{"round": 2, "response": "   ", "player": "ai"}
		]
	}`)

	h, err := ParseHistory(data)
	require.NoError(t, err)
	require.Len(t, h.Turns, 2, "malformed turns stay in place so indices stay stable")
	assert.False(t, h.Turns[0].Malformed())
	assert.True(t, h.Turns[1].Malformed())
}

func TestTurnScoresRelevanceQualityAlias(t *testing.T) {
	data := []byte(`{
		"originalTopic": "Sound",
		"turns": [
			{"response": "Echo", "player": "human",
			 "scores": {"semanticDistance": 3, "relevanceQuality": 9}}
		]
	}`)

	h, err := ParseHistory(data)
	require.NoError(t, err)
	assert.Equal(t, 9.0, h.Turns[0].Scores.Similarity)
}

func TestTurnScoresSimilarityWinsOverAlias(t *testing.T) {
	data := []byte(`{"semanticDistance": 3, "similarity": 6, "relevanceQuality": 9}`)

	var s TurnScores
	require.NoError(t, s.UnmarshalJSON(data))
	assert.Equal(t, 6.0, s.Similarity)
}
