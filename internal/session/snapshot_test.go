package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codernaccotax/quizdrill/internal/models"
)

func snapshotFixture() *models.Snapshot {
	return &models.Snapshot{
		Questions: []models.Question{
			{ID: "q1", Prompt: "one?", Options: []string{"a", "b", "c"}, AnswerIndex: 2},
			{ID: "q2", Prompt: "two?", Options: []string{"a", "b"}, AnswerIndex: 0},
		},
		Responses: map[string]int{"q1": 2},
		Submitted: map[string]bool{"q1": true},
		Score:     1,
	}
}

func TestDecodeSnapshot_RoundTrip(t *testing.T) {
	snap := snapshotFixture()
	data, err := encodeSnapshot(snap)
	require.NoError(t, err)

	got, err := decodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, snap.Questions, got.Questions)
	assert.Equal(t, snap.Responses, got.Responses)
	assert.Equal(t, snap.Submitted, got.Submitted)
	assert.Equal(t, snap.Score, got.Score)
}

func TestDecodeSnapshot_InvalidJSON(t *testing.T) {
	_, err := decodeSnapshot([]byte("{not valid"))
	assert.Error(t, err)
}

func TestDecodeSnapshot_NilMapsBecomeEmpty(t *testing.T) {
	data := []byte(`{"quizQuestions":[{"id":"q1","question":"?","options":["a","b"],"answerIndex":1}],"score":0,"isFinished":false}`)
	got, err := decodeSnapshot(data)
	require.NoError(t, err)
	assert.NotNil(t, got.Responses)
	assert.NotNil(t, got.Submitted)
}

func TestValidateSnapshot(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Snapshot)
	}{
		{"no questions", func(s *models.Snapshot) { s.Questions = nil }},
		{"missing question id", func(s *models.Snapshot) { s.Questions[0].ID = "" }},
		{"duplicate question id", func(s *models.Snapshot) { s.Questions[1].ID = "q1" }},
		{"no options", func(s *models.Snapshot) { s.Questions[0].Options = nil }},
		{"answer index out of range", func(s *models.Snapshot) { s.Questions[0].AnswerIndex = 5 }},
		{"response for unknown question", func(s *models.Snapshot) { s.Responses["ghost"] = 0 }},
		{"response out of range", func(s *models.Snapshot) { s.Responses["q1"] = 7 }},
		{"submission for unknown question", func(s *models.Snapshot) { s.Submitted["ghost"] = true }},
		{"submission without response", func(s *models.Snapshot) { s.Submitted["q2"] = true }},
		{"score does not match submissions", func(s *models.Snapshot) { s.Score = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := snapshotFixture()
			tt.mutate(snap)
			assert.Error(t, validateSnapshot(snap))
		})
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validateSnapshot(snapshotFixture()))
	})
}
