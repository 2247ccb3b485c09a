package session

import (
	"encoding/json"
	"fmt"

	"github.com/codernaccotax/quizdrill/internal/models"
)

// decodeSnapshot parses and validates a stored snapshot. Anything structurally
// unexpected is an error; callers treat that as a cache miss and regenerate,
// never trusting partial data.
func decodeSnapshot(data []byte) (*models.Snapshot, error) {
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	if err := validateSnapshot(&snap); err != nil {
		return nil, err
	}
	if snap.Responses == nil {
		snap.Responses = make(map[string]int)
	}
	if snap.Submitted == nil {
		snap.Submitted = make(map[string]bool)
	}
	return &snap, nil
}

func validateSnapshot(snap *models.Snapshot) error {
	if len(snap.Questions) == 0 {
		return fmt.Errorf("snapshot has no questions")
	}

	byID := make(map[string]models.Question, len(snap.Questions))
	for i, q := range snap.Questions {
		if q.ID == "" {
			return fmt.Errorf("question %d: missing id", i)
		}
		if _, dup := byID[q.ID]; dup {
			return fmt.Errorf("question %d: duplicate id %q", i, q.ID)
		}
		if len(q.Options) == 0 {
			return fmt.Errorf("question %q: no options", q.ID)
		}
		if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
			return fmt.Errorf("question %q: answerIndex out of range", q.ID)
		}
		byID[q.ID] = q
	}

	for id, idx := range snap.Responses {
		q, ok := byID[id]
		if !ok {
			return fmt.Errorf("response for unknown question %q", id)
		}
		if idx < 0 || idx >= len(q.Options) {
			return fmt.Errorf("response for question %q out of range", id)
		}
	}

	score := 0
	for id, sub := range snap.Submitted {
		if !sub {
			continue
		}
		q, ok := byID[id]
		if !ok {
			return fmt.Errorf("submission for unknown question %q", id)
		}
		idx, answered := snap.Responses[id]
		if !answered {
			return fmt.Errorf("submission without response for question %q", id)
		}
		if idx == q.AnswerIndex {
			score++
		}
	}
	if score != snap.Score {
		return fmt.Errorf("stored score %d does not match submissions (expected %d)", snap.Score, score)
	}

	return nil
}

func encodeSnapshot(snap *models.Snapshot) ([]byte, error) {
	return json.Marshal(snap)
}
