// Package memory provides in-process repository implementations. They back
// tests and serve as the silent fallback when the sqlite database cannot be
// opened: the engine keeps working, sessions just do not survive a restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/codernaccotax/quizdrill/internal/models"
	"github.com/codernaccotax/quizdrill/internal/repository"
)

type snapshotRepository struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewSnapshotRepository creates an in-memory SnapshotRepository.
func NewSnapshotRepository() repository.SnapshotRepository {
	return &snapshotRepository{data: make(map[string][]byte)}
}

func (r *snapshotRepository) Load(_ context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, ok := r.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (r *snapshotRepository) Save(_ context.Context, key string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	r.data[key] = stored
	return nil
}

func (r *snapshotRepository) Clear(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}

type attemptRepository struct {
	mu     sync.Mutex
	nextID int64
	rows   []models.Attempt
}

// NewAttemptRepository creates an in-memory AttemptRepository.
func NewAttemptRepository() repository.AttemptRepository {
	return &attemptRepository{nextID: 1}
}

func (r *attemptRepository) Insert(_ context.Context, a models.Attempt) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = r.nextID
	r.nextID++
	r.rows = append(r.rows, a)
	return a.ID, nil
}

func (r *attemptRepository) List(_ context.Context, filter models.AttemptFilter) ([]models.Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Attempt
	for _, a := range r.rows {
		if filter.QuizID != "" && a.QuizID != filter.QuizID {
			continue
		}
		out = append(out, a)
	}

	asc := filter.OrderDir == "ASC"
	byScore := filter.OrderBy == "score"
	sort.SliceStable(out, func(i, j int) bool {
		var less bool
		if byScore {
			less = out[i].Score < out[j].Score
		} else {
			less = out[i].FinishedAt.Before(out[j].FinishedAt)
		}
		if asc {
			return less
		}
		return !less
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *attemptRepository) Count(_ context.Context, filter models.AttemptFilter) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, a := range r.rows {
		if filter.QuizID != "" && a.QuizID != filter.QuizID {
			continue
		}
		count++
	}
	return count, nil
}
