package session

import (
	"context"
	"sync"

	"github.com/codernaccotax/quizdrill/internal/pool"
	"github.com/codernaccotax/quizdrill/internal/quizgen"
	"github.com/codernaccotax/quizdrill/internal/repository"
)

// Manager lazily creates one Engine per quiz and hands back the same instance
// afterwards, so each quiz has exactly one logical writer.
type Manager struct {
	mu      sync.Mutex
	engines map[string]*Engine

	library   *pool.Library
	gen       *quizgen.Generator
	snapshots repository.SnapshotRepository
	attempts  repository.AttemptRepository

	defaultCount     int
	countdownSeconds int
}

// NewManager creates a Manager over the quiz library.
func NewManager(library *pool.Library, snapshots repository.SnapshotRepository, attempts repository.AttemptRepository, defaultCount, countdownSeconds int) *Manager {
	return &Manager{
		engines:          make(map[string]*Engine),
		library:          library,
		gen:              quizgen.New(),
		snapshots:        snapshots,
		attempts:         attempts,
		defaultCount:     defaultCount,
		countdownSeconds: countdownSeconds,
	}
}

// Engine returns the engine for the quiz, creating it on first access.
// Returns nil when no such quiz exists.
func (m *Manager) Engine(ctx context.Context, quizID string) *Engine {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.engines[quizID]; ok {
		return e
	}
	quiz := m.library.Get(quizID)
	if quiz == nil {
		return nil
	}
	e := New(ctx, Config{
		Quiz:                 quiz,
		Generator:            m.gen,
		Snapshots:            m.snapshots,
		Attempts:             m.attempts,
		DefaultQuestionCount: m.defaultCount,
		CountdownSeconds:     m.countdownSeconds,
	})
	m.engines[quizID] = e
	return e
}

// Close cancels every engine's timer task.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.engines {
		e.Close()
	}
}
