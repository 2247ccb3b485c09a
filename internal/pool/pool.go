// Package pool loads the static question pools the engine draws from.
// Pools are build-time inputs: once loaded they are never mutated.
package pool

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/codernaccotax/quizdrill/internal/logger"
	"github.com/codernaccotax/quizdrill/internal/models"
)

// Library holds every quiz definition found at startup, keyed by quiz ID.
type Library struct {
	quizzes map[string]*models.Quiz
	order   []string
}

// LoadDir reads every *.json quiz definition under dir.
func LoadDir(dir string) (*Library, error) {
	log := logger.Default().WithPrefix("pool")

	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	lib := &Library{quizzes: make(map[string]*models.Quiz)}
	for _, path := range matches {
		quiz, err := loadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load quiz %s: %w", path, err)
		}
		if _, dup := lib.quizzes[quiz.ID]; dup {
			return nil, fmt.Errorf("load quiz %s: duplicate quiz id %q", path, quiz.ID)
		}
		lib.quizzes[quiz.ID] = quiz
		lib.order = append(lib.order, quiz.ID)
		log.Info("loaded quiz %q with %d questions", quiz.ID, len(quiz.Questions))
	}

	log.Info("quiz library ready: %d quizzes", len(lib.order))
	return lib, nil
}

func loadFile(path string) (*models.Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var quiz models.Quiz
	if err := json.Unmarshal(data, &quiz); err != nil {
		return nil, err
	}
	if err := Validate(&quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// Validate checks a quiz definition at the load boundary.
// An empty question list is valid: the engine renders a neutral
// "nothing to practice" state for it.
func Validate(quiz *models.Quiz) error {
	if quiz.ID == "" {
		return fmt.Errorf("quiz id is required")
	}
	if quiz.Title == "" {
		return fmt.Errorf("quiz title is required")
	}

	seen := make(map[string]bool, len(quiz.Questions))
	for i, q := range quiz.Questions {
		if q.ID == "" {
			return fmt.Errorf("question %d: id is required", i)
		}
		if seen[q.ID] {
			return fmt.Errorf("question %d: duplicate question id %q", i, q.ID)
		}
		seen[q.ID] = true
		if q.Prompt == "" {
			return fmt.Errorf("question %q: prompt is required", q.ID)
		}
		if len(q.Options) == 0 {
			return fmt.Errorf("question %q: at least one option is required", q.ID)
		}
		if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
			return fmt.Errorf("question %q: answerIndex %d out of range [0,%d)", q.ID, q.AnswerIndex, len(q.Options))
		}
	}
	return nil
}

// Get returns the quiz with the given ID, or nil.
func (l *Library) Get(id string) *models.Quiz {
	return l.quizzes[id]
}

// List returns all quizzes in load order.
func (l *Library) List() []*models.Quiz {
	out := make([]*models.Quiz, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.quizzes[id])
	}
	return out
}
