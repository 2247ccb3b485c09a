// Package quizgen produces the randomized, answer-consistent question set a
// session runs against.
package quizgen

import (
	"math/rand"
	"strings"
	"time"

	"github.com/codernaccotax/quizdrill/internal/models"
)

// Generator shuffles question pools. The random source is injectable so tests
// can fix the permutation.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator seeded from the clock.
func New() *Generator {
	return NewWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand creates a Generator using the given random source.
func NewWithRand(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Prepare builds a session question set from the pool:
// optional difficulty filter, question-order shuffle, per-question option
// shuffle with answer remapping, then truncation to count. Truncation happens
// after the question shuffle so any subset is a fair random sample.
//
// A difficulty that matches no question falls back to the whole pool.
// Count <= 0 or count >= pool size returns the full shuffled pool.
func (g *Generator) Prepare(questions []models.Question, difficulty string, count int) []models.Question {
	if len(questions) == 0 {
		return []models.Question{}
	}

	selected := questions
	if difficulty != "" && difficulty != models.DifficultyAll {
		d := strings.ToLower(difficulty)
		filtered := make([]models.Question, 0, len(questions))
		for _, q := range questions {
			if strings.ToLower(q.Level) == d {
				filtered = append(filtered, q)
			}
		}
		if len(filtered) > 0 {
			selected = filtered
		}
	}

	shuffled := g.shuffle(selected)
	if count > 0 && count < len(shuffled) {
		shuffled = shuffled[:count]
	}

	out := make([]models.Question, 0, len(shuffled))
	for _, q := range shuffled {
		out = append(out, g.shuffleOptions(q))
	}
	return out
}

// shuffle returns a Fisher-Yates shuffled copy, leaving the pool untouched.
func (g *Generator) shuffle(questions []models.Question) []models.Question {
	shuffled := make([]models.Question, len(questions))
	copy(shuffled, questions)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

type taggedOption struct {
	text          string
	originalIndex int
}

// shuffleOptions randomizes the option order of a single question.
// Each option is tagged with its pre-shuffle index first; the new answer
// index is wherever the originally-correct tag landed, so position moves
// but meaning never does.
func (g *Generator) shuffleOptions(q models.Question) models.Question {
	wrapped := make([]taggedOption, len(q.Options))
	for i, opt := range q.Options {
		wrapped[i] = taggedOption{text: opt, originalIndex: i}
	}

	for i := len(wrapped) - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		wrapped[i], wrapped[j] = wrapped[j], wrapped[i]
	}

	options := make([]string, len(wrapped))
	answerIndex := q.AnswerIndex
	for i, w := range wrapped {
		options[i] = w.text
		if w.originalIndex == q.AnswerIndex {
			answerIndex = i
		}
	}

	q.Options = options
	q.AnswerIndex = answerIndex
	return q
}
