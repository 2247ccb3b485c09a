package session

import "github.com/codernaccotax/quizdrill/internal/models"

// EnterReview switches the rendered list to the submitted-and-incorrect
// subset. Entering with an empty subset is permitted and renders nothing.
// The flag is never persisted.
func (e *Engine) EnterReview() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reviewMode = true
}

// ExitReview returns to the full question list.
func (e *Engine) ExitReview() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reviewMode = false
}

// WrongQuestions derives the review subset: submitted questions whose
// response is not the correct option.
func (e *Engine) WrongQuestions() []models.Question {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.wrongQuestionsLocked()
}

func (e *Engine) wrongQuestionsLocked() []models.Question {
	var wrong []models.Question
	for _, q := range e.questions {
		if e.submitted[q.ID] && e.responses[q.ID] != q.AnswerIndex {
			wrong = append(wrong, q)
		}
	}
	return wrong
}
