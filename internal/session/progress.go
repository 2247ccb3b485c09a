package session

import (
	"fmt"

	"github.com/codernaccotax/quizdrill/internal/models"
)

// Stats summarizes progress through the session.
type Stats struct {
	Total           int
	Answered        int
	Correct         int
	Wrong           int
	NotAttempted    int
	ProgressPercent int
	AccuracyPercent int
	SuggestedNext   string
}

func (e *Engine) statsLocked() Stats {
	s := Stats{Total: len(e.questions)}
	for _, q := range e.questions {
		if !e.submitted[q.ID] {
			continue
		}
		if e.responses[q.ID] == q.AnswerIndex {
			s.Correct++
		} else {
			s.Wrong++
		}
	}
	s.Answered = s.Correct + s.Wrong
	s.NotAttempted = s.Total - s.Answered
	if s.Total > 0 {
		s.ProgressPercent = roundPercent(s.Answered, s.Total)
	}
	if s.Answered > 0 {
		s.AccuracyPercent = roundPercent(s.Correct, s.Answered)
	}
	s.SuggestedNext = suggestNext(s.AccuracyPercent, e.difficulty)
	return s
}

// Progress returns the current stats.
func (e *Engine) Progress() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.statsLocked()
}

func roundPercent(part, whole int) int {
	return int(float64(part)/float64(whole)*100 + 0.5)
}

// suggestNext picks the difficulty to try after this run.
func suggestNext(accuracy int, difficulty string) string {
	if accuracy >= 80 && difficulty != models.DifficultyAdvanced {
		return "Advanced"
	}
	if accuracy >= 50 {
		return "Moderate"
	}
	return "Beginner"
}

// FormatSeconds renders a duration as mm:ss.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
