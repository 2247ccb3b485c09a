package models

import "time"

// Difficulty levels for question filtering. "all" disables the filter.
const (
	DifficultyAll      = "all"
	DifficultyBeginner = "beginner"
	DifficultyModerate = "moderate"
	DifficultyAdvanced = "advanced"
)

// Timer modes for a running session.
const (
	TimerOff       = "off"
	TimerStopwatch = "stopwatch"
	TimerCountdown = "countdown"
)

// Question is a single multiple-choice question as delivered to a session.
// Options carry the shuffled order; AnswerIndex tracks the correct option
// within that order.
type Question struct {
	ID          string   `json:"id"`
	Topic       string   `json:"topic,omitempty"`
	Level       string   `json:"level,omitempty"`
	Prompt      string   `json:"question"`
	Code        string   `json:"code,omitempty"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
	Explanation string   `json:"explanation,omitempty"`
}

// Quiz is an immutable question pool loaded from a definition file.
type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Snapshot is the persisted projection of a session. Review mode is
// deliberately absent: every reload starts outside review.
type Snapshot struct {
	Questions        []Question      `json:"quizQuestions"`
	Responses        map[string]int  `json:"responses"`
	Submitted        map[string]bool `json:"submitted"`
	Score            int             `json:"score"`
	IsFinished       bool            `json:"isFinished"`
	Difficulty       string          `json:"difficulty,omitempty"`
	QuestionCount    int             `json:"questionCount,omitempty"`
	StudentName      string          `json:"studentName,omitempty"`
	TimerMode        string          `json:"timerMode,omitempty"`
	ElapsedSeconds   int             `json:"elapsedSeconds,omitempty"`
	RemainingSeconds int             `json:"remainingSeconds,omitempty"`
}

// Attempt is one finished session recorded for the history page.
type Attempt struct {
	ID              int64
	QuizID          string
	QuizTitle       string
	Score           int
	Total           int
	AccuracyPercent int
	Difficulty      string
	DurationSeconds int
	FinishedAt      time.Time
}

// AttemptFilter narrows and orders attempt history queries.
type AttemptFilter struct {
	QuizID   string
	OrderBy  string // finished_at | score
	OrderDir string // ASC | DESC
	Limit    int
	Offset   int
}
