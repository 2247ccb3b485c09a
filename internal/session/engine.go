// Package session holds the authoritative in-memory state of one quiz attempt
// and the transition rules that mutate it. Every mutation synchronously
// snapshots the session through the injected persistence capability.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/codernaccotax/quizdrill/internal/errors"
	"github.com/codernaccotax/quizdrill/internal/logger"
	"github.com/codernaccotax/quizdrill/internal/models"
	"github.com/codernaccotax/quizdrill/internal/quizgen"
	"github.com/codernaccotax/quizdrill/internal/repository"
)

// StorageKeyPrefix namespaces snapshot keys per quiz.
const StorageKeyPrefix = "quizEngine_"

// Config wires an Engine.
type Config struct {
	Quiz                 *models.Quiz
	Generator            *quizgen.Generator
	Snapshots            repository.SnapshotRepository
	Attempts             repository.AttemptRepository
	DefaultQuestionCount int
	CountdownSeconds     int
}

// Engine is the session store plus submission state machine for one quiz.
// All exported methods are safe for concurrent use; there is one logical
// writer per quiz, serialized by the mutex.
type Engine struct {
	mu  sync.Mutex
	log *logger.Logger

	quiz      *models.Quiz
	gen       *quizgen.Generator
	snapshots repository.SnapshotRepository
	attempts  repository.AttemptRepository
	key       string

	countdownSeconds int

	questions   []models.Question
	responses   map[string]int
	submitted   map[string]bool
	score       int
	finished    bool
	reviewMode  bool
	active      int
	studentName string

	difficulty    string
	questionCount int

	timerMode        string
	elapsedSeconds   int
	remainingSeconds int
	timer            *timerTask

	startedAt time.Time
	recorded  bool
}

// New builds an Engine for the quiz, resuming from a stored snapshot when one
// deserializes cleanly and generating a fresh session otherwise. A corrupt or
// missing snapshot never fails: it degrades to a fresh generation.
func New(ctx context.Context, cfg Config) *Engine {
	gen := cfg.Generator
	if gen == nil {
		gen = quizgen.New()
	}
	defaultCount := cfg.DefaultQuestionCount
	if defaultCount <= 0 {
		defaultCount = 25
	}
	countdown := cfg.CountdownSeconds
	if countdown <= 0 {
		countdown = 30 * 60
	}

	e := &Engine{
		log:              logger.Default().WithPrefix("session").WithField("quiz_id", cfg.Quiz.ID),
		quiz:             cfg.Quiz,
		gen:              gen,
		snapshots:        cfg.Snapshots,
		attempts:         cfg.Attempts,
		key:              StorageKeyPrefix + cfg.Quiz.ID,
		countdownSeconds: countdown,
		difficulty:       models.DifficultyAll,
		questionCount:    min(defaultCount, max(len(cfg.Quiz.Questions), 1)),
		timerMode:        models.TimerOff,
	}

	if e.tryRestore(ctx) {
		e.log.Info("session resumed from snapshot: %d questions, score=%d", len(e.questions), e.score)
	} else {
		e.regenerate(ctx)
		e.log.Info("fresh session generated: %d questions", len(e.questions))
	}
	return e
}

// tryRestore loads the persisted snapshot. Any failure is a cache miss.
func (e *Engine) tryRestore(ctx context.Context) bool {
	data, err := e.snapshots.Load(ctx, e.key)
	if err != nil {
		e.log.Warn("snapshot load failed, starting fresh: %v", err)
		return false
	}
	if data == nil {
		return false
	}

	snap, err := decodeSnapshot(data)
	if err != nil {
		e.log.Warn("discarding unusable snapshot: %v", err)
		return false
	}

	e.questions = snap.Questions
	e.responses = snap.Responses
	e.submitted = snap.Submitted
	e.score = snap.Score
	e.finished = snap.IsFinished
	if snap.Difficulty != "" {
		e.difficulty = snap.Difficulty
	}
	if snap.QuestionCount > 0 {
		e.questionCount = snap.QuestionCount
	}
	e.studentName = snap.StudentName
	if snap.TimerMode != "" {
		e.timerMode = snap.TimerMode
	}
	e.elapsedSeconds = snap.ElapsedSeconds
	e.remainingSeconds = snap.RemainingSeconds
	if e.remainingSeconds <= 0 {
		e.remainingSeconds = e.countdownSeconds
	}
	// Review mode is never persisted: every resume starts outside review.
	e.reviewMode = false
	e.active = 0
	e.startedAt = time.Now()
	e.recorded = e.finished

	if e.timerMode != models.TimerOff && !e.finished {
		e.startTimerLocked()
	}
	return true
}

// regenerate replaces the session wholesale with a fresh shuffle.
// Student name and settings survive; everything else resets.
func (e *Engine) regenerate(ctx context.Context) {
	e.questions = e.gen.Prepare(e.quiz.Questions, e.difficulty, e.questionCount)
	e.responses = make(map[string]int)
	e.submitted = make(map[string]bool)
	e.score = 0
	e.finished = false
	e.reviewMode = false
	e.active = 0
	e.elapsedSeconds = 0
	e.remainingSeconds = e.countdownSeconds
	e.startedAt = time.Now()
	e.recorded = false
	e.save(ctx)
}

// Select records an answer choice. Silently ignored when the question is
// already submitted or the session is finished.
func (e *Engine) Select(ctx context.Context, questionID string, optionIndex int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx, q := e.findQuestion(questionID)
	if q == nil {
		return errors.NewNotFoundError("question", questionID)
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return errors.NewValidationError("option", "index out of range")
	}
	if !canSelect(e.questionStateLocked(questionID), e.sessionStateLocked()) {
		logger.FromContext(ctx).Debug("select ignored for submitted question %s", questionID)
		return nil
	}

	e.responses[questionID] = optionIndex
	e.active = idx
	e.save(ctx)
	return nil
}

// Submit locks in the current selection and grades it. A submit without a
// selection, on an already submitted question, or on a finished session is a
// no-op. Submitting the final question finishes the session.
func (e *Engine) Submit(ctx context.Context, questionID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx, q := e.findQuestion(questionID)
	if q == nil {
		return errors.NewNotFoundError("question", questionID)
	}
	if !canSubmit(e.questionStateLocked(questionID), e.sessionStateLocked()) {
		logger.FromContext(ctx).Debug("submit ignored for question %s", questionID)
		return nil
	}

	if e.responses[questionID] == q.AnswerIndex {
		e.score++
	}
	e.submitted[questionID] = true

	if len(e.submitted) == len(e.questions) {
		e.finishLocked(ctx)
	} else if idx+1 < len(e.questions) {
		// Auto-advance to the next question.
		e.active = idx + 1
	}

	e.save(ctx)
	return nil
}

// Restart discards the session and its snapshot and regenerates a fresh
// shuffle. Settings and student name are kept; the timer returns to off.
func (e *Engine) Restart(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopTimerLocked()
	e.timerMode = models.TimerOff

	if err := e.snapshots.Clear(ctx, e.key); err != nil {
		e.log.Warn("failed to clear snapshot on restart: %v", err)
	}
	e.regenerate(ctx)
	logger.FromContext(ctx).Info("session restarted: quiz_id=%s", e.quiz.ID)
}

// ApplySettings changes difficulty and question count, then regenerates.
// Unlike Restart the timer mode is kept (its counters reset).
func (e *Engine) ApplySettings(ctx context.Context, difficulty string, count int) error {
	switch difficulty {
	case models.DifficultyAll, models.DifficultyBeginner, models.DifficultyModerate, models.DifficultyAdvanced:
	default:
		return errors.NewValidationError("difficulty", "must be one of all, beginner, moderate, advanced")
	}
	if count <= 0 {
		return errors.NewValidationError("count", "must be positive")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopTimerLocked()
	e.difficulty = difficulty
	e.questionCount = count
	e.regenerate(ctx)
	if e.timerMode != models.TimerOff {
		e.startTimerLocked()
	}
	logger.FromContext(ctx).Info("settings applied: difficulty=%s count=%d", difficulty, count)
	return nil
}

// SetStudentName stores the certificate name alongside the session.
func (e *Engine) SetStudentName(ctx context.Context, name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.studentName = name
	e.save(ctx)
}

// SetActive moves the navigation cursor. Not persisted.
func (e *Engine) SetActive(index int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if index >= 0 && index < len(e.questions) {
		e.active = index
	}
}

// Close cancels the timer task. The engine must not be used afterwards.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopTimerLocked()
}

// finishLocked moves the session to Finished and records the attempt.
func (e *Engine) finishLocked(ctx context.Context) {
	if e.finished {
		return
	}
	e.finished = true
	e.stopTimerLocked()
	e.recordAttemptLocked(ctx)
}

func (e *Engine) recordAttemptLocked(ctx context.Context) {
	if e.recorded || e.attempts == nil || len(e.questions) == 0 {
		return
	}
	e.recorded = true

	answered := len(e.submitted)
	accuracy := 0
	if answered > 0 {
		accuracy = int(float64(e.score)/float64(answered)*100 + 0.5)
	}

	duration := int(time.Since(e.startedAt).Seconds())
	switch e.timerMode {
	case models.TimerStopwatch:
		duration = e.elapsedSeconds
	case models.TimerCountdown:
		duration = e.countdownSeconds - e.remainingSeconds
	}

	attempt := models.Attempt{
		QuizID:          e.quiz.ID,
		QuizTitle:       e.quiz.Title,
		Score:           e.score,
		Total:           len(e.questions),
		AccuracyPercent: accuracy,
		Difficulty:      e.difficulty,
		DurationSeconds: duration,
		FinishedAt:      time.Now(),
	}
	if _, err := e.attempts.Insert(ctx, attempt); err != nil {
		e.log.Warn("failed to record attempt: %v", err)
	}
}

// save writes the snapshot, overwriting any prior value. A failed write is
// logged and otherwise ignored: persistence problems never break the session.
func (e *Engine) save(ctx context.Context) {
	if len(e.questions) == 0 {
		return
	}
	snap := &models.Snapshot{
		Questions:        e.questions,
		Responses:        e.responses,
		Submitted:        e.submitted,
		Score:            e.score,
		IsFinished:       e.finished,
		Difficulty:       e.difficulty,
		QuestionCount:    e.questionCount,
		StudentName:      e.studentName,
		TimerMode:        e.timerMode,
		ElapsedSeconds:   e.elapsedSeconds,
		RemainingSeconds: e.remainingSeconds,
	}
	data, err := encodeSnapshot(snap)
	if err != nil {
		e.log.Warn("failed to encode snapshot: %v", err)
		return
	}
	if err := e.snapshots.Save(ctx, e.key, data); err != nil {
		e.log.Warn("failed to save snapshot: %v", err)
	}
}

func (e *Engine) findQuestion(id string) (int, *models.Question) {
	for i := range e.questions {
		if e.questions[i].ID == id {
			return i, &e.questions[i]
		}
	}
	return -1, nil
}

func (e *Engine) questionStateLocked(id string) QuestionState {
	if e.submitted[id] {
		return Submitted
	}
	if _, ok := e.responses[id]; ok {
		return Selected
	}
	return Unanswered
}

func (e *Engine) sessionStateLocked() SessionState {
	if e.finished {
		return Finished
	}
	return Active
}

// QuestionState reports the per-question state machine position.
func (e *Engine) QuestionState(id string) QuestionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.questionStateLocked(id)
}

// State reports the session state machine position.
func (e *Engine) State() SessionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessionStateLocked()
}
