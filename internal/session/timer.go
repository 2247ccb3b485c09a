package session

import (
	"context"
	"time"

	"github.com/codernaccotax/quizdrill/internal/errors"
	"github.com/codernaccotax/quizdrill/internal/models"
)

// timerTask is the session-owned ticking goroutine. It is cancelled through
// its context on restart, settings change, finish, and engine shutdown, so a
// stale task can never act on a replaced session.
type timerTask struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// SetTimerMode switches between off, stopwatch and countdown. Switching to
// off resets both counters, matching the session ribbon behavior.
func (e *Engine) SetTimerMode(ctx context.Context, mode string) error {
	switch mode {
	case models.TimerOff, models.TimerStopwatch, models.TimerCountdown:
	default:
		return errors.NewValidationError("timer mode", "must be one of off, stopwatch, countdown")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopTimerLocked()
	e.timerMode = mode
	if mode == models.TimerOff {
		e.elapsedSeconds = 0
		e.remainingSeconds = e.countdownSeconds
	} else if !e.finished {
		e.startTimerLocked()
	}
	e.save(ctx)
	return nil
}

// startTimerLocked launches the tick loop. Caller holds the mutex.
func (e *Engine) startTimerLocked() {
	if e.timer != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	task := &timerTask{cancel: cancel, done: make(chan struct{})}
	e.timer = task

	go func() {
		defer close(task.done)
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !e.tick(ctx) {
					return
				}
			}
		}
	}()
}

// stopTimerLocked cancels the running task, if any. Caller holds the mutex.
// The task goroutine may be blocked on the same mutex inside tick, so this
// only signals cancellation and does not wait.
func (e *Engine) stopTimerLocked() {
	if e.timer == nil {
		return
	}
	e.timer.cancel()
	e.timer = nil
}

// tick advances the counters by one second. Returns false when the loop
// should stop. A countdown reaching zero locks the session.
func (e *Engine) tick(ctx context.Context) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if ctx.Err() != nil || e.finished || e.timerMode == models.TimerOff {
		return false
	}

	e.elapsedSeconds++
	if e.timerMode == models.TimerCountdown {
		e.remainingSeconds--
		if e.remainingSeconds <= 0 {
			e.remainingSeconds = 0
			e.log.Info("countdown expired, locking session")
			e.finishLocked(context.Background())
			e.save(context.Background())
			return false
		}
	}
	e.save(context.Background())
	return true
}

// TimerView is the rendered timer state.
type TimerView struct {
	Mode             string
	Display          string
	ElapsedSeconds   int
	RemainingSeconds int
}

func (e *Engine) timerViewLocked() TimerView {
	v := TimerView{
		Mode:             e.timerMode,
		ElapsedSeconds:   e.elapsedSeconds,
		RemainingSeconds: e.remainingSeconds,
	}
	switch e.timerMode {
	case models.TimerStopwatch:
		v.Display = FormatSeconds(e.elapsedSeconds)
	case models.TimerCountdown:
		v.Display = FormatSeconds(e.remainingSeconds)
	default:
		v.Display = "--:--"
	}
	return v
}
