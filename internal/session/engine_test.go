package session_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codernaccotax/quizdrill/internal/models"
	"github.com/codernaccotax/quizdrill/internal/quizgen"
	"github.com/codernaccotax/quizdrill/internal/repository"
	"github.com/codernaccotax/quizdrill/internal/repository/memory"
	"github.com/codernaccotax/quizdrill/internal/session"
)

func testQuiz(n int) *models.Quiz {
	quiz := &models.Quiz{ID: "test", Title: "Test Quiz"}
	for i := 0; i < n; i++ {
		quiz.Questions = append(quiz.Questions, models.Question{
			ID:          fmt.Sprintf("q%d", i+1),
			Prompt:      fmt.Sprintf("Question %d?", i+1),
			Options:     []string{"one", "two", "three"},
			AnswerIndex: i % 3,
		})
	}
	return quiz
}

type testEnv struct {
	engine    *session.Engine
	snapshots repository.SnapshotRepository
	attempts  repository.AttemptRepository
	quiz      *models.Quiz
}

func newTestEnv(t *testing.T, quiz *models.Quiz, seed int64) *testEnv {
	t.Helper()
	env := &testEnv{
		snapshots: memory.NewSnapshotRepository(),
		attempts:  memory.NewAttemptRepository(),
		quiz:      quiz,
	}
	env.engine = session.New(context.Background(), session.Config{
		Quiz:      quiz,
		Generator: quizgen.NewWithRand(rand.New(rand.NewSource(seed))),
		Snapshots: env.snapshots,
		Attempts:  env.attempts,
	})
	t.Cleanup(env.engine.Close)
	return env
}

// reopen simulates a reload: a second engine against the same storage.
func (env *testEnv) reopen(t *testing.T, seed int64) *session.Engine {
	t.Helper()
	e := session.New(context.Background(), session.Config{
		Quiz:      env.quiz,
		Generator: quizgen.NewWithRand(rand.New(rand.NewSource(seed))),
		Snapshots: env.snapshots,
		Attempts:  env.attempts,
	})
	t.Cleanup(e.Close)
	return e
}

// checkInvariants verifies the score and finished invariants from the view.
func checkInvariants(t *testing.T, v session.View) {
	t.Helper()
	score := 0
	submitted := 0
	for _, q := range v.Questions {
		if q.Submitted {
			submitted++
			if q.Response == q.AnswerIndex {
				score++
			}
		}
	}
	assert.Equal(t, score, v.Score, "score invariant")
	if submitted == len(v.Questions) {
		assert.True(t, v.Finished, "finished invariant: all submitted")
	}
}

func TestSelectAndSubmit_CorrectAnswer(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testQuiz(3), 1)
	e := env.engine

	v := e.View()
	q := v.Questions[0]

	require.NoError(t, e.Select(ctx, q.ID, q.AnswerIndex))
	assert.Equal(t, session.Selected, e.QuestionState(q.ID))

	require.NoError(t, e.Submit(ctx, q.ID))
	assert.Equal(t, session.Submitted, e.QuestionState(q.ID))

	v = e.View()
	assert.Equal(t, 1, v.Score)
	checkInvariants(t, v)
}

func TestSelectAndSubmit_WrongAnswer(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testQuiz(3), 1)
	e := env.engine

	q := e.View().Questions[0]
	wrong := (q.AnswerIndex + 1) % len(q.Options)

	require.NoError(t, e.Select(ctx, q.ID, wrong))
	require.NoError(t, e.Submit(ctx, q.ID))

	v := e.View()
	assert.Equal(t, 0, v.Score)
	checkInvariants(t, v)
}

func TestSubmit_WithoutSelectionIsNoOp(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testQuiz(3), 1)
	e := env.engine

	q := e.View().Questions[0]
	require.NoError(t, e.Submit(ctx, q.ID))

	assert.Equal(t, session.Unanswered, e.QuestionState(q.ID))
	assert.Equal(t, 0, e.View().Score)
}

func TestSelect_AfterSubmitIsSilentlyIgnored(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testQuiz(3), 1)
	e := env.engine

	q := e.View().Questions[0]
	require.NoError(t, e.Select(ctx, q.ID, q.AnswerIndex))
	require.NoError(t, e.Submit(ctx, q.ID))

	wrong := (q.AnswerIndex + 1) % len(q.Options)
	require.NoError(t, e.Select(ctx, q.ID, wrong))

	v := e.View()
	for _, qv := range v.Questions {
		if qv.ID == q.ID {
			assert.Equal(t, q.AnswerIndex, qv.Response, "submitted response is immutable")
		}
	}
	assert.Equal(t, 1, v.Score)
}

func TestSubmit_TwiceDoesNotDoubleCount(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testQuiz(3), 1)
	e := env.engine

	q := e.View().Questions[0]
	require.NoError(t, e.Select(ctx, q.ID, q.AnswerIndex))
	require.NoError(t, e.Submit(ctx, q.ID))
	require.NoError(t, e.Submit(ctx, q.ID))

	assert.Equal(t, 1, e.View().Score)
}

func TestSelect_UnknownQuestion(t *testing.T) {
	env := newTestEnv(t, testQuiz(3), 1)
	err := env.engine.Select(context.Background(), "nope", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOT_FOUND")
}

func TestSelect_OptionOutOfRange(t *testing.T) {
	env := newTestEnv(t, testQuiz(3), 1)
	q := env.engine.View().Questions[0]
	err := env.engine.Select(context.Background(), q.ID, 99)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VALIDATION_ERROR")
}

func TestSubmit_AllQuestionsFinishesSession(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testQuiz(4), 1)
	e := env.engine

	for _, q := range e.View().Questions {
		require.NoError(t, e.Select(ctx, q.ID, q.AnswerIndex))
		require.NoError(t, e.Submit(ctx, q.ID))
		checkInvariants(t, e.View())
	}

	v := e.View()
	assert.True(t, v.Finished)
	assert.Equal(t, session.Finished, e.State())
	assert.Equal(t, 4, v.Score)

	// Finishing records exactly one attempt.
	count, err := env.attempts.Count(ctx, models.AttemptFilter{QuizID: "test"})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSubmit_AfterFinishedIsNoOp(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testQuiz(2), 1)
	e := env.engine

	for _, q := range e.View().Questions {
		require.NoError(t, e.Select(ctx, q.ID, q.AnswerIndex))
		require.NoError(t, e.Submit(ctx, q.ID))
	}
	require.True(t, e.View().Finished)

	q := e.View().Questions[0]
	require.NoError(t, e.Select(ctx, q.ID, 0))
	require.NoError(t, e.Submit(ctx, q.ID))
	assert.Equal(t, 2, e.View().Score)
}

func TestResume_RoundTrip(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testQuiz(5), 1)
	e := env.engine

	questions := e.View().Questions
	require.NoError(t, e.Select(ctx, questions[0].ID, questions[0].AnswerIndex))
	require.NoError(t, e.Submit(ctx, questions[0].ID))
	require.NoError(t, e.Select(ctx, questions[1].ID, 0))

	// A different generator seed proves the state comes from the snapshot,
	// not a fresh shuffle.
	resumed := env.reopen(t, 99)
	rv := resumed.View()

	require.Len(t, rv.Questions, 5)
	for i, q := range rv.Questions {
		assert.Equal(t, questions[i].ID, q.ID, "question order preserved")
		assert.Equal(t, questions[i].Options, q.Options, "option order preserved")
	}
	assert.Equal(t, e.View().Score, rv.Score)
	assert.Equal(t, session.Submitted, resumed.QuestionState(questions[0].ID))
	assert.Equal(t, session.Selected, resumed.QuestionState(questions[1].ID))
	assert.False(t, rv.ReviewMode, "review mode never survives a reload")
}

func TestResume_CorruptSnapshotFallsBack(t *testing.T) {
	ctx := context.Background()
	snapshots := memory.NewSnapshotRepository()
	require.NoError(t, snapshots.Save(ctx, session.StorageKeyPrefix+"test", []byte("{not valid")))

	e := session.New(ctx, session.Config{
		Quiz:      testQuiz(3),
		Generator: quizgen.NewWithRand(rand.New(rand.NewSource(2))),
		Snapshots: snapshots,
		Attempts:  memory.NewAttemptRepository(),
	})
	t.Cleanup(e.Close)

	v := e.View()
	assert.Len(t, v.Questions, 3)
	assert.Equal(t, 0, v.Score)
	assert.False(t, v.Finished)
}

func TestResume_ShapeMismatchFallsBack(t *testing.T) {
	ctx := context.Background()
	snapshots := memory.NewSnapshotRepository()
	// Valid JSON, wrong shape: a response pointing at a question that does
	// not exist in the stored list.
	stored := `{"quizQuestions":[{"id":"q1","question":"?","options":["a","b"],"answerIndex":0}],"responses":{"ghost":1},"submitted":{},"score":0,"isFinished":false}`
	require.NoError(t, snapshots.Save(ctx, session.StorageKeyPrefix+"test", []byte(stored)))

	e := session.New(ctx, session.Config{
		Quiz:      testQuiz(3),
		Generator: quizgen.NewWithRand(rand.New(rand.NewSource(2))),
		Snapshots: snapshots,
		Attempts:  memory.NewAttemptRepository(),
	})
	t.Cleanup(e.Close)

	assert.Len(t, e.View().Questions, 3)
}

func TestRestart_ResetsEverything(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testQuiz(5), 1)
	e := env.engine

	questions := e.View().Questions
	require.NoError(t, e.Select(ctx, questions[0].ID, questions[0].AnswerIndex))
	require.NoError(t, e.Submit(ctx, questions[0].ID))
	e.SetStudentName(ctx, "Riya Sen")

	e.Restart(ctx)

	v := e.View()
	assert.Equal(t, 0, v.Score)
	assert.False(t, v.Finished)
	assert.False(t, v.ReviewMode)
	for _, q := range v.Questions {
		assert.Equal(t, session.Unanswered, e.QuestionState(q.ID))
	}
	assert.Equal(t, "Riya Sen", v.StudentName, "name survives restart")

	// A reload after restart resumes the fresh session, not the old one.
	resumed := env.reopen(t, 42)
	assert.Equal(t, 0, resumed.View().Score)
}

func TestApplySettings_RegeneratesWithCount(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testQuiz(10), 1)
	e := env.engine

	require.NoError(t, e.ApplySettings(ctx, models.DifficultyAll, 4))

	v := e.View()
	assert.Len(t, v.Questions, 4)
	assert.Equal(t, 0, v.Score)
	assert.Equal(t, 4, v.QuestionCount)
}

func TestApplySettings_Validation(t *testing.T) {
	env := newTestEnv(t, testQuiz(3), 1)

	err := env.engine.ApplySettings(context.Background(), "impossible", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VALIDATION_ERROR")

	err = env.engine.ApplySettings(context.Background(), models.DifficultyAll, 0)
	require.Error(t, err)
}

func TestEmptyPool_DegeneratesGracefully(t *testing.T) {
	env := newTestEnv(t, &models.Quiz{ID: "test", Title: "Empty"}, 1)

	v := env.engine.View()
	assert.Empty(t, v.Questions)
	assert.False(t, v.Finished)
	assert.Equal(t, 0, v.Stats.Total)
}

func TestAutoAdvance_OnSubmit(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testQuiz(3), 1)
	e := env.engine

	q := e.View().Questions[0]
	require.NoError(t, e.Select(ctx, q.ID, q.AnswerIndex))
	require.NoError(t, e.Submit(ctx, q.ID))

	assert.Equal(t, 1, e.View().ActiveIndex)
}
