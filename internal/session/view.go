package session

import "github.com/codernaccotax/quizdrill/internal/models"

// QuestionView is a question decorated for rendering. Number is the 1-based
// position in the full question list, so review mode keeps the original
// numbering.
type QuestionView struct {
	models.Question
	QuizID    string
	Number    int
	State     QuestionState
	Response  int // -1 when nothing selected
	Selected  bool
	Submitted bool
	Correct   bool // submitted and answered correctly
	Active    bool
}

// View is a consistent read-side projection of the whole session.
type View struct {
	QuizID        string
	Title         string
	Questions     []QuestionView
	Visible       []QuestionView
	Score         int
	Finished      bool
	ReviewMode    bool
	ActiveIndex   int
	StudentName   string
	Difficulty    string
	QuestionCount int
	PoolSize      int
	Timer         TimerView
	Stats         Stats
}

// View snapshots the session for rendering.
func (e *Engine) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()

	questions := make([]QuestionView, 0, len(e.questions))
	for i, q := range e.questions {
		qv := QuestionView{
			Question: q,
			QuizID:   e.quiz.ID,
			Number:   i + 1,
			State:    e.questionStateLocked(q.ID),
			Response: -1,
			Active:   i == e.active,
		}
		if idx, ok := e.responses[q.ID]; ok {
			qv.Response = idx
			qv.Selected = true
		}
		if qv.State == Submitted {
			qv.Submitted = true
			qv.Correct = qv.Response == q.AnswerIndex
		}
		questions = append(questions, qv)
	}

	visible := questions
	if e.reviewMode {
		visible = make([]QuestionView, 0)
		for _, qv := range questions {
			if qv.Submitted && !qv.Correct {
				visible = append(visible, qv)
			}
		}
	}

	return View{
		QuizID:        e.quiz.ID,
		Title:         e.quiz.Title,
		Questions:     questions,
		Visible:       visible,
		Score:         e.score,
		Finished:      e.finished,
		ReviewMode:    e.reviewMode,
		ActiveIndex:   e.active,
		StudentName:   e.studentName,
		Difficulty:    e.difficulty,
		QuestionCount: e.questionCount,
		PoolSize:      len(e.quiz.Questions),
		Timer:         e.timerViewLocked(),
		Stats:         e.statsLocked(),
	}
}
