package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/codernaccotax/quizdrill/internal/certificate"
	"github.com/codernaccotax/quizdrill/internal/errors"
	"github.com/codernaccotax/quizdrill/internal/logger"
	"github.com/codernaccotax/quizdrill/internal/session"
)

// engine resolves the session engine for the quiz in the URL, or nil.
func (s *Server) engine(r *http.Request) *session.Engine {
	return s.Sessions.Engine(r.Context(), chi.URLParam(r, "id"))
}

func (s *Server) quizURL(r *http.Request) string {
	return "/quiz/" + chi.URLParam(r, "id")
}

func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	eng := s.engine(r)
	if eng == nil {
		handleError(w, r, errors.NewNotFoundError("quiz", chi.URLParam(r, "id")))
		return
	}

	view := eng.View()
	log.Debug("rendering quiz %s: %d questions, review=%v", view.QuizID, len(view.Questions), view.ReviewMode)

	s.render(w, r, "pages/quiz.html", pageData{
		"view":      view,
		"certError": r.URL.Query().Get("cert_error") != "",
	})
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	eng := s.engine(r)
	if eng == nil {
		handleError(w, r, errors.NewNotFoundError("quiz", chi.URLParam(r, "id")))
		return
	}

	questionID := r.FormValue("question_id")
	optionIndex, err := strconv.Atoi(r.FormValue("option"))
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid option index"))
		return
	}

	if err := eng.Select(r.Context(), questionID, optionIndex); err != nil {
		handleError(w, r, err)
		return
	}
	http.Redirect(w, r, s.quizURL(r)+anchor(questionID), http.StatusSeeOther)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	eng := s.engine(r)
	if eng == nil {
		handleError(w, r, errors.NewNotFoundError("quiz", chi.URLParam(r, "id")))
		return
	}

	questionID := r.FormValue("question_id")
	if err := eng.Submit(r.Context(), questionID); err != nil {
		handleError(w, r, err)
		return
	}

	// Land on the auto-advanced question.
	view := eng.View()
	target := s.quizURL(r)
	if view.ActiveIndex >= 0 && view.ActiveIndex < len(view.Questions) {
		target += anchor(view.Questions[view.ActiveIndex].ID)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	eng := s.engine(r)
	if eng == nil {
		handleError(w, r, errors.NewNotFoundError("quiz", chi.URLParam(r, "id")))
		return
	}
	eng.Restart(r.Context())
	http.Redirect(w, r, s.quizURL(r), http.StatusSeeOther)
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	eng := s.engine(r)
	if eng == nil {
		handleError(w, r, errors.NewNotFoundError("quiz", chi.URLParam(r, "id")))
		return
	}

	difficulty := r.FormValue("difficulty")
	count, err := strconv.Atoi(r.FormValue("count"))
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid question count"))
		return
	}

	if err := eng.ApplySettings(r.Context(), difficulty, count); err != nil {
		handleError(w, r, err)
		return
	}
	http.Redirect(w, r, s.quizURL(r), http.StatusSeeOther)
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	eng := s.engine(r)
	if eng == nil {
		handleError(w, r, errors.NewNotFoundError("quiz", chi.URLParam(r, "id")))
		return
	}

	if r.FormValue("action") == "exit" {
		eng.ExitReview()
	} else {
		eng.EnterReview()
	}
	http.Redirect(w, r, s.quizURL(r), http.StatusSeeOther)
}

func (s *Server) handleTimer(w http.ResponseWriter, r *http.Request) {
	eng := s.engine(r)
	if eng == nil {
		handleError(w, r, errors.NewNotFoundError("quiz", chi.URLParam(r, "id")))
		return
	}

	if err := eng.SetTimerMode(r.Context(), r.FormValue("mode")); err != nil {
		handleError(w, r, err)
		return
	}
	http.Redirect(w, r, s.quizURL(r), http.StatusSeeOther)
}

func (s *Server) handleName(w http.ResponseWriter, r *http.Request) {
	eng := s.engine(r)
	if eng == nil {
		handleError(w, r, errors.NewNotFoundError("quiz", chi.URLParam(r, "id")))
		return
	}

	eng.SetStudentName(r.Context(), r.FormValue("student_name"))
	http.Redirect(w, r, s.quizURL(r), http.StatusSeeOther)
}

// handleCertificate renders the printable completion document in the tab the
// form opened. A blank name redirects back with a visible validation message
// and produces nothing.
func (s *Server) handleCertificate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	eng := s.engine(r)
	if eng == nil {
		handleError(w, r, errors.NewNotFoundError("quiz", chi.URLParam(r, "id")))
		return
	}

	view := eng.View()
	if !view.Finished {
		log.Warn("certificate requested for unfinished session: quiz_id=%s", view.QuizID)
		http.Redirect(w, r, s.quizURL(r), http.StatusSeeOther)
		return
	}

	name := view.StudentName
	if q := r.URL.Query().Get("student_name"); q != "" {
		name = q
	}

	doc, err := certificate.Generate(certificate.Data{
		StudentName: name,
		QuizTitle:   view.Title,
		Score:       view.Score,
		Total:       len(view.Questions),
	})
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok && appErr.Code == errors.ErrCodeValidation {
			log.Warn("certificate rejected: %s", appErr.Message)
			http.Redirect(w, r, s.quizURL(r)+"?cert_error=1", http.StatusSeeOther)
			return
		}
		handleError(w, r, err)
		return
	}

	if strings.TrimSpace(name) != view.StudentName && strings.TrimSpace(name) != "" {
		eng.SetStudentName(r.Context(), strings.TrimSpace(name))
	}

	log.Info("certificate issued: quiz_id=%s, score=%d/%d", view.QuizID, view.Score, len(view.Questions))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, doc)
}

func anchor(questionID string) string {
	if questionID == "" {
		return ""
	}
	return "#q-" + questionID
}
