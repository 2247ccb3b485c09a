package api

import (
	"net/http"
	"strconv"

	"github.com/codernaccotax/quizdrill/internal/logger"
	"github.com/codernaccotax/quizdrill/internal/models"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("rendering home page")

	s.render(w, r, "pages/home.html", pageData{
		"quizzes": s.Library.List(),
	})
}

const historyPageSize = 20

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	filter := models.AttemptFilter{
		QuizID:   r.URL.Query().Get("quiz"),
		OrderBy:  r.URL.Query().Get("order"),
		OrderDir: r.URL.Query().Get("dir"),
		Limit:    historyPageSize,
		Offset:   (page - 1) * historyPageSize,
	}

	attempts, err := s.Attempts.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	total, err := s.Attempts.Count(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("history page %d: %d of %d attempts", page, len(attempts), total)

	totalPages := (total + historyPageSize - 1) / historyPageSize
	s.render(w, r, "pages/history.html", pageData{
		"attempts":   attempts,
		"quizzes":    s.Library.List(),
		"filterQuiz": filter.QuizID,
		"page":       page,
		"totalPages": totalPages,
		"total":      total,
	})
}
