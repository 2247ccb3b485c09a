package api

import (
	"html/template"
	"net/http"

	"github.com/codernaccotax/quizdrill/internal/logger"
	"github.com/codernaccotax/quizdrill/internal/pool"
	"github.com/codernaccotax/quizdrill/internal/repository"
	"github.com/codernaccotax/quizdrill/internal/session"
)

// Server holds the HTTP surface dependencies.
type Server struct {
	Library   *pool.Library
	Sessions  *session.Manager
	Attempts  repository.AttemptRepository
	Templates *template.Template
}

type pageData map[string]any

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	if data == nil {
		data = pageData{}
	}

	log := logger.FromContext(r.Context())
	if err := s.Templates.ExecuteTemplate(w, name, data); err != nil {
		log.Error("failed to render template %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
