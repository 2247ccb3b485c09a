package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/", s.handleHome)
	r.Get("/history", s.handleHistory)

	r.Route("/quiz/{id}", func(r chi.Router) {
		r.Get("/", s.handleQuiz)
		r.Post("/select", s.handleSelect)
		r.Post("/submit", s.handleSubmit)
		r.Post("/restart", s.handleRestart)
		r.Post("/settings", s.handleSettings)
		r.Post("/review", s.handleReview)
		r.Post("/timer", s.handleTimer)
		r.Post("/name", s.handleName)
		r.Get("/certificate", s.handleCertificate)
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	return r
}
