// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily word.
// Exposes two endpoints under /daily:
//   - POST /daily/new  → start a game whose target is today's word
//   - GET  /daily/today → today's UTC date key
//
// A daily game is an ordinary hosted game (same token, same /game/{id}
// routes); only its target source differs. Everyone playing on the same UTC
// date gets the same word.

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", s.handleDailyNew)
		r.Get("/today", s.handleDailyToday)
	})
}

func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	s.startGame(w, r, s.opts.Daily, s.opts.Daily.Today())
}

func (s *Server) handleDailyToday(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"date": s.opts.Daily.Today()})
}
