// Package server exposes the web UI, the meetings API, and the capture
// WebSocket.
package server

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/mateusdtakayama/meet-transcript/internal/app"
	"github.com/mateusdtakayama/meet-transcript/internal/logging"
)

//go:embed static/*
var staticFiles embed.FS

type Server struct {
	app *app.App
	log zerolog.Logger
}

func New(application *app.App) *Server {
	return &Server{
		app: application,
		log: logging.WithComponent("server"),
	}
}

// Handler constructs the HTTP router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/meetings", s.handleListMeetings)
		r.Get("/meetings/{id}", s.handleGetMeeting)
		r.Put("/meetings/{id}/title", s.handleSetTitle)
		r.Get("/meetings/{id}/audio", s.handleGetAudio)
	})

	r.Get("/ws/record", s.handleCapture)

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	r.Handle("/*", http.FileServer(http.FS(static)))

	return r
}

// ListenAndServe blocks serving HTTP on the given port.
func (s *Server) ListenAndServe(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.log.Info().Str("addr", addr).Msg("http server listening")
	return http.ListenAndServe(addr, s.Handler())
}
