package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mateusdtakayama/meet-transcript/internal/domain/meeting"
)

// meetingID extracts and validates the id URL parameter. Identifiers are
// recording-start timestamps; anything else (including path segments like
// "..") is rejected before it can touch the filesystem.
func (s *Server) meetingID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := meeting.ParseID(id); err != nil {
		http.NotFound(w, r)
		return "", false
	}
	return id, true
}

func (s *Server) handleListMeetings(w http.ResponseWriter, r *http.Request) {
	infos, err := s.app.Browse.List()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, infos)
}

// handleGetMeeting loads one meeting's artifacts. Loading triggers lazy
// summary generation, so a slow adapter call can block this request; the
// UI is single-user and waits.
func (s *Server) handleGetMeeting(w http.ResponseWriter, r *http.Request) {
	id, ok := s.meetingID(w, r)
	if !ok {
		return
	}

	details, err := s.app.Browse.Load(r.Context(), id)
	if err != nil {
		s.log.Error().Err(err).Str("meetingId", id).Msg("loading meeting")
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	s.writeJSON(w, http.StatusOK, details)
}

type setTitleRequest struct {
	Title string `json:"title"`
}

func (s *Server) handleSetTitle(w http.ResponseWriter, r *http.Request) {
	id, ok := s.meetingID(w, r)
	if !ok {
		return
	}

	var req setTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.app.Browse.SetTitle(id, req.Title); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"title": req.Title})
}

func (s *Server) handleGetAudio(w http.ResponseWriter, r *http.Request) {
	id, ok := s.meetingID(w, r)
	if !ok {
		return
	}
	if !s.app.Store.HasAudio(id) {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, s.app.Store.AudioPath(id))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("encoding response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
