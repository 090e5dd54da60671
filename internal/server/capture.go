package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/mateusdtakayama/meet-transcript/internal/domain/meeting/usecases"
	"github.com/mateusdtakayama/meet-transcript/internal/logging"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local single-user app
	},
}

// captureEvent is pushed to the browser during a recording session.
type captureEvent struct {
	Type      string `json:"type"` // started, fragment, interval_error, stopped, error
	MeetingID string `json:"meetingId,omitempty"`
	Text      string `json:"text,omitempty"`
	Error     string `json:"error,omitempty"`
}

// handleCapture runs one recording session over a WebSocket. Binary frames
// carry little-endian 16-bit PCM mono at 16 kHz; the flush check runs
// inline on each received batch, so this loop is the session's only
// execution context.
func (s *Server) handleCapture(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	sess, err := s.app.Record.Begin()
	if err != nil {
		s.log.Error().Err(err).Msg("starting recording session")
		_ = conn.WriteJSON(captureEvent{Type: "error", Error: err.Error()})
		return
	}

	log := logging.WithSession(uuid.NewString(), sess.MeetingID())
	log.Info().Msg("recording started")

	_ = conn.WriteJSON(captureEvent{Type: "started", MeetingID: sess.MeetingID()})

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			// Client went away without a stop command. The final flush
			// still runs so the buffered tail is persisted.
			log.Warn().Err(err).Msg("websocket closed, stopping session")
			s.finishSession(conn, sess, log, false)
			return
		}

		switch msgType {
		case websocket.BinaryMessage:
			fl, err := sess.Ingest(r.Context(), data)
			if err != nil {
				if !errors.Is(err, usecases.ErrNotRecording) {
					log.Error().Err(err).Msg("ingesting audio")
				}
				// The session must still be closed out: flush the
				// buffered tail and release the active-session gauge.
				s.finishSession(conn, sess, log, false)
				return
			}
			s.emitFlush(conn, fl, log)

		case websocket.TextMessage:
			var cmd struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal(data, &cmd); err == nil && cmd.Type == "stop" {
				s.finishSession(conn, sess, log, true)
				return
			}
		}
	}
}

// emitFlush reports a flush outcome to the browser. Adapter failures are
// surfaced per interval; the recording continues.
func (s *Server) emitFlush(conn *websocket.Conn, fl *usecases.Flush, log zerolog.Logger) {
	if fl == nil {
		return
	}
	if fl.Err != nil {
		log.Warn().Err(fl.Err).Msg("flush failed for interval")
		_ = conn.WriteJSON(captureEvent{Type: "interval_error", Error: fl.Err.Error()})
		return
	}
	log.Debug().Int("chars", len(fl.Fragment)).Msg("transcript fragment appended")
	_ = conn.WriteJSON(captureEvent{Type: "fragment", Text: fl.Fragment})
}

func (s *Server) finishSession(conn *websocket.Conn, sess *usecases.Session, log zerolog.Logger, notify bool) {
	// Background context: the final flush must complete even when the
	// request is going away.
	fl, err := sess.Stop(context.Background())
	if err != nil {
		log.Warn().Err(err).Msg("stopping session")
		return
	}
	if notify {
		s.emitFlush(conn, fl, log)
		_ = conn.WriteJSON(captureEvent{Type: "stopped", MeetingID: sess.MeetingID()})
	}
	log.Info().Dur("duration", time.Since(sess.StartedAt())).Msg("recording stopped")
}
