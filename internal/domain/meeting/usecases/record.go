package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mateusdtakayama/meet-transcript/internal/audio"
	"github.com/mateusdtakayama/meet-transcript/internal/domain/meeting"
	"github.com/mateusdtakayama/meet-transcript/internal/metrics"
)

// State is the lifecycle state of a capture session.
type State int

const (
	// StateIdle - no recording in progress. A zero-value Session is idle
	// and rejects every operation; Begin hands out sessions already in
	// StateRecording.
	StateIdle State = iota
	// StateRecording - audio frames are being accepted.
	StateRecording
	// StateStopped - session ended, terminal.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateRecording:
		return "RECORDING"
	case StateStopped:
		return "STOPPED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(s))
	}
}

var (
	ErrNotRecording   = errors.New("session is not recording")
	ErrAlreadyStopped = errors.New("session already stopped")
)

// RecordMeeting starts capture sessions. One session runs per user
// connection; the meeting directory it allocates is written only by that
// session.
type RecordMeeting struct {
	Store         *meeting.Store
	Transcriber   Transcriber
	FlushInterval time.Duration

	// Now is the session clock; time.Now when nil.
	Now func() time.Time
}

// Begin transitions Idle→Recording: allocates a meeting identifier from the
// current timestamp and creates an empty transcript and audio buffer.
func (r *RecordMeeting) Begin() (*Session, error) {
	now := r.clock()()
	id := meeting.NewID(now)

	// Materialize the meeting directory and empty transcript up front so
	// the meeting is visible even if no flush ever completes.
	if err := r.Store.AppendTranscript(id, ""); err != nil {
		return nil, err
	}

	metrics.Default.SessionsTotal.Inc()
	metrics.Default.SessionsActive.Inc()

	return &Session{
		store:       r.Store,
		transcriber: r.Transcriber,
		interval:    r.FlushInterval,
		now:         r.clock(),
		state:       StateRecording,
		meetingID:   id,
		startedAt:   now,
		lastFlush:   now,
		chunk:       audio.NewBuffer(),
		complete:    audio.NewBuffer(),
	}, nil
}

func (r *RecordMeeting) clock() func() time.Time {
	if r.Now != nil {
		return r.Now
	}
	return time.Now
}

// Session is one active recording. All methods are driven by the caller's
// own event loop; the flush check runs inline on each ingested frame batch,
// there is no background timer. The zero value is an idle session that
// returns ErrNotRecording from Ingest and Stop.
type Session struct {
	store       *meeting.Store
	transcriber Transcriber
	interval    time.Duration
	now         func() time.Time

	state     State
	meetingID string
	startedAt time.Time
	lastFlush time.Time
	chunk     *audio.Buffer // per-interval segment, cleared after each flush
	complete  *audio.Buffer // cumulative meeting audio
}

func (s *Session) MeetingID() string { return s.meetingID }

func (s *Session) State() State { return s.state }

func (s *Session) StartedAt() time.Time { return s.startedAt }

// Flush is the outcome of one interval flush.
type Flush struct {
	// Fragment is the transcript text appended for this interval, empty
	// when the adapter call failed.
	Fragment string
	// Err carries the adapter or filesystem failure for this interval
	// only; the recording itself continues.
	Err error
}

// Ingest appends a batch of little-endian 16-bit PCM bytes and runs the
// periodic flush check. Returns a non-nil Flush when a flush occurred.
func (s *Session) Ingest(ctx context.Context, pcm []byte) (*Flush, error) {
	if s.state != StateRecording {
		return nil, ErrNotRecording
	}

	s.chunk.AppendPCM16(pcm)
	s.complete.AppendPCM16(pcm)

	metrics.Default.AudioFramesReceived.Inc()
	metrics.Default.AudioBytesReceived.Add(float64(len(pcm)))

	if s.chunk.Empty() {
		return nil, nil
	}
	if s.now().Sub(s.lastFlush) < s.interval {
		return nil, nil
	}
	return s.flush(ctx), nil
}

// Stop transitions Recording→Stopped, performing a final flush of any
// remaining buffered audio.
func (s *Session) Stop(ctx context.Context) (*Flush, error) {
	if s.state == StateStopped {
		return nil, ErrAlreadyStopped
	}
	if s.state != StateRecording {
		return nil, ErrNotRecording
	}

	s.state = StateStopped
	metrics.Default.SessionsActive.Dec()

	if s.chunk.Empty() {
		return nil, nil
	}
	return s.flush(ctx), nil
}

// flush persists the cumulative audio and the current chunk, submits the
// chunk for transcription, and appends the result to the transcript. A
// failure aborts that artifact only: a failed transcription leaves the
// audio retained and the transcript without this interval's text.
func (s *Session) flush(ctx context.Context) *Flush {
	s.lastFlush = s.now()
	metrics.Default.FlushesTotal.Inc()

	fl := &Flush{}

	if err := s.store.WriteAudio(s.meetingID, s.complete); err != nil {
		fl.Err = errors.Join(fl.Err, err)
	}

	if err := s.store.WriteChunk(s.meetingID, s.chunk); err != nil {
		// Without the chunk file there is nothing to transcribe.
		s.chunk.Reset()
		fl.Err = errors.Join(fl.Err, err)
		return fl
	}
	s.chunk.Reset()

	text, err := s.transcriber.Transcribe(ctx, s.store.ChunkPath(s.meetingID))
	if err != nil {
		fl.Err = errors.Join(fl.Err, err)
		return fl
	}

	if err := s.store.AppendTranscript(s.meetingID, text); err != nil {
		fl.Err = errors.Join(fl.Err, err)
		return fl
	}

	fl.Fragment = text
	return fl
}
