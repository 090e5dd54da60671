package usecases

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/mateusdtakayama/meet-transcript/internal/domain/meeting"
)

// fakeClock is advanced manually by tests.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 14, 30, 0, 0, time.Local)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// scriptTranscriber returns numbered fragments, with optional per-call
// failures.
type scriptTranscriber struct {
	calls   int
	failOn  map[int]error
	lastDir string
}

func (s *scriptTranscriber) Transcribe(_ context.Context, audioPath string) (string, error) {
	s.calls++
	s.lastDir = audioPath
	if err, ok := s.failOn[s.calls]; ok {
		return "", err
	}
	return fmt.Sprintf("fragment %d. ", s.calls), nil
}

func newRecorder(t *testing.T, clk *fakeClock, tr Transcriber) (*RecordMeeting, *meeting.Store) {
	t.Helper()
	store := meeting.NewStore(t.TempDir())
	return &RecordMeeting{
		Store:         store,
		Transcriber:   tr,
		FlushInterval: 5 * time.Second,
		Now:           clk.Now,
	}, store
}

func ingestSecond(t *testing.T, s *Session) *Flush {
	t.Helper()
	// One second of 16 kHz mono 16-bit PCM.
	fl, err := s.Ingest(context.Background(), make([]byte, 16000*2))
	if err != nil {
		t.Fatalf("Ingest() error: %v", err)
	}
	return fl
}

func TestBeginAllocatesMeeting(t *testing.T) {
	clk := newFakeClock()
	rec, store := newRecorder(t, clk, &scriptTranscriber{})

	s, err := rec.Begin()
	if err != nil {
		t.Fatalf("Begin() error: %v", err)
	}

	if s.State() != StateRecording {
		t.Errorf("State() = %v, want RECORDING", s.State())
	}
	if s.MeetingID() != "2024_03_01_14_30_00" {
		t.Errorf("MeetingID() = %q", s.MeetingID())
	}
	if _, err := os.Stat(store.Dir(s.MeetingID())); err != nil {
		t.Errorf("meeting dir not created at Begin: %v", err)
	}
	// Empty transcript exists from the start
	if !store.HasTranscript(s.MeetingID()) {
		t.Error("transcript file should exist after Begin")
	}
}

func TestTwelveSecondsYieldThreeFragments(t *testing.T) {
	clk := newFakeClock()
	tr := &scriptTranscriber{}
	rec, store := newRecorder(t, clk, tr)

	s, err := rec.Begin()
	if err != nil {
		t.Fatal(err)
	}

	var flushes int
	for sec := 0; sec < 12; sec++ {
		clk.Advance(time.Second)
		if fl := ingestSecond(t, s); fl != nil {
			if fl.Err != nil {
				t.Fatalf("unexpected flush error at second %d: %v", sec+1, fl.Err)
			}
			flushes++
		}
	}
	if flushes != 2 {
		t.Errorf("interval flushes = %d, want 2 (at ~5s and ~10s)", flushes)
	}

	// Stop flushes the remaining ~2s.
	fl, err := s.Stop(context.Background())
	if err != nil {
		t.Fatalf("Stop() error: %v", err)
	}
	if fl == nil || fl.Fragment == "" {
		t.Fatal("final flush should produce a fragment")
	}

	transcript, err := store.ReadTranscript(s.MeetingID())
	if err != nil {
		t.Fatal(err)
	}
	if transcript != "fragment 1. fragment 2. fragment 3. " {
		t.Errorf("transcript = %q", transcript)
	}
	if tr.calls != 3 {
		t.Errorf("transcriber calls = %d, want 3", tr.calls)
	}
	if !store.HasAudio(s.MeetingID()) {
		t.Error("cumulative audio file missing after flushes")
	}
}

func TestAdapterFailureSkipsIntervalAndContinues(t *testing.T) {
	clk := newFakeClock()
	boom := errors.New("rate limited")
	tr := &scriptTranscriber{failOn: map[int]error{2: boom}}
	rec, store := newRecorder(t, clk, tr)

	s, err := rec.Begin()
	if err != nil {
		t.Fatal(err)
	}

	var results []*Flush
	for sec := 0; sec < 10; sec++ {
		clk.Advance(time.Second)
		if fl := ingestSecond(t, s); fl != nil {
			results = append(results, fl)
		}
	}
	if len(results) != 2 {
		t.Fatalf("flushes = %d, want 2", len(results))
	}

	if results[0].Err != nil {
		t.Errorf("first flush should succeed, got %v", results[0].Err)
	}
	if !errors.Is(results[1].Err, boom) {
		t.Errorf("second flush error = %v, want %v", results[1].Err, boom)
	}
	if results[1].Fragment != "" {
		t.Errorf("failed interval must not produce a fragment, got %q", results[1].Fragment)
	}

	// Recording continues after the failure.
	if s.State() != StateRecording {
		t.Errorf("State() = %v, want RECORDING", s.State())
	}

	clk.Advance(2 * time.Second)
	ingestSecond(t, s)
	if _, err := s.Stop(context.Background()); err != nil {
		t.Fatal(err)
	}

	transcript, err := store.ReadTranscript(s.MeetingID())
	if err != nil {
		t.Fatal(err)
	}
	// The failed interval is skipped, not inserted as error text.
	if transcript != "fragment 1. fragment 3. " {
		t.Errorf("transcript = %q", transcript)
	}
	// Audio is retained even for the failed interval.
	if !store.HasAudio(s.MeetingID()) {
		t.Error("audio should be retained despite transcription failure")
	}
}

func TestStopWithEmptyBufferSkipsFinalFlush(t *testing.T) {
	clk := newFakeClock()
	tr := &scriptTranscriber{}
	rec, _ := newRecorder(t, clk, tr)

	s, err := rec.Begin()
	if err != nil {
		t.Fatal(err)
	}

	fl, err := s.Stop(context.Background())
	if err != nil {
		t.Fatalf("Stop() error: %v", err)
	}
	if fl != nil {
		t.Errorf("Stop() with empty buffer returned a flush: %+v", fl)
	}
	if tr.calls != 0 {
		t.Errorf("transcriber called %d times, want 0", tr.calls)
	}
	if s.State() != StateStopped {
		t.Errorf("State() = %v, want STOPPED", s.State())
	}
}

func TestIngestAfterStop(t *testing.T) {
	clk := newFakeClock()
	rec, _ := newRecorder(t, clk, &scriptTranscriber{})

	s, err := rec.Begin()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Stop(context.Background()); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Ingest(context.Background(), []byte{0, 0}); !errors.Is(err, ErrNotRecording) {
		t.Errorf("Ingest() after stop = %v, want ErrNotRecording", err)
	}
	if _, err := s.Stop(context.Background()); !errors.Is(err, ErrAlreadyStopped) {
		t.Errorf("second Stop() = %v, want ErrAlreadyStopped", err)
	}
}

func TestNoFlushWithoutAudio(t *testing.T) {
	clk := newFakeClock()
	tr := &scriptTranscriber{}
	rec, _ := newRecorder(t, clk, tr)

	s, err := rec.Begin()
	if err != nil {
		t.Fatal(err)
	}

	// Interval elapses but no samples ever arrive.
	clk.Advance(10 * time.Second)
	fl, err := s.Ingest(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if fl != nil {
		t.Errorf("flush occurred without buffered audio")
	}
	if tr.calls != 0 {
		t.Errorf("transcriber called %d times, want 0", tr.calls)
	}
}

func TestZeroSessionIsIdle(t *testing.T) {
	var s Session

	if s.State() != StateIdle {
		t.Errorf("State() = %v, want StateIdle", s.State())
	}
	if _, err := s.Ingest(context.Background(), []byte{0, 0}); !errors.Is(err, ErrNotRecording) {
		t.Errorf("Ingest() on idle session = %v, want ErrNotRecording", err)
	}
	if _, err := s.Stop(context.Background()); !errors.Is(err, ErrNotRecording) {
		t.Errorf("Stop() on idle session = %v, want ErrNotRecording", err)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "IDLE"},
		{StateRecording, "RECORDING"},
		{StateStopped, "STOPPED"},
		{State(42), "UNKNOWN(42)"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", int(tt.state), got, tt.want)
		}
	}
}
