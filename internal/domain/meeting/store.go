package meeting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/mateusdtakayama/meet-transcript/internal/audio"
)

// Artifact file names inside a meeting directory.
const (
	audioFile      = "audio.wav"
	chunkFile      = "chunk.wav"
	transcriptFile = "transcript.txt"
	titleFile      = "title.txt"
	summaryFile    = "summary.txt"
)

// Store reads and writes meeting artifacts under a root directory, one
// subdirectory per meeting. Missing artifacts read as empty values, never
// as errors.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) Root() string {
	return s.root
}

func (s *Store) Dir(id string) string {
	return filepath.Join(s.root, id)
}

func (s *Store) AudioPath(id string) string {
	return filepath.Join(s.root, id, audioFile)
}

func (s *Store) ChunkPath(id string) string {
	return filepath.Join(s.root, id, chunkFile)
}

// ensureDir creates the meeting directory on first write.
func (s *Store) ensureDir(id string) error {
	if err := os.MkdirAll(s.Dir(id), 0o755); err != nil {
		return fmt.Errorf("creating meeting directory: %w", err)
	}
	return nil
}

// List returns all meeting identifiers, newest first.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading meetings directory: %w", err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	return ids, nil
}

// AppendTranscript appends a transcript fragment. Fragments are never
// reordered or edited once written.
func (s *Store) AppendTranscript(id, text string) error {
	if err := s.ensureDir(id); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(s.Dir(id), transcriptFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening transcript: %w", err)
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return fmt.Errorf("appending transcript: %w", err)
	}
	return f.Close()
}

func (s *Store) ReadTranscript(id string) (string, error) {
	return s.readText(id, transcriptFile)
}

// WriteTitle replaces the meeting title.
func (s *Store) WriteTitle(id, title string) error {
	return s.writeText(id, titleFile, title)
}

func (s *Store) ReadTitle(id string) (string, error) {
	return s.readText(id, titleFile)
}

// WriteSummary replaces the meeting summary.
func (s *Store) WriteSummary(id, summary string) error {
	return s.writeText(id, summaryFile, summary)
}

func (s *Store) ReadSummary(id string) (string, error) {
	return s.readText(id, summaryFile)
}

// WriteAudio replaces the cumulative audio file with the contents of buf.
func (s *Store) WriteAudio(id string, buf *audio.Buffer) error {
	if err := s.ensureDir(id); err != nil {
		return err
	}
	return buf.WriteWAV(s.AudioPath(id))
}

// WriteChunk replaces the transient per-interval chunk file.
func (s *Store) WriteChunk(id string, buf *audio.Buffer) error {
	if err := s.ensureDir(id); err != nil {
		return err
	}
	return buf.WriteWAV(s.ChunkPath(id))
}

// HasAudio reports whether a cumulative audio file exists for the meeting.
func (s *Store) HasAudio(id string) bool {
	_, err := os.Stat(s.AudioPath(id))
	return err == nil
}

// HasTranscript reports whether a transcript file exists for the meeting.
func (s *Store) HasTranscript(id string) bool {
	_, err := os.Stat(filepath.Join(s.Dir(id), transcriptFile))
	return err == nil
}

// HasSummary reports whether a summary file exists for the meeting.
func (s *Store) HasSummary(id string) bool {
	_, err := os.Stat(filepath.Join(s.Dir(id), summaryFile))
	return err == nil
}

func (s *Store) writeText(id, name, content string) error {
	if err := s.ensureDir(id); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.Dir(id), name), []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// readText returns the file contents, or "" if the artifact does not exist
// yet. Absence is the canonical "not yet generated" state, not a fault.
func (s *Store) readText(id, name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(id), name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), nil
}
