package meeting

import (
	"os"
	"testing"
	"time"

	"github.com/mateusdtakayama/meet-transcript/internal/audio"
)

func TestNewIDRoundTrip(t *testing.T) {
	start := time.Date(2024, 3, 1, 14, 30, 5, 0, time.Local)
	id := NewID(start)

	if id != "2024_03_01_14_30_05" {
		t.Errorf("NewID() = %q", id)
	}

	parsed, err := ParseID(id)
	if err != nil {
		t.Fatalf("ParseID() error: %v", err)
	}
	if !parsed.Equal(start) {
		t.Errorf("ParseID() = %v, want %v", parsed, start)
	}
}

func TestDisplayLabel(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		title string
		want  string
	}{
		{"no title", "2024_03_01_14_30_05", "", "2024/03/01 14:30:05"},
		{"with title", "2024_03_01_14_30_05", "Weekly sync", "2024/03/01 14:30:05 - Weekly sync"},
		{"unparseable id falls back", "not-a-date", "x", "not-a-date - x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayLabel(tt.id, tt.title); got != tt.want {
				t.Errorf("DisplayLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAppendTranscriptKeepsArrivalOrder(t *testing.T) {
	s := NewStore(t.TempDir())
	id := "2024_03_01_14_30_05"

	fragments := []string{"first. ", "second. ", "third."}
	for _, frag := range fragments {
		if err := s.AppendTranscript(id, frag); err != nil {
			t.Fatalf("AppendTranscript() error: %v", err)
		}
	}

	got, err := s.ReadTranscript(id)
	if err != nil {
		t.Fatalf("ReadTranscript() error: %v", err)
	}
	if got != "first. second. third." {
		t.Errorf("transcript = %q", got)
	}
}

func TestReadMissingArtifactsIsNotAnError(t *testing.T) {
	s := NewStore(t.TempDir())
	id := "2024_03_01_14_30_05"

	for name, read := range map[string]func(string) (string, error){
		"transcript": s.ReadTranscript,
		"title":      s.ReadTitle,
		"summary":    s.ReadSummary,
	} {
		got, err := read(id)
		if err != nil {
			t.Errorf("%s: read error for missing artifact: %v", name, err)
		}
		if got != "" {
			t.Errorf("%s: got %q, want empty", name, got)
		}
	}
}

func TestWriteTitleOverwriteIdempotent(t *testing.T) {
	s := NewStore(t.TempDir())
	id := "2024_03_01_14_30_05"

	if err := s.WriteTitle(id, "Planning"); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteTitle(id, "Planning"); err != nil {
		t.Fatal(err)
	}

	got, err := s.ReadTitle(id)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Planning" {
		t.Errorf("title = %q, want Planning", got)
	}
}

func TestFirstWriteCreatesMeetingDir(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)
	id := "2024_03_01_14_30_05"

	if _, err := os.Stat(s.Dir(id)); !os.IsNotExist(err) {
		t.Fatal("meeting dir should not exist yet")
	}
	if err := s.WriteTitle(id, "x"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(s.Dir(id)); err != nil {
		t.Errorf("meeting dir not created on first write: %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	s := NewStore(t.TempDir())

	for _, id := range []string{"2024_01_01_10_00_00", "2024_03_01_10_00_00", "2024_02_01_10_00_00"} {
		if err := s.WriteTitle(id, "t"); err != nil {
			t.Fatal(err)
		}
	}

	ids, err := s.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	want := []string{"2024_03_01_10_00_00", "2024_02_01_10_00_00", "2024_01_01_10_00_00"}
	if len(ids) != len(want) {
		t.Fatalf("List() returned %d ids, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestListMissingRootIsEmpty(t *testing.T) {
	s := NewStore(t.TempDir() + "/does-not-exist")
	ids, err := s.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("List() = %v, want empty", ids)
	}
}

func TestWriteAudio(t *testing.T) {
	s := NewStore(t.TempDir())
	id := "2024_03_01_14_30_05"

	buf := audio.NewBuffer()
	buf.AppendPCM16([]byte{0x01, 0x00, 0x02, 0x00})

	if err := s.WriteAudio(id, buf); err != nil {
		t.Fatalf("WriteAudio() error: %v", err)
	}
	if !s.HasAudio(id) {
		t.Error("HasAudio() = false after WriteAudio")
	}
	if err := s.WriteChunk(id, buf); err != nil {
		t.Fatalf("WriteChunk() error: %v", err)
	}
	if _, err := os.Stat(s.ChunkPath(id)); err != nil {
		t.Errorf("chunk file missing: %v", err)
	}
}
