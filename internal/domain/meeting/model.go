package meeting

import (
	"fmt"
	"time"
)

// IDLayout is the time layout for meeting identifiers. Identifiers sort
// lexicographically in chronological order and are assigned once at
// recording start.
const IDLayout = "2006_01_02_15_04_05"

// NewID derives a meeting identifier from the recording start time.
func NewID(t time.Time) string {
	return t.Format(IDLayout)
}

// ParseID returns the recording start time encoded in an identifier.
func ParseID(id string) (time.Time, error) {
	t, err := time.ParseInLocation(IDLayout, id, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid meeting id %q: %w", id, err)
	}
	return t, nil
}

// DisplayLabel formats an identifier (plus optional title) for listings,
// e.g. "2024/03/01 14:30:00 - Weekly sync".
func DisplayLabel(id, title string) string {
	label := id
	if t, err := ParseID(id); err == nil {
		label = t.Format("2006/01/02 15:04:05")
	}
	if title != "" {
		label += " - " + title
	}
	return label
}

// Info summarizes a stored meeting for listings.
type Info struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	Title         string `json:"title"`
	HasTranscript bool   `json:"hasTranscript"`
	HasSummary    bool   `json:"hasSummary"`
}

// Details holds all loaded artifacts of one meeting.
type Details struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Title      string `json:"title"`
	Transcript string `json:"transcript"`
	Summary    string `json:"summary"`
	HasAudio   bool   `json:"hasAudio"`
}
