package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/mateusdtakayama/meet-transcript/internal/domain/meeting"
	"github.com/mateusdtakayama/meet-transcript/internal/metrics"
)

// Browse lists stored meetings and loads their artifacts for display.
type Browse struct {
	Store      *meeting.Store
	Summarizer Summarizer
}

// List enumerates stored meetings, newest first.
func (b *Browse) List() ([]meeting.Info, error) {
	ids, err := b.Store.List()
	if err != nil {
		return nil, err
	}

	infos := make([]meeting.Info, 0, len(ids))
	for _, id := range ids {
		title, err := b.Store.ReadTitle(id)
		if err != nil {
			return nil, err
		}
		infos = append(infos, meeting.Info{
			ID:            id,
			Label:         meeting.DisplayLabel(id, title),
			Title:         title,
			HasTranscript: b.Store.HasTranscript(id),
			HasSummary:    b.Store.HasSummary(id),
		})
	}
	return infos, nil
}

// Load reads all artifacts of one meeting. If no summary has been generated
// yet and a non-empty transcript exists, the summarizer is invoked
// synchronously and the result persisted before returning. Repeated loads
// after generation return the stored summary without calling the adapter
// again.
func (b *Browse) Load(ctx context.Context, id string) (*meeting.Details, error) {
	title, err := b.Store.ReadTitle(id)
	if err != nil {
		return nil, err
	}
	transcript, err := b.Store.ReadTranscript(id)
	if err != nil {
		return nil, err
	}
	summary, err := b.Store.ReadSummary(id)
	if err != nil {
		return nil, err
	}

	if summary == "" && strings.TrimSpace(transcript) != "" {
		summary, err = b.Summarizer.Summarize(ctx, transcript)
		if err != nil {
			return nil, fmt.Errorf("generating summary: %w", err)
		}
		if err := b.Store.WriteSummary(id, summary); err != nil {
			return nil, err
		}
		metrics.Default.SummariesGenerated.Inc()
	}

	return &meeting.Details{
		ID:         id,
		Label:      meeting.DisplayLabel(id, title),
		Title:      title,
		Transcript: transcript,
		Summary:    summary,
		HasAudio:   b.Store.HasAudio(id),
	}, nil
}

// SetTitle persists the meeting title immediately. Setting the same title
// twice yields one stored value.
func (b *Browse) SetTitle(id, title string) error {
	return b.Store.WriteTitle(id, strings.TrimSpace(title))
}
