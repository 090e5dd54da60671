package usecases

import "context"

// Transcriber converts one bounded audio segment into text. No context is
// carried between calls.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Summarizer produces summary text for a full transcript. Stateless per
// call, no conversation history.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}
