package app

import (
	"github.com/mateusdtakayama/meet-transcript/config"
	"github.com/mateusdtakayama/meet-transcript/internal/domain/meeting"
	"github.com/mateusdtakayama/meet-transcript/internal/domain/meeting/usecases"
)

type App struct {
	Store  *meeting.Store
	Record *usecases.RecordMeeting
	Browse *usecases.Browse
}

func New(cfg *config.Config) (*App, error) {
	store := meeting.NewStore(cfg.MeetingsDir)

	transcribe := &usecases.Transcribe{
		APIKey:   cfg.OpenAIAPIKey,
		BaseURL:  cfg.OpenAIBaseURL,
		Model:    cfg.WhisperModel,
		Language: cfg.Language,
	}

	summarize := &usecases.Summarize{
		APIKey:         cfg.OpenAIAPIKey,
		BaseURL:        cfg.OpenAIBaseURL,
		Model:          cfg.ChatModel,
		PromptTemplate: cfg.SummaryPrompt,
	}

	record := &usecases.RecordMeeting{
		Store:         store,
		Transcriber:   transcribe,
		FlushInterval: cfg.FlushInterval,
	}

	browse := &usecases.Browse{
		Store:      store,
		Summarizer: summarize,
	}

	return &App{
		Store:  store,
		Record: record,
		Browse: browse,
	}, nil
}
