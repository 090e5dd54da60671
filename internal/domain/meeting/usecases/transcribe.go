package usecases

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/mateusdtakayama/meet-transcript/internal/metrics"
)

// Transcribe handles audio transcription via the OpenAI Whisper API.
type Transcribe struct {
	APIKey   string
	BaseURL  string // e.g. https://api.openai.com/v1
	Model    string
	Language string // language hint, empty = auto-detect

	// HTTPClient is used for API calls; http.DefaultClient when nil.
	HTTPClient *http.Client
}

// Transcribe uploads one audio segment and returns the recognized text.
// Failures are reported to the caller and never retried here.
func (t *Transcribe) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if t.APIKey == "" {
		return "", fmt.Errorf("OpenAI API key not set: set OPENAI_API_KEY or add openai_api_key to config")
	}

	metrics.Default.AdapterCalls.WithLabelValues("transcription").Inc()
	timer := metrics.NewAdapterTimer("transcription")
	defer timer.ObserveDuration()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("model", t.Model); err != nil {
		return "", err
	}
	if t.Language != "" {
		if err := writer.WriteField("language", t.Language); err != nil {
			return "", err
		}
	}
	if err := writer.WriteField("response_format", "text"); err != nil {
		return "", err
	}

	file, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("opening audio file: %w", err)
	}
	defer file.Close()

	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}

	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.BaseURL+"/audio/transcriptions", body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+t.APIKey)

	resp, err := t.client().Do(req)
	if err != nil {
		metrics.Default.AdapterErrors.WithLabelValues("transcription").Inc()
		return "", fmt.Errorf("calling OpenAI API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.Default.AdapterErrors.WithLabelValues("transcription").Inc()
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.Default.AdapterErrors.WithLabelValues("transcription").Inc()
		return "", fmt.Errorf("openai API error (HTTP %d): %s", resp.StatusCode, string(respBody))
	}

	// response_format=text returns the plain transcript body.
	return strings.TrimRight(string(respBody), "\n"), nil
}

func (t *Transcribe) client() *http.Client {
	if t.HTTPClient != nil {
		return t.HTTPClient
	}
	return http.DefaultClient
}
