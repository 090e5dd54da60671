package usecases

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mateusdtakayama/meet-transcript/internal/metrics"
)

// Summarize generates a meeting summary via the OpenAI chat API.
type Summarize struct {
	APIKey  string
	BaseURL string
	Model   string

	// PromptTemplate must contain one %s placeholder for the transcript.
	PromptTemplate string

	HTTPClient *http.Client
}

// Summarize sends the full transcript with the instruction template and
// returns the summary text. Stateless per call.
func (s *Summarize) Summarize(ctx context.Context, transcript string) (string, error) {
	if s.APIKey == "" {
		return "", fmt.Errorf("OpenAI API key not set: set OPENAI_API_KEY or add openai_api_key to config")
	}

	metrics.Default.AdapterCalls.WithLabelValues("summarization").Inc()
	timer := metrics.NewAdapterTimer("summarization")
	defer timer.ObserveDuration()

	reqBody := chatRequest{
		Model: s.Model,
		Messages: []chatMessage{
			{
				Role:    "user",
				Content: fmt.Sprintf(s.PromptTemplate, transcript),
			},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.APIKey)

	resp, err := s.client().Do(req)
	if err != nil {
		metrics.Default.AdapterErrors.WithLabelValues("summarization").Inc()
		return "", fmt.Errorf("calling OpenAI API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.Default.AdapterErrors.WithLabelValues("summarization").Inc()
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.Default.AdapterErrors.WithLabelValues("summarization").Inc()
		return "", fmt.Errorf("openai API error (HTTP %d): %s", resp.StatusCode, string(respBody))
	}

	var apiResp chatResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("parsing OpenAI response: %w", err)
	}

	if len(apiResp.Choices) == 0 || apiResp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty response from OpenAI API")
	}

	return apiResp.Choices[0].Message.Content, nil
}

func (s *Summarize) client() *http.Client {
	if s.HTTPClient != nil {
		return s.HTTPClient
	}
	return http.DefaultClient
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
