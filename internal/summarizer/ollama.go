package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/tubesum/tubesum/internal/logger"
)

// ollamaNumCtx asks the server for a large context window so long
// transcripts aren't silently truncated.
const ollamaNumCtx = 131072

type implOllama struct {
	client  *http.Client
	baseURL string
	model   string
	prompts Prompts
	logger  logger.Logger
}

func newOllama(baseURL, model string, prompts Prompts, log logger.Logger) *implOllama {
	return &implOllama{
		client:  &http.Client{Timeout: 300 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		prompts: prompts,
		logger:  log,
	}
}

func (s *implOllama) Name() string {
	return "ollama"
}

type ollamaRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

type ollamaResponse struct {
	Message chatMessage `json:"message"`
	Error   string      `json:"error"`
}

func (s *implOllama) Summarize(ctx context.Context, text string) (string, error) {
	return s.chat(ctx, render(s.prompts.Summary, text))
}

func (s *implOllama) Combine(ctx context.Context, text string) (string, error) {
	return s.chat(ctx, render(s.prompts.Combine, text))
}

func (s *implOllama) chat(ctx context.Context, prompt string) (string, error) {
	s.logger.Info(ctx, "Requesting completion from Ollama (%s, %d chars)", s.model, len(prompt))

	body, err := json.Marshal(ollamaRequest{
		Model:    s.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Stream:   false,
		Options:  map[string]any{"num_ctx": ollamaNumCtx},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		if isConnectionRefused(err) {
			return "", fmt.Errorf("%w at %s (start it with 'ollama serve')", ErrOllamaNotRunning, s.baseURL)
		}
		return "", fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read ollama response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var parsed ollamaResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}
	if parsed.Error != "" {
		return "", fmt.Errorf("ollama error: %s", parsed.Error)
	}
	if strings.TrimSpace(parsed.Message.Content) == "" {
		return "", fmt.Errorf("ollama returned an empty completion")
	}

	return strings.TrimSpace(parsed.Message.Content), nil
}

func isConnectionRefused(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(err.Error(), "connection refused")
}
