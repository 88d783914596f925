package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tubesum/tubesum/internal/logger"
)

const deepseekBaseURL = "https://api.deepseek.com"

type implDeepSeek struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	prompts Prompts
	logger  logger.Logger
}

func newDeepSeek(apiKey, model string, prompts Prompts, log logger.Logger) *implDeepSeek {
	return &implDeepSeek{
		client:  &http.Client{Timeout: 120 * time.Second},
		baseURL: deepseekBaseURL,
		apiKey:  apiKey,
		model:   model,
		prompts: prompts,
		logger:  log,
	}
}

func (s *implDeepSeek) Name() string {
	return "deepseek"
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (s *implDeepSeek) Summarize(ctx context.Context, text string) (string, error) {
	return s.complete(ctx, render(s.prompts.Summary, text))
}

func (s *implDeepSeek) Combine(ctx context.Context, text string) (string, error) {
	return s.complete(ctx, render(s.prompts.Combine, text))
}

func (s *implDeepSeek) complete(ctx context.Context, prompt string) (string, error) {
	s.logger.Info(ctx, "Requesting completion from DeepSeek (%s, %d chars)", s.model, len(prompt))

	body, err := json.Marshal(chatRequest{
		Model:    s.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Stream:   false,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("deepseek request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read deepseek response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", fmt.Errorf("deepseek rejected the API key (status %d): %w", resp.StatusCode, ErrMissingAPIKey)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("deepseek returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("decode deepseek response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("deepseek error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("deepseek returned no choices")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
