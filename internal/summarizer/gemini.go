package summarizer

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/tubesum/tubesum/internal/logger"
)

type implGemini struct {
	apiKey  string
	model   string
	prompts Prompts
	logger  logger.Logger
}

func newGemini(apiKey, model string, prompts Prompts, log logger.Logger) *implGemini {
	return &implGemini{
		apiKey:  apiKey,
		model:   model,
		prompts: prompts,
		logger:  log,
	}
}

func (s *implGemini) Name() string {
	return "gemini"
}

func (s *implGemini) Summarize(ctx context.Context, text string) (string, error) {
	return s.generate(ctx, render(s.prompts.Summary, text))
}

func (s *implGemini) Combine(ctx context.Context, text string) (string, error) {
	return s.generate(ctx, render(s.prompts.Combine, text))
}

func (s *implGemini) generate(ctx context.Context, prompt string) (string, error) {
	s.logger.Info(ctx, "Requesting completion from Gemini (%s, %d chars)", s.model, len(prompt))

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  s.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create gemini client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from Gemini")
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}

	return strings.TrimSpace(text.String()), nil
}
