package summarizer

import (
	"fmt"

	"github.com/tubesum/tubesum/internal/config"
	"github.com/tubesum/tubesum/internal/logger"
)

// New selects a backend from the resolved settings. When a summary chunk
// size is set the backend is wrapped so long transcripts are summarized in
// word windows with a final combining pass.
func New(s config.Settings, log logger.Logger) (Summarizer, error) {
	prompts, err := LoadPrompts(s.PromptFile)
	if err != nil {
		return nil, fmt.Errorf("load prompts: %w", err)
	}

	var inner Summarizer
	switch s.Backend {
	case "deepseek":
		if s.DeepSeekAPIKey == "" {
			return nil, fmt.Errorf("%w: set one with 'tubesum config --set-api-key' or DEEPSEEK_API_KEY", ErrMissingAPIKey)
		}
		inner = newDeepSeek(s.DeepSeekAPIKey, s.DeepSeekModel, prompts, log)
	case "ollama":
		inner = newOllama(s.OllamaURL, s.OllamaModel, prompts, log)
	case "gemini":
		if s.GeminiAPIKey == "" {
			return nil, fmt.Errorf("%w: set one with 'tubesum config --set-gemini-api-key' or GEMINI_API_KEY", ErrMissingAPIKey)
		}
		inner = newGemini(s.GeminiAPIKey, s.GeminiModel, prompts, log)
	case "extractive":
		inner = newExtractive()
	default:
		return nil, fmt.Errorf("unknown summary backend %q (want deepseek, ollama, gemini or extractive)", s.Backend)
	}

	if s.SummaryChunkSize > 0 {
		return &implChunked{
			inner:  inner,
			size:   s.SummaryChunkSize,
			logger: log,
		}, nil
	}
	return inner, nil
}
