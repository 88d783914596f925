package config

import "os"

// Settings is the effective configuration for one run after applying the
// override order: flag > environment > config file > built-in default.
type Settings struct {
	Backend          string
	DeepSeekAPIKey   string
	GeminiAPIKey     string
	DeepSeekModel    string
	OllamaModel      string
	OllamaURL        string
	GeminiModel      string
	WhisperBin       string
	WhisperModel     string
	Language         string
	ChunkDuration    int
	OverlapDuration  int
	SummaryChunkSize int
	PromptFile       string
}

// Overrides carries flag-supplied values. Zero values mean "not set".
type Overrides struct {
	Backend          string
	APIKey           string
	OllamaModel      string
	ChunkDuration    int
	OverlapDuration  int
	SummaryChunkSize int
	PromptFile       string
}

// Resolve folds overrides and environment variables over the stored config.
func (c *Config) Resolve(o Overrides) Settings {
	s := Settings{
		Backend:          c.Backend,
		DeepSeekAPIKey:   c.DeepSeekAPIKey,
		GeminiAPIKey:     c.GeminiAPIKey,
		DeepSeekModel:    c.DeepSeekModel,
		OllamaModel:      c.OllamaModel,
		OllamaURL:        c.OllamaURL,
		GeminiModel:      c.GeminiModel,
		WhisperBin:       c.WhisperBin,
		WhisperModel:     c.WhisperModel,
		Language:         c.Language,
		ChunkDuration:    c.ChunkDuration,
		OverlapDuration:  c.OverlapDuration,
		SummaryChunkSize: c.SummaryChunkSize,
		PromptFile:       o.PromptFile,
	}

	// Environment beats the stored file
	if v := os.Getenv("DEEPSEEK_API_KEY"); v != "" {
		s.DeepSeekAPIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		s.GeminiAPIKey = v
	}
	if v := os.Getenv("TUBESUM_BACKEND"); v != "" {
		s.Backend = v
	}
	if v := os.Getenv("TUBESUM_OLLAMA_URL"); v != "" {
		s.OllamaURL = v
	}

	// Explicit flags beat everything
	if o.Backend != "" {
		s.Backend = o.Backend
	}
	if o.APIKey != "" {
		s.DeepSeekAPIKey = o.APIKey
	}
	if o.OllamaModel != "" {
		s.OllamaModel = o.OllamaModel
	}
	if o.ChunkDuration > 0 {
		s.ChunkDuration = o.ChunkDuration
	}
	if o.OverlapDuration > 0 {
		s.OverlapDuration = o.OverlapDuration
	}
	if o.SummaryChunkSize > 0 {
		s.SummaryChunkSize = o.SummaryChunkSize
	}

	return s
}
