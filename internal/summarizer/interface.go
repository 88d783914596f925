package summarizer

import (
	"context"
	"errors"
)

var (
	// ErrMissingAPIKey means the selected backend needs a key that isn't set
	ErrMissingAPIKey = errors.New("API key not configured")
	// ErrOllamaNotRunning means the local Ollama server refused the connection
	ErrOllamaNotRunning = errors.New("ollama service is not running")
	// ErrEmptyTranscript means there is nothing to summarize
	ErrEmptyTranscript = errors.New("transcript is empty")
)

// Summarizer turns transcript text into a markdown summary
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
	Name() string
}
