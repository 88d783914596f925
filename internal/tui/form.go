package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/tubesum/tubesum/internal/config"
)

// JobInput is what the interactive form collects before a run.
type JobInput struct {
	URL             string
	Backend         string
	ForceTranscribe bool
	DocxExport      bool
}

// RunForm collects job parameters interactively. Recent links from the
// config history show up as URL suggestions.
func RunForm(cfg *config.Config) (*JobInput, error) {
	input := &JobInput{Backend: cfg.Backend}

	suggestions := make([]string, 0, len(cfg.LinkHistory))
	for _, e := range cfg.LinkHistory {
		suggestions = append(suggestions, e.URL)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("YouTube URL").
				Placeholder("https://www.youtube.com/watch?v=...").
				Suggestions(suggestions).
				Value(&input.URL).
				Validate(validateURL),

			huh.NewSelect[string]().
				Title("Summary backend").
				Options(
					huh.NewOption("Extractive (offline, deterministic)", "extractive"),
					huh.NewOption("DeepSeek (hosted API)", "deepseek"),
					huh.NewOption("Ollama (local server)", "ollama"),
					huh.NewOption("Gemini (hosted API)", "gemini"),
				).
				Value(&input.Backend),

			huh.NewConfirm().
				Title("Force audio transcription?").
				Description("Skip existing captions and always run speech recognition").
				Value(&input.ForceTranscribe),

			huh.NewConfirm().
				Title("Also export a .docx copy?").
				Value(&input.DocxExport),
		),
	)

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("job form: %w", err)
	}
	return input, nil
}

func validateURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("a URL is required")
	}
	if !strings.Contains(s, "youtube.com") && !strings.Contains(s, "youtu.be") {
		return fmt.Errorf("expected a YouTube link")
	}
	return nil
}
