package summarizer

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Prompts holds the instruction templates sent to LLM backends.
// Templates use a {content} placeholder for the transcript text.
type Prompts struct {
	Summary string `yaml:"summary"`
	Combine string `yaml:"combine"`
}

const defaultSummaryPrompt = `Please provide a comprehensive summary of the following transcribed content.
Focus on the main points, key insights, and important details. Make sure not to omit details:

{content}

Summary:`

const defaultCombinePrompt = `The following are summaries of consecutive parts of one video transcript.
Combine them into a single coherent markdown summary. Keep all details; remove only repetition:

{content}

Combined summary:`

// DefaultPrompts returns the built-in templates.
func DefaultPrompts() Prompts {
	return Prompts{
		Summary: defaultSummaryPrompt,
		Combine: defaultCombinePrompt,
	}
}

// LoadPrompts reads a YAML prompt file, falling back to defaults for any
// template the file leaves empty. An empty path returns the defaults.
func LoadPrompts(path string) (Prompts, error) {
	prompts := DefaultPrompts()
	if path == "" {
		return prompts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return prompts, fmt.Errorf("read prompt file %s: %w", path, err)
	}

	var loaded Prompts
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return prompts, fmt.Errorf("parse prompt file %s: %w", path, err)
	}

	if strings.TrimSpace(loaded.Summary) != "" {
		prompts.Summary = loaded.Summary
	}
	if strings.TrimSpace(loaded.Combine) != "" {
		prompts.Combine = loaded.Combine
	}
	return prompts, nil
}

// render substitutes the transcript into a template.
func render(template, content string) string {
	if !strings.Contains(template, "{content}") {
		return template + "\n\n" + content
	}
	return strings.ReplaceAll(template, "{content}", content)
}
