package summarizer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/tubesum/tubesum/internal/logger"
)

var reSentenceEnd = regexp.MustCompile(`(?:[.!?])\s+`)

// SplitSentences breaks text at sentence-ending punctuation followed by
// whitespace, keeping the punctuation with the sentence.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	rest := text
	for {
		loc := reSentenceEnd.FindStringIndex(rest)
		if loc == nil {
			break
		}
		sentences = append(sentences, strings.TrimSpace(rest[:loc[0]+1]))
		rest = rest[loc[1]:]
	}
	if s := strings.TrimSpace(rest); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// ChunkWords splits text into chunks of at most chunkSize words, breaking at
// sentence boundaries. A sentence longer than chunkSize becomes its own chunk.
func ChunkWords(text string, chunkSize int) []string {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil
	}
	if chunkSize <= 0 {
		return []string{strings.Join(sentences, " ")}
	}

	var chunks []string
	var current []string
	words := 0

	for _, sentence := range sentences {
		n := len(strings.Fields(sentence))
		if words+n > chunkSize && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = []string{sentence}
			words = n
			continue
		}
		current = append(current, sentence)
		words += n
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}

// implChunked summarizes long transcripts window by window. Backends with a
// combining prompt get a final merge pass; the rest keep the per-part layout.
type implChunked struct {
	inner  Summarizer
	size   int
	logger logger.Logger
}

func (c *implChunked) Name() string {
	return c.inner.Name() + " (chunked)"
}

func (c *implChunked) Summarize(ctx context.Context, text string) (string, error) {
	chunks := ChunkWords(text, c.size)
	if len(chunks) == 0 {
		return "", ErrEmptyTranscript
	}
	if len(chunks) == 1 {
		return c.inner.Summarize(ctx, text)
	}

	c.logger.Info(ctx, "Summarizing transcript in %d chunks of ~%d words", len(chunks), c.size)

	var combined strings.Builder
	for i, chunk := range chunks {
		c.logger.Info(ctx, "Summarizing chunk %d/%d (%d words)", i+1, len(chunks), len(strings.Fields(chunk)))

		summary, err := c.inner.Summarize(ctx, chunk)
		if err != nil {
			return "", fmt.Errorf("summarize chunk %d/%d: %w", i+1, len(chunks), err)
		}
		fmt.Fprintf(&combined, "## Part %d\n\n%s\n\n", i+1, strings.TrimSpace(summary))
	}

	if cb, ok := c.inner.(combiner); ok {
		c.logger.Info(ctx, "Combining %d chunk summaries", len(chunks))
		return cb.Combine(ctx, combined.String())
	}

	// Backends without a combining prompt keep the per-part layout; feeding
	// the headed concatenation back through them would rank heading text.
	return strings.TrimSpace(combined.String()), nil
}

// combiner is implemented by LLM backends that carry a dedicated prompt for
// merging per-chunk summaries.
type combiner interface {
	Combine(ctx context.Context, text string) (string, error)
}
