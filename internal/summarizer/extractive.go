package summarizer

import (
	"context"
	"sort"
	"strings"
)

// implExtractive ranks existing sentences by word frequency and keeps the
// highest scoring ones in their original order. Fully deterministic and
// offline; identical input always yields identical output.
type implExtractive struct{}

func newExtractive() *implExtractive {
	return &implExtractive{}
}

func (s *implExtractive) Name() string {
	return "extractive"
}

func (s *implExtractive) Summarize(ctx context.Context, text string) (string, error) {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return "", ErrEmptyTranscript
	}

	// Word frequencies over the whole text, stopwords excluded,
	// normalized by the most frequent word
	freq := make(map[string]float64)
	for _, sentence := range sentences {
		for _, word := range tokenize(sentence) {
			freq[word]++
		}
	}

	var maxFreq float64
	for _, f := range freq {
		if f > maxFreq {
			maxFreq = f
		}
	}
	if maxFreq == 0 {
		maxFreq = 1
	}
	for w := range freq {
		freq[w] /= maxFreq
	}

	// Score each sentence as the sum of its word scores
	type scored struct {
		index int
		score float64
	}
	scores := make([]scored, len(sentences))
	for i, sentence := range sentences {
		var total float64
		for _, word := range tokenize(sentence) {
			total += freq[word]
		}
		scores[i] = scored{index: i, score: total}
	}

	// Keep roughly a third of the sentences, at least three.
	// Ties break toward earlier sentences so the output is stable.
	target := len(sentences) / 3
	if target < 3 {
		target = 3
	}
	if target > len(sentences) {
		target = len(sentences)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].score != scores[j].score {
			return scores[i].score > scores[j].score
		}
		return scores[i].index < scores[j].index
	})

	selected := make([]int, 0, target)
	for _, s := range scores[:target] {
		selected = append(selected, s.index)
	}
	sort.Ints(selected)

	picked := make([]string, 0, len(selected))
	for _, i := range selected {
		picked = append(picked, sentences[i])
	}
	return strings.Join(picked, " "), nil
}

// tokenize lowercases a sentence and strips punctuation and stopwords.
func tokenize(sentence string) []string {
	fields := strings.Fields(strings.ToLower(sentence))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.TrimFunc(f, func(r rune) bool {
			return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
		})
		if w == "" || stopwords[w] {
			continue
		}
		words = append(words, w)
	}
	return words
}

var stopwords = map[string]bool{
	"a": true, "about": true, "above": true, "after": true, "again": true,
	"all": true, "am": true, "an": true, "and": true, "any": true,
	"are": true, "as": true, "at": true, "be": true, "because": true,
	"been": true, "before": true, "being": true, "below": true, "between": true,
	"both": true, "but": true, "by": true, "can": true, "did": true,
	"do": true, "does": true, "doing": true, "down": true, "during": true,
	"each": true, "few": true, "for": true, "from": true, "further": true,
	"had": true, "has": true, "have": true, "having": true, "he": true,
	"her": true, "here": true, "hers": true, "him": true, "his": true,
	"how": true, "i": true, "if": true, "in": true, "into": true,
	"is": true, "it": true, "its": true, "just": true, "me": true,
	"more": true, "most": true, "my": true, "no": true, "nor": true,
	"not": true, "now": true, "of": true, "off": true, "on": true,
	"once": true, "only": true, "or": true, "other": true, "our": true,
	"out": true, "over": true, "own": true, "same": true, "she": true,
	"so": true, "some": true, "such": true, "than": true, "that": true,
	"the": true, "their": true, "them": true, "then": true, "there": true,
	"these": true, "they": true, "this": true, "those": true, "through": true,
	"to": true, "too": true, "under": true, "until": true, "up": true,
	"very": true, "was": true, "we": true, "were": true, "what": true,
	"when": true, "where": true, "which": true, "while": true, "who": true,
	"whom": true, "why": true, "will": true, "with": true, "you": true,
	"your": true, "yours": true,
}
