package transcriber

import "strings"

// maxJoinOverlapWords caps how far the join looks for duplicated text at a
// chunk boundary. Overlap windows are short, so a large cap buys nothing.
const maxJoinOverlapWords = 40

// Window is one transcription slice of the source audio, in seconds.
type Window struct {
	Start float64
	End   float64
}

// Windows splits a duration into overlapping transcription slices.
// Slices start at multiples of (chunk - overlap); the last slice ends at the
// total duration. A duration at or under the chunk size yields one slice.
func Windows(duration, chunk, overlap float64) []Window {
	if duration <= 0 {
		return nil
	}
	if chunk <= 0 || duration <= chunk {
		return []Window{{Start: 0, End: duration}}
	}
	if overlap < 0 || overlap >= chunk {
		overlap = 0
	}

	step := chunk - overlap
	var windows []Window
	for start := 0.0; start < duration; start += step {
		end := start + chunk
		if end >= duration {
			end = duration
		}
		windows = append(windows, Window{Start: start, End: end})
		if end >= duration {
			break
		}
	}
	return windows
}

// joinChunks concatenates per-chunk transcripts, dropping from each chunk's
// head the longest word run that repeats the previous chunk's tail. Audio
// overlap makes the recognizer re-emit boundary words; this is a text-level
// heuristic, not an alignment.
func joinChunks(parts []string) string {
	var words []string

	for _, part := range parts {
		next := strings.Fields(part)
		if len(next) == 0 {
			continue
		}
		if len(words) > 0 {
			next = next[overlapLen(words, next):]
		}
		words = append(words, next...)
	}

	return strings.Join(words, " ")
}

// overlapLen returns the longest k such that the last k words of prev equal
// the first k words of next, capped at maxJoinOverlapWords.
func overlapLen(prev, next []string) int {
	max := maxJoinOverlapWords
	if len(prev) < max {
		max = len(prev)
	}
	if len(next) < max {
		max = len(next)
	}

	for k := max; k > 0; k-- {
		match := true
		for i := 0; i < k; i++ {
			if !strings.EqualFold(prev[len(prev)-k+i], next[i]) {
				match = false
				break
			}
		}
		if match {
			return k
		}
	}
	return 0
}
