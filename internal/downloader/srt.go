package downloader

import "strings"

// SRTToText strips sequence numbers and timestamp lines from SRT content and
// joins the remaining dialogue lines with single spaces.
func SRTToText(srt string) string {
	lines := strings.Split(srt, "\n")
	textLines := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isDigits(trimmed) || strings.Contains(trimmed, "-->") {
			continue
		}
		textLines = append(textLines, trimmed)
	}

	return strings.Join(textLines, " ")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
