package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const maxTitleLen = 80

// writeMarkdown assembles and writes the summary artifact, returning its
// path. Colliding filenames get a numeric suffix instead of overwriting.
func writeMarkdown(dir, title, url, backend, summary string) (string, error) {
	stamp := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("%s_%s.md", sanitizeTitle(title), stamp)

	path, err := uniquePath(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "_Source: %s_\n\n", url)
	fmt.Fprintf(&b, "_Summarized with %s on %s_\n\n", backend, time.Now().Format("2006-01-02 15:04"))
	b.WriteString(strings.TrimSpace(summary))
	b.WriteString("\n")

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// sanitizeTitle keeps filename-safe characters and replaces runs of
// everything else with single underscores.
func sanitizeTitle(title string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}

	clean := strings.Trim(b.String(), "_")
	if clean == "" {
		clean = "video"
	}
	if len(clean) > maxTitleLen {
		clean = clean[:maxTitleLen]
	}
	return clean
}

// uniquePath returns path, or path with a _2, _3... suffix when taken.
// Two jobs for the same title within the same second must not overwrite
// each other.
func uniquePath(path string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 2; i < 1000; i++ {
		candidate := fmt.Sprintf("%s_%d%s", base, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not find a free filename for %s", path)
}
