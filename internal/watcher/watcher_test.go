package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/tubesum/tubesum/internal/logger"
)

func TestParseLinks(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"one per line", "https://youtu.be/a\nhttps://youtu.be/b\n", 2},
		{"blank lines skipped", "\n\nhttps://youtu.be/a\n\n", 1},
		{"comments skipped", "# queue\nhttps://youtu.be/a\n", 1},
		{"empty file", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLinks(tt.content); len(got) != tt.want {
				t.Errorf("ParseLinks() = %v, want %d links", got, tt.want)
			}
		})
	}
}

func TestIsLinkFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"queue.txt", true},
		{"video.URL", true},
		{"clip.mp4", false},
		{"noext", false},
	}

	for _, tt := range tests {
		if got := isLinkFile(tt.path); got != tt.want {
			t.Errorf("isLinkFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcherHandlesDroppedFile(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var handled []string
	done := make(chan struct{}, 4)

	handler := func(ctx context.Context, url string) error {
		mu.Lock()
		handled = append(handled, url)
		mu.Unlock()
		done <- struct{}{}
		return nil
	}

	w, err := New(dir, handler, logger.NewQuiet(), 2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(ctx) }()

	// Let the watch loop come up before dropping the file
	time.Sleep(100 * time.Millisecond)

	content := "https://youtu.be/one\nhttps://youtu.be/two\n"
	if err := os.WriteFile(filepath.Join(dir, "queue.txt"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for jobs")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if len(handled) != 2 {
		t.Fatalf("handled %d urls, want 2: %v", len(handled), handled)
	}

	// Consumed file must be gone
	if _, err := os.Stat(filepath.Join(dir, "queue.txt")); !os.IsNotExist(err) {
		t.Error("dropped file should be removed after processing")
	}

	cancel()
	select {
	case <-errCh:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}
