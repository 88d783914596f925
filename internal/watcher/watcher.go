package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Start blocks, queueing a pipeline job for every link found in files
// dropped into the watched directory. Returns when ctx is done.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Watching %s for link files (max %d concurrent jobs)", w.dropDir, w.maxConcurrent)

	defer w.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isLinkFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring %s", event.Name)
				continue
			}

			// Give the writer a moment to finish the file
			time.Sleep(500 * time.Millisecond)

			urls, err := w.consume(event.Name)
			if err != nil {
				w.logger.Error(ctx, "Failed to read %s: %v", event.Name, err)
				continue
			}

			for _, url := range urls {
				if err := w.dispatch(ctx, url); err != nil {
					return err
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the underlying file watcher.
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// dispatch runs the handler for one URL under the concurrency bound.
func (w *implWatcher) dispatch(ctx context.Context, url string) error {
	select {
	case w.semaphore <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	w.logger.Info(ctx, "Queued job for %s", url)
	w.wg.Add(1)
	go func(url string) {
		defer w.wg.Done()
		defer func() { <-w.semaphore }()

		if err := w.handler(ctx, url); err != nil {
			w.logger.Error(ctx, "Job failed for %s: %v", url, err)
		}
	}(url)
	return nil
}

// consume reads the dropped file's links and removes the file so it is not
// processed twice.
func (w *implWatcher) consume(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := os.Remove(path); err != nil {
		return nil, fmt.Errorf("remove consumed file: %w", err)
	}

	return ParseLinks(string(data)), nil
}

// ParseLinks extracts one URL per non-empty, non-comment line.
func ParseLinks(content string) []string {
	var urls []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		urls = append(urls, trimmed)
	}
	return urls
}

func isLinkFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".url":
		return true
	}
	return false
}
