package config

import (
	"time"

	"github.com/google/uuid"
)

// AddHistory records a link at the front of the history.
// An existing entry with the same URL is replaced so the list stays unique.
func (c *Config) AddHistory(url, title string) HistoryEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := HistoryEntry{
		ID:        uuid.NewString(),
		URL:       url,
		Title:     title,
		Timestamp: time.Now(),
	}

	kept := make([]HistoryEntry, 0, len(c.LinkHistory)+1)
	kept = append(kept, entry)
	for _, e := range c.LinkHistory {
		if e.URL == url {
			continue
		}
		kept = append(kept, e)
	}

	if len(kept) > HistoryLimit {
		kept = kept[:HistoryLimit]
	}
	c.LinkHistory = kept
	return entry
}

// RemoveHistory deletes the entry with the given ID.
// Returns false if no such entry exists.
func (c *Config) RemoveHistory(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, e := range c.LinkHistory {
		if e.ID == id {
			c.LinkHistory = append(c.LinkHistory[:i], c.LinkHistory[i+1:]...)
			return true
		}
	}
	return false
}

// ClearHistory drops all remembered links.
func (c *Config) ClearHistory() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.LinkHistory = nil
}
