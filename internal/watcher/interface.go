package watcher

import "context"

// Watcher monitors a drop directory for files containing video links
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// JobHandler runs the pipeline for one URL found in a dropped file
type JobHandler func(ctx context.Context, url string) error
