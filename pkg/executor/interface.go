package executor

import (
	"context"
	"time"
)

// Executor defines the interface for running external tools (yt-dlp, ffmpeg, whisper)
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	ExecuteTimeout(ctx context.Context, timeout time.Duration, name string, args ...string) (string, error)
	LookPath(name string) error
}
