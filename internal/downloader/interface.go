package downloader

import (
	"context"
	"errors"
)

var (
	// ErrNoSubtitles means the video has no caption track to reuse
	ErrNoSubtitles = errors.New("no subtitles available for this video")
	// ErrBinaryNotFound means a required external tool is missing from PATH
	ErrBinaryNotFound = errors.New("required binary not found")
)

// Downloader fetches video metadata, caption tracks and audio via yt-dlp
type Downloader interface {
	// Title returns the video title, or "Unknown Title" when it cannot be read
	Title(ctx context.Context, url string) string

	// Subtitles fetches the caption track and returns it as plain text.
	// Returns ErrNoSubtitles when the video has no usable track.
	Subtitles(ctx context.Context, url, dir string) (string, error)

	// Audio downloads the video's audio as an mp3 file and returns its path
	Audio(ctx context.Context, url, dir string) (string, error)

	// CheckBinaries verifies the external tools this downloader needs
	CheckBinaries(ctx context.Context) error
}
