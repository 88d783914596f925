package downloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const titleTimeout = 30 * time.Second

// Title extracts the video title using yt-dlp --get-title.
// Failures degrade to a placeholder so a job never dies on metadata.
func (d *implDownloader) Title(ctx context.Context, url string) string {
	out, err := d.executor.ExecuteTimeout(ctx, titleTimeout, "yt-dlp", "--get-title", "--no-warnings", url)
	if err != nil {
		d.logger.Warn(ctx, "Could not read video title: %v", err)
		return "Unknown Title"
	}

	title := strings.TrimSpace(out)
	if title == "" {
		return "Unknown Title"
	}
	return title
}

// Subtitles downloads the auto/caption track as SRT and converts it to plain
// text. The intermediate SRT file is removed before returning.
func (d *implDownloader) Subtitles(ctx context.Context, url, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	// Timestamp in the output template keeps concurrent runs apart
	stamp := time.Now().Format("20060102_150405")
	template := filepath.Join(dir, "%(title)s_"+stamp+".%(ext)s")

	args := []string{
		"--write-auto-subs",
		"--sub-langs", d.language,
		"--sub-format", "srt",
		"--skip-download",
		"--ignore-errors",
		"-o", template,
		url,
	}

	d.logger.Info(ctx, "Fetching subtitles: %s", url)
	if _, err := d.executor.Execute(ctx, "yt-dlp", args...); err != nil {
		return "", fmt.Errorf("yt-dlp subtitles: %w", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*_"+stamp+"."+d.language+".srt"))
	if err != nil {
		return "", fmt.Errorf("locate subtitle file: %w", err)
	}
	if len(matches) == 0 {
		return "", ErrNoSubtitles
	}

	srtPath := matches[0]
	data, err := os.ReadFile(srtPath)
	if err != nil {
		return "", fmt.Errorf("read subtitle file: %w", err)
	}

	if err := os.Remove(srtPath); err != nil {
		d.logger.Warn(ctx, "Failed to remove subtitle file %s: %v", srtPath, err)
	}

	text := SRTToText(string(data))
	if strings.TrimSpace(text) == "" {
		return "", ErrNoSubtitles
	}

	d.logger.Info(ctx, "Subtitles fetched: %d characters", len(text))
	return text, nil
}

// Audio downloads the video's audio track as mp3 and returns the file path.
func (d *implDownloader) Audio(ctx context.Context, url, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	stamp := time.Now().Format("20060102_150405")
	template := filepath.Join(dir, "%(title)s_"+stamp+".%(ext)s")

	args := []string{
		"--extract-audio",
		"--audio-format", "mp3",
		"-o", template,
		url,
	}

	d.logger.Info(ctx, "Downloading audio: %s", url)
	if _, err := d.executor.Execute(ctx, "yt-dlp", args...); err != nil {
		return "", fmt.Errorf("yt-dlp audio: %w", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*_"+stamp+".mp3"))
	if err != nil {
		return "", fmt.Errorf("locate audio file: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("downloaded mp3 file not found in %s", dir)
	}

	d.logger.Info(ctx, "Audio downloaded: %s", matches[0])
	return matches[0], nil
}

// CheckBinaries verifies yt-dlp and ffmpeg/ffprobe are installed.
func (d *implDownloader) CheckBinaries(ctx context.Context) error {
	for _, bin := range []string{"yt-dlp", "ffmpeg", "ffprobe"} {
		if err := d.executor.LookPath(bin); err != nil {
			return fmt.Errorf("%w: %s", ErrBinaryNotFound, bin)
		}
	}
	return nil
}
