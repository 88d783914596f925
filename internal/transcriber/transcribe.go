package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Transcribe converts the audio file to text. Files longer than the chunk
// duration are split into overlapping windows, transcribed independently and
// joined with naive overlap deduplication.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	wavPath, err := t.convertToWAV(ctx, audioPath)
	if err != nil {
		return "", fmt.Errorf("convert audio: %w", err)
	}
	defer t.removeTemp(ctx, wavPath)

	dur, err := t.duration(ctx, wavPath)
	if err != nil {
		return "", fmt.Errorf("probe duration: %w", err)
	}
	t.logger.Info(ctx, "Audio duration: %.2fs", dur)

	chunk := float64(t.opts.ChunkDuration)
	overlap := float64(t.opts.OverlapDuration)

	if dur <= chunk {
		t.logger.Info(ctx, "Transcribing in a single pass")
		return t.recognize(ctx, wavPath)
	}

	windows := Windows(dur, chunk, overlap)
	t.logger.Info(ctx, "Transcribing %.2fs audio in %d windows (%.0fs chunk, %.0fs overlap)",
		dur, len(windows), chunk, overlap)

	parts := make([]string, 0, len(windows))
	for i, w := range windows {
		t.logger.Info(ctx, "Window %d/%d (%.2fs - %.2fs)", i+1, len(windows), w.Start, w.End)

		chunkPath, err := t.cutWindow(ctx, wavPath, i, w.Start, w.End-w.Start)
		if err != nil {
			return "", fmt.Errorf("cut window %d: %w", i+1, err)
		}

		text, err := t.recognize(ctx, chunkPath)
		t.removeTemp(ctx, chunkPath)
		if err != nil {
			return "", fmt.Errorf("transcribe window %d: %w", i+1, err)
		}

		if text != "" {
			parts = append(parts, text)
		} else {
			t.logger.Warn(ctx, "Window %d produced empty transcription", i+1)
		}
	}

	joined := joinChunks(parts)
	t.logger.Info(ctx, "Combined transcript: %d characters from %d windows", len(joined), len(parts))
	return joined, nil
}

// recognize runs the whisper CLI on one WAV file and returns the text output.
func (t *implTranscriber) recognize(ctx context.Context, wavPath string) (string, error) {
	prefix := strings.TrimSuffix(wavPath, filepath.Ext(wavPath))

	args := []string{
		"-m", t.opts.WhisperModel,
		"-f", wavPath,
		"-otxt",
		"-l", t.opts.Language,
		"--output-file", prefix,
	}

	if _, err := t.executor.Execute(ctx, t.opts.WhisperBin, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	txtPath := prefix + ".txt"
	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("read transcription output: %w", err)
	}
	t.removeTemp(ctx, txtPath)

	return strings.TrimSpace(string(data)), nil
}

// CheckBinary verifies the recognizer CLI is installed.
func (t *implTranscriber) CheckBinary(ctx context.Context) error {
	if err := t.executor.LookPath(t.opts.WhisperBin); err != nil {
		return fmt.Errorf("speech recognition tool unavailable: %w", err)
	}
	return nil
}

func (t *implTranscriber) removeTemp(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		t.logger.Warn(ctx, "Failed to remove temp file %s: %v", path, err)
	}
}
