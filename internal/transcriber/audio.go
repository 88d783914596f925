package transcriber

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// convertToWAV converts the input audio to 16kHz mono WAV, the input format
// the recognizer expects.
func (t *implTranscriber) convertToWAV(ctx context.Context, audioPath string) (string, error) {
	wavPath := strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + ".wav"

	t.logger.Info(ctx, "Converting audio to 16kHz mono WAV: %s", audioPath)

	args := []string{
		"-i", audioPath,
		"-ac", "1",
		"-ar", "16000",
		"-y",
		wavPath,
	}

	if _, err := t.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("ffmpeg convert to wav: %w", err)
	}

	return wavPath, nil
}

// duration reads the audio duration in seconds via ffprobe.
func (t *implTranscriber) duration(ctx context.Context, audioPath string) (float64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		audioPath,
	}

	out, err := t.executor.Execute(ctx, "ffprobe", args...)
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w", err)
	}

	dur, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", strings.TrimSpace(out), err)
	}
	return dur, nil
}

// cutWindow writes the [start, start+length) slice of wavPath to a new file.
func (t *implTranscriber) cutWindow(ctx context.Context, wavPath string, index int, start, length float64) (string, error) {
	chunkPath := fmt.Sprintf("%s_chunk_%d.wav", strings.TrimSuffix(wavPath, ".wav"), index)

	args := []string{
		"-i", wavPath,
		"-ss", fmt.Sprintf("%.2f", start),
		"-t", fmt.Sprintf("%.2f", length),
		"-y",
		chunkPath,
	}

	if _, err := t.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("ffmpeg cut chunk %d: %w", index, err)
	}
	return chunkPath, nil
}
