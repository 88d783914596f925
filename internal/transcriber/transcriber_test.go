package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tubesum/tubesum/internal/logger"
)

func TestWindows(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		chunk    float64
		overlap  float64
		want     []Window
	}{
		{
			name:     "spec boundary case 650/300/30",
			duration: 650, chunk: 300, overlap: 30,
			want: []Window{{0, 300}, {270, 570}, {540, 650}},
		},
		{
			name:     "short audio is one window",
			duration: 120, chunk: 300, overlap: 30,
			want: []Window{{0, 120}},
		},
		{
			name:     "exactly chunk sized",
			duration: 300, chunk: 300, overlap: 30,
			want: []Window{{0, 300}},
		},
		{
			name:     "zero overlap tiles exactly",
			duration: 600, chunk: 300, overlap: 0,
			want: []Window{{0, 300}, {300, 600}},
		},
		{
			name:     "overlap ge chunk is ignored",
			duration: 650, chunk: 300, overlap: 300,
			want: []Window{{0, 300}, {300, 600}, {600, 650}},
		},
		{
			name:     "zero duration",
			duration: 0, chunk: 300, overlap: 30,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Windows(tt.duration, tt.chunk, tt.overlap)
			if len(got) != len(tt.want) {
				t.Fatalf("Windows() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("window %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestWindowsCountMatchesCeil(t *testing.T) {
	// ceil((duration - overlap) / (chunk - overlap))
	got := Windows(650, 300, 30)
	if len(got) != 3 {
		t.Errorf("window count = %d, want 3", len(got))
	}
}

func TestJoinChunks(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{
			name:  "duplicated boundary words are dropped",
			parts: []string{"one two three four five", "four five six seven"},
			want:  "one two three four five six seven",
		},
		{
			name:  "no overlap joins with a space",
			parts: []string{"alpha beta", "gamma delta"},
			want:  "alpha beta gamma delta",
		},
		{
			name:  "case insensitive match",
			parts: []string{"Hello World", "world again"},
			want:  "Hello World again",
		},
		{
			name:  "empty parts are skipped",
			parts: []string{"start", "", "  ", "end"},
			want:  "start end",
		},
		{
			name:  "single part untouched",
			parts: []string{"just one chunk"},
			want:  "just one chunk",
		},
		{
			name:  "fully repeated chunk collapses",
			parts: []string{"a b c", "a b c"},
			want:  "a b c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinChunks(tt.parts); got != tt.want {
				t.Errorf("joinChunks() = %q, want %q", got, tt.want)
			}
		})
	}
}

// toolExecutor fakes ffmpeg/ffprobe/whisper with canned behavior.
type toolExecutor struct {
	durationSec  float64
	whisperRuns  int
	whisperText  func(run int) string
	lookPathErrs map[string]error
}

func (f *toolExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	switch name {
	case "ffprobe":
		return fmt.Sprintf("%.6f\n", f.durationSec), nil
	case "ffmpeg":
		// Output file is the last argument
		return "", os.WriteFile(args[len(args)-1], []byte("wav"), 0o644)
	default: // whisper CLI
		f.whisperRuns++
		prefix := flagValue(args, "--output-file")
		text := "hello from whisper"
		if f.whisperText != nil {
			text = f.whisperText(f.whisperRuns)
		}
		return "", os.WriteFile(prefix+".txt", []byte(text+"\n"), 0o644)
	}
}

func (f *toolExecutor) ExecuteTimeout(ctx context.Context, _ time.Duration, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func (f *toolExecutor) LookPath(name string) error {
	if err, ok := f.lookPathErrs[name]; ok {
		return err
	}
	return nil
}

func flagValue(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func TestTranscribeSinglePass(t *testing.T) {
	dir := t.TempDir()
	mp3 := filepath.Join(dir, "audio.mp3")
	if err := os.WriteFile(mp3, []byte("mp3"), 0o644); err != nil {
		t.Fatal(err)
	}

	exec := &toolExecutor{durationSec: 120}
	tr := New(exec, logger.NewQuiet(), Options{ChunkDuration: 300, OverlapDuration: 30})

	text, err := tr.Transcribe(context.Background(), mp3)
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if text != "hello from whisper" {
		t.Errorf("Transcribe() = %q", text)
	}
	if exec.whisperRuns != 1 {
		t.Errorf("whisper runs = %d, want 1", exec.whisperRuns)
	}
}

func TestTranscribeChunked(t *testing.T) {
	dir := t.TempDir()
	mp3 := filepath.Join(dir, "audio.mp3")
	if err := os.WriteFile(mp3, []byte("mp3"), 0o644); err != nil {
		t.Fatal(err)
	}

	exec := &toolExecutor{
		durationSec: 650,
		whisperText: func(run int) string {
			return fmt.Sprintf("part %d words", run)
		},
	}
	tr := New(exec, logger.NewQuiet(), Options{ChunkDuration: 300, OverlapDuration: 30})

	text, err := tr.Transcribe(context.Background(), mp3)
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if exec.whisperRuns != 3 {
		t.Errorf("whisper runs = %d, want 3", exec.whisperRuns)
	}
	want := "part 1 words part 2 words part 3 words"
	if text != want {
		t.Errorf("Transcribe() = %q, want %q", text, want)
	}

	// All intermediates removed alongside the mp3
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}
