package downloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/tubesum/tubesum/internal/logger"
)

type fakeExecutor struct {
	calls   [][]string
	run     func(name string, args []string) (string, error)
	missing map[string]bool
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.run != nil {
		return f.run(name, args)
	}
	return "", nil
}

func (f *fakeExecutor) ExecuteTimeout(ctx context.Context, _ time.Duration, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func (f *fakeExecutor) LookPath(name string) error {
	if f.missing[name] {
		return fmt.Errorf("binary '%s' not found in PATH", name)
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

const sampleSRT = `1
00:00:00,000 --> 00:00:02,500
Hello world.

2
00:00:02,500 --> 00:00:05,000
This is a test.
`

func TestSRTToText(t *testing.T) {
	tests := []struct {
		name string
		srt  string
		want string
	}{
		{"basic track", sampleSRT, "Hello world. This is a test."},
		{"empty input", "", ""},
		{"timestamps only", "1\n00:00:00,000 --> 00:00:01,000\n", ""},
		{"windows line endings", "1\r\n00:00:00,000 --> 00:00:01,000\r\nHi there.\r\n", "Hi there."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SRTToText(tt.srt); got != tt.want {
				t.Errorf("SRTToText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTitle(t *testing.T) {
	log := logger.NewQuiet()

	t.Run("returns trimmed title", func(t *testing.T) {
		exec := &fakeExecutor{run: func(name string, args []string) (string, error) {
			return "My Great Video\n", nil
		}}
		d := New(exec, log, "en")

		if got := d.Title(context.Background(), "https://youtu.be/x"); got != "My Great Video" {
			t.Errorf("Title() = %q, want %q", got, "My Great Video")
		}
	})

	t.Run("falls back on failure", func(t *testing.T) {
		exec := &fakeExecutor{run: func(name string, args []string) (string, error) {
			return "", errors.New("network down")
		}}
		d := New(exec, log, "en")

		if got := d.Title(context.Background(), "https://youtu.be/x"); got != "Unknown Title" {
			t.Errorf("Title() = %q, want %q", got, "Unknown Title")
		}
	})
}

func TestSubtitles(t *testing.T) {
	log := logger.NewQuiet()

	t.Run("converts and removes the srt file", func(t *testing.T) {
		dir := t.TempDir()
		exec := &fakeExecutor{}
		exec.run = func(name string, args []string) (string, error) {
			template := flagValue(args, "-o")
			path := strings.ReplaceAll(template, "%(title)s", "My Video")
			path = strings.ReplaceAll(path, ".%(ext)s", ".en.srt")
			return "", os.WriteFile(path, []byte(sampleSRT), 0o644)
		}
		d := New(exec, log, "en")

		text, err := d.Subtitles(context.Background(), "https://youtu.be/x", dir)
		if err != nil {
			t.Fatalf("Subtitles() error = %v", err)
		}
		if text != "Hello world. This is a test." {
			t.Errorf("Subtitles() = %q", text)
		}

		entries, _ := os.ReadDir(dir)
		if len(entries) != 0 {
			t.Errorf("srt file not cleaned up, %d entries left", len(entries))
		}
	})

	t.Run("no track yields ErrNoSubtitles", func(t *testing.T) {
		exec := &fakeExecutor{}
		d := New(exec, log, "en")

		_, err := d.Subtitles(context.Background(), "https://youtu.be/x", t.TempDir())
		if !errors.Is(err, ErrNoSubtitles) {
			t.Errorf("Subtitles() error = %v, want ErrNoSubtitles", err)
		}
	})

	t.Run("yt-dlp failure propagates", func(t *testing.T) {
		exec := &fakeExecutor{run: func(name string, args []string) (string, error) {
			return "", errors.New("exit status 1")
		}}
		d := New(exec, log, "en")

		_, err := d.Subtitles(context.Background(), "https://youtu.be/x", t.TempDir())
		if err == nil || errors.Is(err, ErrNoSubtitles) {
			t.Errorf("Subtitles() error = %v, want wrapped tool failure", err)
		}
	})
}

func TestAudio(t *testing.T) {
	log := logger.NewQuiet()

	t.Run("returns downloaded mp3 path", func(t *testing.T) {
		dir := t.TempDir()
		exec := &fakeExecutor{}
		exec.run = func(name string, args []string) (string, error) {
			template := flagValue(args, "-o")
			path := strings.ReplaceAll(template, "%(title)s", "My Video")
			path = strings.ReplaceAll(path, ".%(ext)s", ".mp3")
			return "", os.WriteFile(path, []byte("mp3"), 0o644)
		}
		d := New(exec, log, "en")

		path, err := d.Audio(context.Background(), "https://youtu.be/x", dir)
		if err != nil {
			t.Fatalf("Audio() error = %v", err)
		}
		if !strings.HasSuffix(path, ".mp3") {
			t.Errorf("Audio() path = %q", path)
		}
	})

	t.Run("missing output is an error", func(t *testing.T) {
		exec := &fakeExecutor{}
		d := New(exec, log, "en")

		if _, err := d.Audio(context.Background(), "https://youtu.be/x", t.TempDir()); err == nil {
			t.Error("Audio() should fail when no mp3 appears")
		}
	})
}

func TestCheckBinaries(t *testing.T) {
	log := logger.NewQuiet()

	t.Run("all present", func(t *testing.T) {
		d := New(&fakeExecutor{}, log, "en")
		if err := d.CheckBinaries(context.Background()); err != nil {
			t.Errorf("CheckBinaries() error = %v", err)
		}
	})

	t.Run("missing tool is named", func(t *testing.T) {
		d := New(&fakeExecutor{missing: map[string]bool{"ffmpeg": true}}, log, "en")
		err := d.CheckBinaries(context.Background())
		if !errors.Is(err, ErrBinaryNotFound) {
			t.Fatalf("CheckBinaries() error = %v, want ErrBinaryNotFound", err)
		}
		if !strings.Contains(err.Error(), "ffmpeg") {
			t.Errorf("error should name the missing binary: %v", err)
		}
	})
}
