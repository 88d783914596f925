package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tubesum/tubesum/internal/config"
	"github.com/tubesum/tubesum/internal/downloader"
	"github.com/tubesum/tubesum/internal/logger"
	"github.com/tubesum/tubesum/internal/summarizer"
)

type fakeDownloader struct {
	title         string
	subtitles     string
	subtitlesErr  error
	audioErr      error
	audioCalls    int
	subtitleCalls int
}

func (f *fakeDownloader) Title(ctx context.Context, url string) string {
	if f.title == "" {
		return "Unknown Title"
	}
	return f.title
}

func (f *fakeDownloader) Subtitles(ctx context.Context, url, dir string) (string, error) {
	f.subtitleCalls++
	if f.subtitlesErr != nil {
		return "", f.subtitlesErr
	}
	return f.subtitles, nil
}

func (f *fakeDownloader) Audio(ctx context.Context, url, dir string) (string, error) {
	f.audioCalls++
	if f.audioErr != nil {
		return "", f.audioErr
	}
	path := filepath.Join(dir, "audio.mp3")
	return path, os.WriteFile(path, []byte("mp3"), 0o644)
}

func (f *fakeDownloader) CheckBinaries(ctx context.Context) error { return nil }

type fakeTranscriber struct {
	text  string
	calls int
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	f.calls++
	return f.text, nil
}

func (f *fakeTranscriber) CheckBinary(ctx context.Context) error { return nil }

func extractive(t *testing.T) summarizer.Summarizer {
	t.Helper()
	s, err := summarizer.New(config.Settings{Backend: "extractive"}, logger.NewQuiet())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRunUsesSubtitlesFirst(t *testing.T) {
	dl := &fakeDownloader{title: "Talk", subtitles: "Hello world. This is a test."}
	tr := &fakeTranscriber{text: "should not be used"}

	p := New(dl, tr, extractive(t), logger.NewQuiet(), nil)

	result, err := p.Run(context.Background(), Job{URL: "https://youtu.be/x", OutputDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if tr.calls != 0 {
		t.Errorf("transcriber invoked %d times despite available subtitles", tr.calls)
	}
	if dl.audioCalls != 0 {
		t.Errorf("audio downloaded %d times despite available subtitles", dl.audioCalls)
	}
	if !result.UsedSubtitles {
		t.Error("result should report subtitles were used")
	}
}

func TestRunForceTranscribeSkipsSubtitles(t *testing.T) {
	dl := &fakeDownloader{title: "Talk", subtitles: "caption text here."}
	tr := &fakeTranscriber{text: "Transcribed speech. It has sentences. Three of them."}

	p := New(dl, tr, extractive(t), logger.NewQuiet(), nil)

	result, err := p.Run(context.Background(), Job{
		URL: "https://youtu.be/x", OutputDir: t.TempDir(), ForceTranscribe: true,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if dl.subtitleCalls != 0 {
		t.Errorf("subtitles fetched %d times despite --force-transcribe", dl.subtitleCalls)
	}
	if tr.calls != 1 {
		t.Errorf("transcriber calls = %d, want 1", tr.calls)
	}
	if result.UsedSubtitles {
		t.Error("result should not report subtitles")
	}
}

func TestRunFallsBackToTranscription(t *testing.T) {
	dl := &fakeDownloader{title: "Talk", subtitlesErr: downloader.ErrNoSubtitles}
	tr := &fakeTranscriber{text: "Fallback transcript. With several sentences. Just enough."}

	p := New(dl, tr, extractive(t), logger.NewQuiet(), nil)

	if _, err := p.Run(context.Background(), Job{URL: "https://youtu.be/x", OutputDir: t.TempDir()}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if tr.calls != 1 {
		t.Errorf("transcriber calls = %d, want 1", tr.calls)
	}
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	dl := &fakeDownloader{title: "Demo Video", subtitles: "Hello world. This is a test."}
	tr := &fakeTranscriber{}

	var stages []string
	progress := func(stage, _ string) { stages = append(stages, stage) }

	p := New(dl, tr, extractive(t), logger.NewQuiet(), progress)

	result, err := p.Run(context.Background(), Job{URL: "https://youtu.be/x", OutputDir: dir})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("output dir holds %d files, want exactly 1 markdown artifact", len(entries))
	}

	data, err := os.ReadFile(result.MarkdownPath)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	if !strings.HasPrefix(content, "# Demo Video") {
		t.Errorf("markdown should start with the title header:\n%s", content)
	}
	if !strings.Contains(content, "https://youtu.be/x") {
		t.Error("markdown should carry the source URL")
	}
	if !strings.Contains(content, "Hello world.") && !strings.Contains(content, "This is a test.") {
		t.Errorf("summary should keep at least one source sentence:\n%s", content)
	}

	if len(stages) == 0 || stages[0] != "check" {
		t.Errorf("progress stages = %v", stages)
	}
}

func TestRunCollisionGetsSuffix(t *testing.T) {
	dir := t.TempDir()
	dl := &fakeDownloader{title: "Same Title", subtitles: "Hello world. This is a test."}

	p := New(dl, &fakeTranscriber{}, extractive(t), logger.NewQuiet(), nil)
	ctx := context.Background()
	job := Job{URL: "https://youtu.be/x", OutputDir: dir}

	first, err := p.Run(ctx, job)
	if err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	second, err := p.Run(ctx, job)
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if first.MarkdownPath == second.MarkdownPath {
		t.Fatalf("second run overwrote the first artifact: %s", first.MarkdownPath)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 2 {
		t.Errorf("output dir holds %d files, want 2", len(entries))
	}
}

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"plain title", "My Video", "My_Video"},
		{"punctuation collapses", "Go: The Movie!!! (2024)", "Go_The_Movie_2024"},
		{"unicode replaced", "«Видео»", "video"},
		{"empty becomes placeholder", "!!!", "video"},
		{"hyphen kept", "intro-to-go", "intro-to-go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeTitle(tt.title); got != tt.want {
				t.Errorf("sanitizeTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestSanitizeTitleCapsLength(t *testing.T) {
	long := strings.Repeat("a", 500)
	if got := sanitizeTitle(long); len(got) != maxTitleLen {
		t.Errorf("len = %d, want %d", len(sanitizeTitle(long)), maxTitleLen)
	}
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.md")

	got, err := uniquePath(path)
	if err != nil || got != path {
		t.Fatalf("uniquePath() = %q, %v; want original path", got, err)
	}

	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err = uniquePath(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(dir, "out_2.md") {
		t.Errorf("uniquePath() = %q, want out_2.md", got)
	}
}
