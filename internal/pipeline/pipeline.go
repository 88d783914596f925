package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tubesum/tubesum/internal/downloader"
	"github.com/tubesum/tubesum/internal/summarizer"
)

// Run executes the full job: subtitles first, audio transcription as the
// fallback, then summarization and a single markdown artifact. Intermediate
// files are deleted whether or not the job succeeds.
func (p *implPipeline) Run(ctx context.Context, job Job) (*Result, error) {
	start := time.Now()

	p.progress("check", "Checking external tools")
	if err := p.downloader.CheckBinaries(ctx); err != nil {
		return nil, fmt.Errorf("dependency check: %w", err)
	}

	if err := os.MkdirAll(job.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	p.progress("title", "Reading video title")
	title := p.downloader.Title(ctx, job.URL)
	p.logger.Info(ctx, "Video title: %s", title)

	transcript, usedSubtitles, err := p.transcript(ctx, job)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(transcript) == "" {
		return nil, fmt.Errorf("transcription produced no text")
	}

	p.progress("summarize", fmt.Sprintf("Summarizing with %s", p.summarizer.Name()))
	summary, err := p.summarizer.Summarize(ctx, transcript)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	p.progress("write", "Writing markdown summary")
	mdPath, err := writeMarkdown(job.OutputDir, title, job.URL, p.summarizer.Name(), summary)
	if err != nil {
		return nil, fmt.Errorf("write summary: %w", err)
	}

	result := &Result{
		Title:         title,
		MarkdownPath:  mdPath,
		Backend:       p.summarizer.Name(),
		UsedSubtitles: usedSubtitles,
		Elapsed:       time.Since(start),
	}

	if job.DocxExport {
		p.progress("export", "Exporting docx copy")
		docxPath := strings.TrimSuffix(mdPath, ".md") + ".docx"
		if err := summarizer.WriteDocx(title, summary, docxPath); err != nil {
			p.logger.Warn(ctx, "Docx export failed: %v", err)
		} else {
			result.DocxPath = docxPath
		}
	}

	p.logger.Info(ctx, "Job finished in %s: %s", result.Elapsed.Round(time.Second), mdPath)
	return result, nil
}

// transcript obtains the transcript text, preferring an existing caption
// track unless the job forces audio transcription.
func (p *implPipeline) transcript(ctx context.Context, job Job) (string, bool, error) {
	if !job.ForceTranscribe {
		p.progress("subtitles", "Looking for an existing caption track")
		text, err := p.downloader.Subtitles(ctx, job.URL, job.OutputDir)
		if err == nil {
			p.logger.Info(ctx, "Using existing subtitles (%d characters)", len(text))
			return text, true, nil
		}
		if !errors.Is(err, downloader.ErrNoSubtitles) {
			return "", false, fmt.Errorf("fetch subtitles: %w", err)
		}
		p.logger.Info(ctx, "No subtitles available, falling back to audio transcription")
	}

	if err := p.transcriber.CheckBinary(ctx); err != nil {
		return "", false, fmt.Errorf("dependency check: %w", err)
	}

	p.progress("download", "Downloading audio")
	audioPath, err := p.downloader.Audio(ctx, job.URL, job.OutputDir)
	if err != nil {
		return "", false, fmt.Errorf("download audio: %w", err)
	}
	defer func() {
		if err := os.Remove(audioPath); err != nil && !os.IsNotExist(err) {
			p.logger.Warn(ctx, "Failed to remove audio file %s: %v", audioPath, err)
		}
	}()

	p.progress("transcribe", "Transcribing audio")
	text, err := p.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return "", false, fmt.Errorf("transcribe: %w", err)
	}
	return text, false, nil
}
