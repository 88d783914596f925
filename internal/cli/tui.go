package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tubesum/tubesum/internal/downloader"
	"github.com/tubesum/tubesum/internal/logger"
	"github.com/tubesum/tubesum/internal/pipeline"
	"github.com/tubesum/tubesum/internal/summarizer"
	"github.com/tubesum/tubesum/internal/transcriber"
	"github.com/tubesum/tubesum/internal/tui"
	"github.com/tubesum/tubesum/pkg/executor"
)

func newTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Summarize interactively with a form and live progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context())
		},
	}
}

func runTUI(ctx context.Context) error {
	cfg, settings, err := loadSettings()
	if err != nil {
		return err
	}

	input, err := tui.RunForm(cfg)
	if err != nil {
		return err
	}
	if input.Backend != "" {
		settings.Backend = input.Backend
	}

	// Logging to stderr would tear up the live view.
	log := logger.NewQuiet()

	sum, err := summarizer.New(settings, log)
	if err != nil {
		return err
	}

	exec := executor.New()
	dl := downloader.New(exec, log, settings.Language)
	tr := transcriber.New(exec, log, transcriber.Options{
		WhisperBin:      settings.WhisperBin,
		WhisperModel:    settings.WhisperModel,
		Language:        settings.Language,
		ChunkDuration:   settings.ChunkDuration,
		OverlapDuration: settings.OverlapDuration,
	})

	job := pipeline.Job{
		URL:             input.URL,
		OutputDir:       outputDir(),
		ForceTranscribe: input.ForceTranscribe,
		DocxExport:      input.DocxExport,
	}

	result, err := tui.Run(ctx, job, func(progress pipeline.ProgressFunc) pipeline.Pipeline {
		return pipeline.New(dl, tr, sum, log, progress)
	})
	if err != nil {
		return err
	}

	recordHistory(ctx, log, cfg, input.URL, result.Title)

	fmt.Printf("Summary saved to: %s\n", result.MarkdownPath)
	if result.DocxPath != "" {
		fmt.Printf("Docx saved to:    %s\n", result.DocxPath)
	}
	return nil
}
