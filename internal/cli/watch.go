package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tubesum/tubesum/internal/pipeline"
	"github.com/tubesum/tubesum/internal/watcher"
)

func newWatchCommand() *cobra.Command {
	var maxConcurrent int

	cmd := &cobra.Command{
		Use:   "watch DIR",
		Short: "Watch a directory for link files and summarize every URL",
		Long: `watch monitors DIR for new .txt or .url files. Each file may hold one
URL per line; blank lines and lines starting with # are skipped. Consumed
files are removed. Stop with Ctrl-C.`,
		Example: `  tubesum watch ~/Drop
  tubesum watch --max-concurrent 4 -b deepseek ~/Drop`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), args[0], maxConcurrent)
		},
	}

	cmd.Flags().IntVar(&maxConcurrent, "max-concurrent", 2, "Videos to process at the same time")

	return cmd
}

func runWatch(ctx context.Context, dir string, maxConcurrent int) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("drop directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	log := newLogger()
	cfg, settings, err := loadSettings()
	if err != nil {
		return err
	}

	p, err := newPipeline(settings, log, nil)
	if err != nil {
		return err
	}

	handler := func(ctx context.Context, url string) error {
		if err := validateURL(url); err != nil {
			return err
		}

		result, err := p.Run(ctx, pipeline.Job{
			URL:             url,
			OutputDir:       outputDir(),
			ForceTranscribe: flags.forceTranscribe,
			DocxExport:      flags.docx,
		})
		if err != nil {
			return err
		}

		recordHistory(ctx, log, cfg, url, result.Title)
		log.Info(ctx, "Summary saved to %s", result.MarkdownPath)
		return nil
	}

	w, err := watcher.New(dir, handler, log, maxConcurrent)
	if err != nil {
		return err
	}
	defer w.Stop()

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
