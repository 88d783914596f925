package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/tubesum/tubesum/internal/config"
	"github.com/tubesum/tubesum/internal/downloader"
	"github.com/tubesum/tubesum/internal/logger"
	"github.com/tubesum/tubesum/internal/pipeline"
	"github.com/tubesum/tubesum/internal/summarizer"
	"github.com/tubesum/tubesum/internal/transcriber"
	"github.com/tubesum/tubesum/pkg/executor"
)

type rootFlags struct {
	outputDir        string
	backend          string
	ollamaModel      string
	forceTranscribe  bool
	chunkDuration    int
	overlapDuration  int
	summaryChunkSize int
	docx             bool
	apiKey           string
	promptFile       string
	verbose          bool
}

var flags rootFlags

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tubesum [URL]",
		Short: "Summarize YouTube videos into markdown digests",
		Long: `tubesum downloads a video's captions (or its audio, transcribed with a
local speech recognition tool), summarizes the transcript with a pluggable
backend and writes a single markdown digest.`,
		Example: `  # Summarize offline with extractive ranking
  tubesum "https://www.youtube.com/watch?v=tAP1eZYEuKA"

  # Use the DeepSeek API, chunking long transcripts
  tubesum -b deepseek --summary-chunk-size 2000 "https://youtu.be/tAP1eZYEuKA"

  # Always transcribe, even when captions exist
  tubesum --force-transcribe "https://youtu.be/tAP1eZYEuKA"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(cmd.Context(), args[0])
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.outputDir, "output-dir", "o", "", "Output directory (default: per-user data dir)")
	pf.StringVarP(&flags.backend, "backend", "b", "", "Summary backend: deepseek, ollama, gemini or extractive")
	pf.StringVar(&flags.ollamaModel, "ollama-model", "", "Ollama model name")
	pf.BoolVar(&flags.forceTranscribe, "force-transcribe", false, "Transcribe audio even when captions exist")
	pf.IntVar(&flags.chunkDuration, "chunk-duration", 0, "Audio chunk duration in seconds for long files")
	pf.IntVar(&flags.overlapDuration, "overlap-duration", 0, "Overlap between audio chunks in seconds")
	pf.IntVar(&flags.summaryChunkSize, "summary-chunk-size", 0, "Summary chunk size in words (0 disables chunking)")
	pf.BoolVar(&flags.docx, "docx", false, "Also export the summary as a .docx file")
	pf.StringVar(&flags.apiKey, "api-key", "", "DeepSeek API key for this run")
	pf.StringVar(&flags.promptFile, "prompt-file", "", "YAML file with custom prompt templates")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newHistoryCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newTUICommand())

	return rootCmd
}

// Execute runs the CLI; the process exit code is the caller's business.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// runJob executes one pipeline run for the given URL.
func runJob(ctx context.Context, url string) error {
	if err := validateURL(url); err != nil {
		return err
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

	fmt.Printf("Summary saved to: %s\n", result.MarkdownPath)
	if result.DocxPath != "" {
		fmt.Printf("Docx saved to:    %s\n", result.DocxPath)
	}
	return nil
}

func newLogger() logger.Logger {
	if flags.verbose {
		return logger.New("debug")
	}
	return logger.New("info")
}

// loadSettings loads the stored config and folds flag/env overrides in.
func loadSettings() (*config.Config, config.Settings, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, config.Settings{}, fmt.Errorf("load config: %w", err)
	}

	settings := cfg.Resolve(config.Overrides{
		Backend:          flags.backend,
		APIKey:           flags.apiKey,
		OllamaModel:      flags.ollamaModel,
		ChunkDuration:    flags.chunkDuration,
		OverlapDuration:  flags.overlapDuration,
		SummaryChunkSize: flags.summaryChunkSize,
		PromptFile:       flags.promptFile,
	})
	return cfg, settings, nil
}

// newPipeline wires executor, downloader, transcriber and summarizer.
func newPipeline(settings config.Settings, log logger.Logger, progress pipeline.ProgressFunc) (pipeline.Pipeline, error) {
	exec := executor.New()

	sum, err := summarizer.New(settings, log)
	if err != nil {
		return nil, err
	}

	dl := downloader.New(exec, log, settings.Language)
	tr := transcriber.New(exec, log, transcriber.Options{
		WhisperBin:      settings.WhisperBin,
		WhisperModel:    settings.WhisperModel,
		Language:        settings.Language,
		ChunkDuration:   settings.ChunkDuration,
		OverlapDuration: settings.OverlapDuration,
	})

	return pipeline.New(dl, tr, sum, log, progress), nil
}

func outputDir() string {
	if flags.outputDir != "" {
		return flags.outputDir
	}
	return filepath.Join(xdg.DataHome, "tubesum", "summaries")
}

// recordHistory saves the finished link, logging instead of failing the job.
func recordHistory(ctx context.Context, log logger.Logger, cfg *config.Config, url, title string) {
	cfg.AddHistory(url, title)
	if err := cfg.Save(); err != nil {
		log.Warn(ctx, "Could not save link history: %v", err)
	}
}

func validateURL(url string) error {
	if !strings.Contains(url, "youtube.com") && !strings.Contains(url, "youtu.be") {
		return fmt.Errorf("%q does not look like a YouTube URL", url)
	}
	return nil
}
