package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tubesum/tubesum/internal/config"
)

type configFlags struct {
	apiKey           string
	geminiAPIKey     string
	backend          string
	ollamaModel      string
	chunkDuration    int
	overlapDuration  int
	summaryChunkSize int
	show             bool
}

func newConfigCommand() *cobra.Command {
	var cf configFlags

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change stored settings",
		Example: `  tubesum config --show
  tubesum config --set-api-key sk-...
  tubesum config --set-backend ollama --set-chunk-duration 240`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			changed := applyConfigFlags(cmd, &cf, cfg)
			if changed {
				if err := cfg.Save(); err != nil {
					return fmt.Errorf("save config: %w", err)
				}
				fmt.Println("Configuration saved")
			}

			if cf.show || !changed {
				printConfig(cfg)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cf.apiKey, "set-api-key", "", "Store the DeepSeek API key")
	cmd.Flags().StringVar(&cf.geminiAPIKey, "set-gemini-api-key", "", "Store the Gemini API key")
	cmd.Flags().StringVar(&cf.backend, "set-backend", "", "Store the default summary backend")
	cmd.Flags().StringVar(&cf.ollamaModel, "set-ollama-model", "", "Store the default Ollama model")
	cmd.Flags().IntVar(&cf.chunkDuration, "set-chunk-duration", 0, "Store the default audio chunk duration (seconds)")
	cmd.Flags().IntVar(&cf.overlapDuration, "set-overlap-duration", 0, "Store the default chunk overlap (seconds)")
	cmd.Flags().IntVar(&cf.summaryChunkSize, "set-summary-chunk-size", 0, "Store the default summary chunk size (words)")
	cmd.Flags().BoolVar(&cf.show, "show", false, "Print the current configuration")

	return cmd
}

// applyConfigFlags copies every flag the user actually set into cfg and
// reports whether anything changed.
func applyConfigFlags(cmd *cobra.Command, cf *configFlags, cfg *config.Config) bool {
	changed := false

	if cmd.Flags().Changed("set-api-key") {
		cfg.DeepSeekAPIKey = cf.apiKey
		changed = true
	}
	if cmd.Flags().Changed("set-gemini-api-key") {
		cfg.GeminiAPIKey = cf.geminiAPIKey
		changed = true
	}
	if cmd.Flags().Changed("set-backend") {
		cfg.Backend = cf.backend
		changed = true
	}
	if cmd.Flags().Changed("set-ollama-model") {
		cfg.OllamaModel = cf.ollamaModel
		changed = true
	}
	if cmd.Flags().Changed("set-chunk-duration") {
		cfg.ChunkDuration = cf.chunkDuration
		changed = true
	}
	if cmd.Flags().Changed("set-overlap-duration") {
		cfg.OverlapDuration = cf.overlapDuration
		changed = true
	}
	if cmd.Flags().Changed("set-summary-chunk-size") {
		cfg.SummaryChunkSize = cf.summaryChunkSize
		changed = true
	}

	return changed
}

func printConfig(cfg *config.Config) {
	path, _ := config.Path()
	fmt.Printf("Config file: %s\n\n", path)
	fmt.Printf("  backend:             %s\n", cfg.Backend)
	fmt.Printf("  deepseek_api_key:    %s\n", maskKey(cfg.DeepSeekAPIKey))
	fmt.Printf("  gemini_api_key:      %s\n", maskKey(cfg.GeminiAPIKey))
	fmt.Printf("  deepseek_model:      %s\n", cfg.DeepSeekModel)
	fmt.Printf("  ollama_model:        %s\n", cfg.OllamaModel)
	fmt.Printf("  ollama_url:          %s\n", cfg.OllamaURL)
	fmt.Printf("  gemini_model:        %s\n", cfg.GeminiModel)
	fmt.Printf("  whisper_bin:         %s\n", cfg.WhisperBin)
	fmt.Printf("  whisper_model:       %s\n", cfg.WhisperModel)
	fmt.Printf("  language:            %s\n", cfg.Language)
	fmt.Printf("  chunk_duration:      %d\n", cfg.ChunkDuration)
	fmt.Printf("  overlap_duration:    %d\n", cfg.OverlapDuration)
	fmt.Printf("  summary_chunk_size:  %d\n", cfg.SummaryChunkSize)
	fmt.Printf("  link_history:        %d entries\n", len(cfg.LinkHistory))
}

// maskKey hides all but the key's last four characters.
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
