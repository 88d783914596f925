package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
)

const (
	// DefaultChunkDuration is the audio chunk length in seconds for long files
	DefaultChunkDuration = 300
	// DefaultOverlapDuration is the overlap between audio chunks in seconds
	DefaultOverlapDuration = 30
	// HistoryLimit caps the stored link history
	HistoryLimit = 50
)

// HistoryEntry is one remembered video link, most recent first.
type HistoryEntry struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
}

// Config is the persisted user configuration.
// History mutations and Save hold an internal lock so watch mode can record
// finished jobs from concurrent handlers.
type Config struct {
	mu sync.Mutex

	DeepSeekAPIKey   string         `json:"deepseek_api_key"`
	GeminiAPIKey     string         `json:"gemini_api_key"`
	Backend          string         `json:"backend"`
	DeepSeekModel    string         `json:"deepseek_model"`
	OllamaModel      string         `json:"ollama_model"`
	OllamaURL        string         `json:"ollama_url"`
	GeminiModel      string         `json:"gemini_model"`
	WhisperBin       string         `json:"whisper_bin"`
	WhisperModel     string         `json:"whisper_model"`
	Language         string         `json:"language"`
	ChunkDuration    int            `json:"chunk_duration"`
	OverlapDuration  int            `json:"overlap_duration"`
	SummaryChunkSize int            `json:"summary_chunk_size"`
	LinkHistory      []HistoryEntry `json:"link_history"`
}

// Default returns a Config with built-in defaults applied.
func Default() *Config {
	return &Config{
		Backend:          "extractive",
		DeepSeekModel:    "deepseek-chat",
		OllamaModel:      "vicuna:7b",
		OllamaURL:        "http://localhost:11434",
		GeminiModel:      "gemini-2.5-flash",
		WhisperBin:       "whisper-cli",
		WhisperModel:     "models/ggml-base.en.bin",
		Language:         "en",
		ChunkDuration:    DefaultChunkDuration,
		OverlapDuration:  DefaultOverlapDuration,
		SummaryChunkSize: 0, // 0 means no summary chunking
	}
}

// Path returns the per-user config file location.
func Path() (string, error) {
	return xdg.ConfigFile(filepath.Join("tubesum", "config.json"))
}

// Load reads the config from the default per-user path.
// A missing file yields defaults, not an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.normalize()
	return cfg, nil
}

// Save writes the config to the default per-user path.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to an explicit path, creating parent dirs.
func (c *Config) SaveTo(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	// 0600: the file can hold API keys
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// normalize fills zero values with defaults so partial files stay usable.
func (c *Config) normalize() {
	def := Default()

	if c.Backend == "" {
		c.Backend = def.Backend
	}
	if c.DeepSeekModel == "" {
		c.DeepSeekModel = def.DeepSeekModel
	}
	if c.OllamaModel == "" {
		c.OllamaModel = def.OllamaModel
	}
	if c.OllamaURL == "" {
		c.OllamaURL = def.OllamaURL
	}
	if c.GeminiModel == "" {
		c.GeminiModel = def.GeminiModel
	}
	if c.WhisperBin == "" {
		c.WhisperBin = def.WhisperBin
	}
	if c.WhisperModel == "" {
		c.WhisperModel = def.WhisperModel
	}
	if c.Language == "" {
		c.Language = def.Language
	}
	if c.ChunkDuration <= 0 {
		c.ChunkDuration = def.ChunkDuration
	}
	if c.OverlapDuration < 0 {
		c.OverlapDuration = def.OverlapDuration
	}
	if c.OverlapDuration >= c.ChunkDuration {
		c.OverlapDuration = def.OverlapDuration
	}
	if c.SummaryChunkSize < 0 {
		c.SummaryChunkSize = 0
	}
	if len(c.LinkHistory) > HistoryLimit {
		c.LinkHistory = c.LinkHistory[:HistoryLimit]
	}
}
