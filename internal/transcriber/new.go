package transcriber

import (
	"github.com/tubesum/tubesum/internal/logger"
	"github.com/tubesum/tubesum/pkg/executor"
)

// Options configures the external recognizer and the chunking policy.
type Options struct {
	WhisperBin      string
	WhisperModel    string
	Language        string
	ChunkDuration   int // seconds
	OverlapDuration int // seconds
}

type implTranscriber struct {
	executor executor.Executor
	logger   logger.Logger
	opts     Options
}

// New creates a Transcriber around a whisper.cpp style CLI.
func New(exec executor.Executor, log logger.Logger, opts Options) Transcriber {
	if opts.WhisperBin == "" {
		opts.WhisperBin = "whisper-cli"
	}
	if opts.Language == "" {
		opts.Language = "en"
	}
	if opts.ChunkDuration <= 0 {
		opts.ChunkDuration = 300
	}
	if opts.OverlapDuration < 0 || opts.OverlapDuration >= opts.ChunkDuration {
		opts.OverlapDuration = 0
	}

	return &implTranscriber{
		executor: exec,
		logger:   log,
		opts:     opts,
	}
}
