package downloader

import (
	"github.com/tubesum/tubesum/internal/logger"
	"github.com/tubesum/tubesum/pkg/executor"
)

type implDownloader struct {
	executor executor.Executor
	logger   logger.Logger
	language string
}

// New creates a Downloader for caption tracks in the given language.
func New(exec executor.Executor, log logger.Logger, language string) Downloader {
	if language == "" {
		language = "en"
	}
	return &implDownloader{
		executor: exec,
		logger:   log,
		language: language,
	}
}
