package pipeline

import (
	"github.com/tubesum/tubesum/internal/downloader"
	"github.com/tubesum/tubesum/internal/logger"
	"github.com/tubesum/tubesum/internal/summarizer"
	"github.com/tubesum/tubesum/internal/transcriber"
)

type implPipeline struct {
	downloader  downloader.Downloader
	transcriber transcriber.Transcriber
	summarizer  summarizer.Summarizer
	logger      logger.Logger
	progress    ProgressFunc
}

// New assembles a Pipeline. progress may be nil.
func New(d downloader.Downloader, t transcriber.Transcriber, s summarizer.Summarizer,
	log logger.Logger, progress ProgressFunc) Pipeline {
	if progress == nil {
		progress = func(string, string) {}
	}
	return &implPipeline{
		downloader:  d,
		transcriber: t,
		summarizer:  s,
		logger:      log,
		progress:    progress,
	}
}
