package pipeline

import (
	"context"
	"time"
)

// Job describes one transcription and summarization run.
type Job struct {
	URL             string
	OutputDir       string
	ForceTranscribe bool
	DocxExport      bool
}

// Result is what a finished job leaves behind.
type Result struct {
	Title         string
	MarkdownPath  string
	DocxPath      string
	Backend       string
	UsedSubtitles bool
	Elapsed       time.Duration
}

// ProgressFunc receives human readable stage updates while a job runs.
type ProgressFunc func(stage, message string)

// Pipeline sequences download, transcription and summarization for one job
type Pipeline interface {
	Run(ctx context.Context, job Job) (*Result, error)
}
