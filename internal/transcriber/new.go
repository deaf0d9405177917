package transcriber

import (
	"github.com/nguyentantai21042004/video-summarizer/internal/config"
	"github.com/nguyentantai21042004/video-summarizer/internal/logger"
	"github.com/nguyentantai21042004/video-summarizer/pkg/executor"
)

type implTranscriber struct {
	whisper  config.WhisperConfig
	ffmpeg   config.FFmpegConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Transcriber that normalizes audio with ffmpeg and runs
// the whisper.cpp CLI.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Transcriber {
	return &implTranscriber{
		whisper:  cfg.Whisper,
		ffmpeg:   cfg.FFmpeg,
		executor: exec,
		logger:   log,
	}
}
