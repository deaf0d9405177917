package media

import (
	"github.com/nguyentantai21042004/video-summarizer/internal/config"
	"github.com/nguyentantai21042004/video-summarizer/internal/logger"
	"github.com/nguyentantai21042004/video-summarizer/pkg/executor"
)

type implFetcher struct {
	ytdlp    config.YtDlpConfig
	ffprobe  string
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Fetcher backed by the yt-dlp and ffprobe binaries.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Fetcher {
	return &implFetcher{
		ytdlp:    cfg.YtDlp,
		ffprobe:  cfg.FFmpeg.ProbePath,
		executor: exec,
		logger:   log,
	}
}
