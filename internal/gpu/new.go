package gpu

import (
	"github.com/nguyentantai21042004/video-summarizer/internal/logger"
	"github.com/nguyentantai21042004/video-summarizer/pkg/executor"
)

const defaultBinary = "nvidia-smi"

type implProber struct {
	binary   string
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Prober backed by nvidia-smi.
func New(exec executor.Executor, log logger.Logger) Prober {
	return &implProber{
		binary:   defaultBinary,
		executor: exec,
		logger:   log,
	}
}
