package images

import (
	"github.com/nguyentantai21042004/video-summarizer/internal/config"
	"github.com/nguyentantai21042004/video-summarizer/internal/logger"
)

type implAnalyzer struct {
	staticDir string
	logger    logger.Logger
}

// NewAnalyzer creates an Analyzer publishing into staticDir.
func NewAnalyzer(staticDir string, log logger.Logger) Analyzer {
	return &implAnalyzer{staticDir: staticDir, logger: log}
}

type implExtractor struct {
	minDimension int
	resizeFactor float64
	logger       logger.Logger
}

// NewExtractor creates an Extractor dropping images smaller than
// cfg.MinDimension and scaling the rest by cfg.ResizeFactor.
func NewExtractor(cfg config.ImagesConfig, log logger.Logger) Extractor {
	return &implExtractor{
		minDimension: cfg.MinDimension,
		resizeFactor: cfg.ResizeFactor,
		logger:       log,
	}
}
