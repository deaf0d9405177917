package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/nguyentantai21042004/video-summarizer/internal/config"
	"github.com/nguyentantai21042004/video-summarizer/internal/generator"
	"github.com/nguyentantai21042004/video-summarizer/internal/images"
	"github.com/nguyentantai21042004/video-summarizer/internal/jobs"
	"github.com/nguyentantai21042004/video-summarizer/internal/logger"
	"github.com/nguyentantai21042004/video-summarizer/internal/media"
	"github.com/nguyentantai21042004/video-summarizer/internal/results"
	"github.com/nguyentantai21042004/video-summarizer/internal/transcriber"
	"github.com/nguyentantai21042004/video-summarizer/pkg/executor"
)

// NewManager wires the pipeline stages from cfg into a job manager. The
// returned close function releases the job store.
func NewManager(ctx context.Context, cfg *config.Config, exec executor.Executor, log logger.Logger) (*jobs.Manager, func() error, error) {
	provider, err := generator.NewProvider(cfg.LLM, log)
	if err != nil {
		return nil, nil, fmt.Errorf("create LLM provider: %w", err)
	}

	store, err := jobs.NewStore(ctx, cfg.Jobs)
	if err != nil {
		return nil, nil, fmt.Errorf("create job store: %w", err)
	}

	deps := jobs.Dependencies{
		Fetcher:     media.New(cfg, exec, log),
		Transcriber: transcriber.New(cfg, exec, log),
		Generator:   generator.New(provider, cfg.LLM, log),
		Extractor:   images.NewExtractor(cfg.Images, log),
		Analyzer:    images.NewAnalyzer(cfg.Paths.StaticImages, log),
		Results:     results.NewAssembler(cfg.Paths.Outputs, cfg.Paths.StaticImages, log),
	}

	closeStore := func() error {
		if c, ok := store.(io.Closer); ok {
			return c.Close()
		}
		return nil
	}

	log.Info(ctx, "LLM provider: %s, job store: %s", provider.Name(), cfg.Jobs.Store)
	return jobs.NewManager(store, deps, jobs.OptionsFromConfig(cfg), log), closeStore, nil
}

// EnsureDirectories creates the working directories if they don't exist.
func EnsureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Outputs,
		cfg.Paths.Uploads,
		cfg.Paths.StaticImages,
		cfg.Paths.Temp,
	}
	if cfg.Paths.Inbox != "" {
		dirs = append(dirs, cfg.Paths.Inbox)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
