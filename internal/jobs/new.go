package jobs

import (
	"context"
	"fmt"
	"sync"

	"github.com/nguyentantai21042004/video-summarizer/internal/config"
	"github.com/nguyentantai21042004/video-summarizer/internal/generator"
	"github.com/nguyentantai21042004/video-summarizer/internal/images"
	"github.com/nguyentantai21042004/video-summarizer/internal/logger"
	"github.com/nguyentantai21042004/video-summarizer/internal/media"
	"github.com/nguyentantai21042004/video-summarizer/internal/results"
	"github.com/nguyentantai21042004/video-summarizer/internal/transcriber"
)

// ResultWriter persists the files of a finished job.
type ResultWriter interface {
	Save(ctx context.Context, b results.Bundle) (results.Manifest, error)
	OutputDir() string
}

// Dependencies are the pipeline stages a Manager drives.
type Dependencies struct {
	Fetcher     media.Fetcher
	Transcriber transcriber.Transcriber
	Generator   generator.Generator
	Extractor   images.Extractor
	Analyzer    images.Analyzer
	Results     ResultWriter
}

// Options tune admission and the pipeline.
type Options struct {
	AllowedDomains   []string
	DefaultModel     string
	MaxConcurrent    int
	AcceleratorSlots int
	MaxImages        int
	TempDir          string
}

// OptionsFromConfig extracts the manager options from the app config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		AllowedDomains:   cfg.Server.AllowedDomains,
		DefaultModel:     cfg.Whisper.DefaultModel,
		MaxConcurrent:    cfg.Jobs.MaxConcurrent,
		AcceleratorSlots: cfg.Jobs.AcceleratorSlots,
		MaxImages:        cfg.Images.MaxImages,
		TempDir:          cfg.Paths.Temp,
	}
}

// NewStore builds the job store selected by cfg.Store.
func NewStore(ctx context.Context, cfg config.JobsConfig) (Store, error) {
	switch cfg.Store {
	case "", "memory":
		return NewMemoryStore(cfg.Capacity), nil
	case "redis":
		return NewRedisStore(ctx, cfg.RedisURL, cfg.Retention)
	default:
		return nil, fmt.Errorf("unknown job store %q", cfg.Store)
	}
}

// Manager owns the job table and runs one worker goroutine per job.
type Manager struct {
	store  Store
	deps   Dependencies
	opts   Options
	logger logger.Logger

	workers     *semaphore
	accelerator *semaphore

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewManager creates a Manager. Workers run under a context that is only
// cancelled by Shutdown.
func NewManager(store Store, deps Dependencies, opts Options, log logger.Logger) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		store:       store,
		deps:        deps,
		opts:        opts,
		logger:      log,
		workers:     newSemaphore(opts.MaxConcurrent),
		accelerator: newSemaphore(opts.AcceleratorSlots),
		baseCtx:     ctx,
		cancel:      cancel,
	}
}
