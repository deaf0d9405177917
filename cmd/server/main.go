package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/nguyentantai21042004/video-summarizer/internal/api"
	"github.com/nguyentantai21042004/video-summarizer/internal/api/handler"
	mw "github.com/nguyentantai21042004/video-summarizer/internal/api/middleware"
	"github.com/nguyentantai21042004/video-summarizer/internal/app"
	"github.com/nguyentantai21042004/video-summarizer/internal/config"
	"github.com/nguyentantai21042004/video-summarizer/internal/gpu"
	"github.com/nguyentantai21042004/video-summarizer/internal/logger"
	"github.com/nguyentantai21042004/video-summarizer/internal/watcher"
	"github.com/nguyentantai21042004/video-summarizer/pkg/executor"
)

const shutdownTimeout = 30 * time.Second

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadFromEnvironment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format, os.Stdout)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Video Summarizer")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "CPU Cores: %d", runtime.NumCPU())

	if err := app.EnsureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	// Initialize dependencies
	exec := executor.New()
	manager, closeStore, err := app.NewManager(ctx, cfg, exec, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize job manager: %v", err)
		os.Exit(1)
	}
	defer closeStore()

	prober := gpu.New(exec, log)
	if st := prober.Status(ctx); st.Available {
		log.Info(ctx, "GPU: %s (%d device(s))", st.Name, len(st.Devices))
	} else {
		log.Info(ctx, "GPU: %s (%s)", st.Name, st.Message)
	}

	h := handler.New(manager, prober, handler.Config{
		UploadDir:      cfg.Paths.Uploads,
		MaxUploadBytes: int64(cfg.Server.MaxUploadMB) << 20,
		ImageDir:       cfg.Paths.StaticImages,
	}, log)

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: api.NewRouter(api.Dependencies{
			Handler:     h,
			RateLimit:   mw.NewRateLimit(cfg.Server.RateLimitPerMinute, cfg.Server.RateLimitBurst),
			CORSOrigins: cfg.Server.CORSOrigins,
			Logger:      log,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       5 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 2)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server: %w", err)
		}
	}()

	if cfg.Paths.Inbox != "" {
		w, err := watcher.New(cfg.Paths.Inbox, manager, watcher.Options{}, log)
		if err != nil {
			log.Error(ctx, "Failed to create inbox watcher: %v", err)
			os.Exit(1)
		}
		defer w.Stop()

		go func() {
			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errChan <- fmt.Errorf("inbox watcher: %w", err)
			}
		}()
	}

	log.Info(ctx, "========================================")
	log.Info(ctx, "Video Summarizer is ready!")
	log.Info(ctx, "Listening: http://localhost:%d", cfg.Server.Port)
	log.Info(ctx, "Outputs: %s", cfg.Paths.Outputs)
	if cfg.Paths.Inbox != "" {
		log.Info(ctx, "Inbox: %s", cfg.Paths.Inbox)
	}
	log.Info(ctx, "")
	log.Info(ctx, "Settings:")
	log.Info(ctx, "  - Whisper: %s model, %d threads", cfg.Whisper.DefaultModel, cfg.Whisper.Threads)
	log.Info(ctx, "  - LLM: %s", llmLabel(cfg.LLM))
	log.Info(ctx, "  - Jobs: %d concurrent, %d accelerator slot(s), capacity %d",
		cfg.Jobs.MaxConcurrent, cfg.Jobs.AcceleratorSlots, cfg.Jobs.Capacity)
	log.Info(ctx, "  - Allowed sites: %s", strings.Join(cfg.Server.AllowedDomains, ", "))
	log.Info(ctx, "")
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "%v", err)
	}

	// Graceful shutdown
	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "HTTP server shutdown: %v", err)
	}
	if err := manager.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "Job manager shutdown: %v", err)
	}

	log.Info(shutdownCtx, "Video Summarizer stopped")
}

func llmLabel(cfg config.LLMConfig) string {
	switch cfg.Provider {
	case "gemini":
		return fmt.Sprintf("gemini (%s, %d key(s))", cfg.Gemini.Model, len(cfg.Gemini.APIKeys))
	default:
		return fmt.Sprintf("ollama (%s at %s)", cfg.Ollama.Model, cfg.Ollama.Host)
	}
}
