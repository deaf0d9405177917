package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/nguyentantai21042004/video-summarizer/internal/app"
	"github.com/nguyentantai21042004/video-summarizer/internal/config"
	"github.com/nguyentantai21042004/video-summarizer/internal/jobs"
	"github.com/nguyentantai21042004/video-summarizer/internal/logger"
	"github.com/nguyentantai21042004/video-summarizer/pkg/executor"
)

const pollInterval = time.Second

type options struct {
	configPath  string
	model       string
	ollamaModel string
	outputDir   string
	contentType string
	sections    string
	transcript  string
	title       string
	file        string
	pdf         string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "config file (default: $CONFIG_PATH or config.yaml)")
	flag.StringVar(&opts.model, "model", "", "Whisper model size (default from config, turbo)")
	flag.StringVar(&opts.ollamaModel, "ollama-model", "", "Ollama model for content generation")
	flag.StringVar(&opts.outputDir, "output-dir", "", "output directory")
	flag.StringVar(&opts.contentType, "content-type", "summary", "summary or study_material")
	flag.StringVar(&opts.sections, "study-sections", "", "comma separated study sections")
	flag.StringVar(&opts.transcript, "transcript", "", "summarize this transcript file instead of a URL")
	flag.StringVar(&opts.title, "title", "", "title for -transcript (generated when empty)")
	flag.StringVar(&opts.file, "file", "", "transcribe this local audio or video file instead of a URL")
	flag.StringVar(&opts.pdf, "pdf", "", "PDF to extract illustrations from")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [video-url]\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(opts, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options, url string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	log := logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

	req, err := buildRequest(opts, url)
	if err != nil {
		return err
	}

	if err := app.EnsureDirectories(cfg); err != nil {
		return err
	}
	manager, closeStore, err := app.NewManager(ctx, cfg, executor.New(), log)
	if err != nil {
		return err
	}
	defer closeStore()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		manager.Shutdown(shutdownCtx)
	}()

	id, err := manager.Submit(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("Job %s started\n", id)

	view, err := waitForJob(ctx, manager, id)
	if err != nil {
		return err
	}
	if view.Status == jobs.StatusError {
		return errors.New(view.Error)
	}

	printResult(cfg.Paths.Outputs, view)
	return nil
}

func loadConfig(opts options) (*config.Config, error) {
	if opts.configPath != "" {
		os.Setenv("CONFIG_PATH", opts.configPath)
	}
	cfg, err := config.LoadFromEnvironment()
	if err != nil {
		return nil, err
	}
	if opts.ollamaModel != "" {
		cfg.LLM.Ollama.Model = opts.ollamaModel
	}
	if opts.outputDir != "" {
		cfg.Paths.Outputs = opts.outputDir
	}
	if opts.model != "" {
		cfg.Whisper.DefaultModel = opts.model
	}
	return cfg, nil
}

func buildRequest(opts options, url string) (jobs.Request, error) {
	req := jobs.Request{
		URL:         url,
		LocalFile:   opts.file,
		ContentType: opts.contentType,
		PDFPath:     opts.pdf,
	}
	if opts.sections != "" {
		for _, s := range strings.Split(opts.sections, ",") {
			if s = strings.TrimSpace(s); s != "" {
				req.Sections = append(req.Sections, s)
			}
		}
	}
	if opts.transcript != "" {
		data, err := os.ReadFile(opts.transcript)
		if err != nil {
			return req, fmt.Errorf("read transcript: %w", err)
		}
		req.Transcript = string(data)
		req.TranscriptTitle = opts.title
	}
	if req.LocalFile != "" {
		abs, err := filepath.Abs(req.LocalFile)
		if err != nil {
			return req, err
		}
		req.LocalFile = abs
	}
	return req, nil
}

// waitForJob polls the job, printing every status change, until it is done.
func waitForJob(ctx context.Context, m *jobs.Manager, id string) (*jobs.View, error) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	var last jobs.Status
	for {
		view, err := m.Status(ctx, id)
		if err != nil {
			return nil, err
		}
		if view.Status != last {
			fmt.Printf("[%3d%%] %s\n", view.Progress, view.Status)
			last = view.Status
		}
		if view.Status.Terminal() {
			return view, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func printResult(outputDir string, view *jobs.View) {
	if view.VideoInfo != nil {
		fmt.Printf("\nTitle: %s\n", view.VideoInfo.Title)
		fmt.Printf("Duration: %s\n", view.VideoInfo.DurationLabel())
	}
	if view.Result != nil && view.Result.Summary != "" {
		fmt.Printf("\nSUMMARY:\n%s\n", view.Result.Summary)
	}

	keys := make([]string, 0, len(view.Files))
	for k := range view.Files {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Println("\nFiles:")
	for _, k := range keys {
		fmt.Printf("  %-20s %s\n", k, filepath.Join(outputDir, view.Files[k]))
	}
}
