package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/video-summarizer/internal/jobs"
	"github.com/nguyentantai21042004/video-summarizer/internal/logger"
)

var mediaFormats = []string{
	".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v", ".flv",
	".mp3", ".wav", ".m4a", ".flac", ".ogg", ".opus",
}

const transcriptFormat = ".txt"

type implWatcher struct {
	inboxDir  string
	submitter Submitter
	opts      Options
	logger    logger.Logger
	watcher   *fsnotify.Watcher
}

// Start monitors the inbox until ctx is done. Transcripts become
// transcript jobs and media files become local-file jobs.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Inbox watcher started. Monitoring: %s", w.inboxDir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Inbox watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if kindOf(event.Name) == kindIgnored {
				w.logger.Debug(ctx, "Ignoring inbox file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New inbox file detected: %s", event.Name)

			select {
			case <-time.After(w.opts.SettleDelay):
			case <-ctx.Done():
				return ctx.Err()
			}

			if err := w.ingest(ctx, event.Name); err != nil {
				w.logger.Error(ctx, "Failed to ingest %s: %v", event.Name, err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

type fileKind int

const (
	kindIgnored fileKind = iota
	kindTranscript
	kindMedia
)

func kindOf(path string) fileKind {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return kindIgnored
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == transcriptFormat:
		return kindTranscript
	case slices.Contains(mediaFormats, ext):
		return kindMedia
	default:
		return kindIgnored
	}
}

// ingest submits one inbox file. A PDF with the same stem next to it is
// attached for image extraction.
func (w *implWatcher) ingest(ctx context.Context, path string) error {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	req := jobs.Request{
		ContentType: w.opts.ContentType,
		Sections:    w.opts.Sections,
		PDFPath:     sidecarPDF(path),
	}

	switch kindOf(path) {
	case kindTranscript:
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read transcript: %w", err)
		}
		req.Transcript = string(data)
		req.TranscriptTitle = stem
	case kindMedia:
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		req.LocalFile = abs
	default:
		return nil
	}

	id, err := w.submitter.Submit(ctx, req)
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	w.logger.Info(logger.WithJobID(ctx, id), "Inbox file %s queued", filepath.Base(path))
	return nil
}

func sidecarPDF(path string) string {
	p := strings.TrimSuffix(path, filepath.Ext(path)) + ".pdf"
	if st, err := os.Stat(p); err == nil && st.Mode().IsRegular() {
		return p
	}
	return ""
}
