package watcher

import (
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/video-summarizer/internal/logger"
)

const defaultSettleDelay = 500 * time.Millisecond

// Options control the jobs created from inbox files.
type Options struct {
	ContentType string
	Sections    []string
	// SettleDelay is how long a new file is left alone before it is read,
	// so that writers can finish.
	SettleDelay time.Duration
}

// New creates a Watcher on inboxDir, creating the directory if needed.
func New(inboxDir string, submitter Submitter, opts Options, log logger.Logger) (Watcher, error) {
	if err := os.MkdirAll(inboxDir, 0755); err != nil {
		return nil, fmt.Errorf("create inbox: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inboxDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if opts.SettleDelay <= 0 {
		opts.SettleDelay = defaultSettleDelay
	}

	return &implWatcher{
		inboxDir:  inboxDir,
		submitter: submitter,
		opts:      opts,
		logger:    log,
		watcher:   watcher,
	}, nil
}
