package watcher

import (
	"context"

	"github.com/nguyentantai21042004/video-summarizer/internal/jobs"
)

// Watcher turns files dropped into the inbox directory into jobs.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// Submitter admits jobs. It is satisfied by *jobs.Manager.
type Submitter interface {
	Submit(ctx context.Context, req jobs.Request) (string, error)
}
