package handler

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nguyentantai21042004/video-summarizer/internal/api/response"
	"github.com/nguyentantai21042004/video-summarizer/internal/gpu"
	"github.com/nguyentantai21042004/video-summarizer/internal/jobs"
	"github.com/nguyentantai21042004/video-summarizer/internal/logger"
	"github.com/nguyentantai21042004/video-summarizer/internal/results"
)

const (
	defaultPollInterval = 500 * time.Millisecond
	retryAfterSeconds   = "30"
)

// JobService is the job manager surface the handlers use.
type JobService interface {
	Submit(ctx context.Context, req jobs.Request) (string, error)
	Status(ctx context.Context, id string) (*jobs.View, error)
	OpenFile(name string) (*os.File, error)
	ListFiles() ([]results.FileInfo, error)
	AcceleratorStats() (inUse, capacity int)
}

// Config holds the handler settings taken from the app config.
type Config struct {
	UploadDir      string
	MaxUploadBytes int64
	ImageDir       string
	PollInterval   time.Duration
}

// Handler serves the HTTP API.
type Handler struct {
	jobs     JobService
	gpu      gpu.Prober
	cfg      Config
	logger   logger.Logger
	upgrader websocket.Upgrader
}

// New creates a Handler.
func New(svc JobService, prober gpu.Prober, cfg Config, log logger.Logger) *Handler {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	return &Handler{
		jobs:   svc,
		gpu:    prober,
		cfg:    cfg,
		logger: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// writeError maps service errors onto status codes. notFound is the message
// used for a missing job or file.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var verr *jobs.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, results.ErrInvalidName):
		response.Error(w, http.StatusBadRequest, "Invalid filename")
	case errors.Is(err, jobs.ErrNotFound):
		response.Error(w, http.StatusNotFound, notFound)
	case errors.Is(err, jobs.ErrAtCapacity), errors.Is(err, jobs.ErrShuttingDown):
		w.Header().Set("Retry-After", retryAfterSeconds)
		response.Error(w, http.StatusServiceUnavailable, "Server is busy, please retry later")
	default:
		h.logger.Error(r.Context(), "%s %s failed: %v", r.Method, r.URL.Path, err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
