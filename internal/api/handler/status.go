package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/nguyentantai21042004/video-summarizer/internal/api/response"
	"github.com/nguyentantai21042004/video-summarizer/internal/jobs"
)

const (
	jobNotFound  = "Job not found"
	writeTimeout = 10 * time.Second
)

// Status handles GET /status/{jobID}.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	view, err := h.jobs.Status(r.Context(), chi.URLParam(r, "jobID"))
	if err != nil {
		h.writeError(w, r, err, jobNotFound)
		return
	}
	response.OK(w, view)
}

// WatchStatus handles GET /ws/status/{jobID}. It pushes a snapshot whenever
// status or progress changes and closes after the terminal snapshot.
func (h *Handler) WatchStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "jobID")
	ctx := r.Context()

	view, err := h.jobs.Status(ctx, id)
	if err != nil {
		h.writeError(w, r, err, jobNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn(ctx, "WebSocket upgrade failed for job %s: %v", id, err)
		return
	}
	defer conn.Close()

	// drain client frames so close and ping are processed
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.cfg.PollInterval)
	defer ticker.Stop()

	var last *jobs.View
	for {
		if last == nil || changed(last, view) {
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(view); err != nil {
				h.logger.Debug(ctx, "WebSocket write for job %s failed: %v", id, err)
				return
			}
			last = view
		}
		if view.Status.Terminal() {
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, string(view.Status)),
				time.Now().Add(writeTimeout))
			return
		}

		select {
		case <-gone:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		view, err = h.jobs.Status(ctx, id)
		if err != nil {
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, jobNotFound),
				time.Now().Add(writeTimeout))
			return
		}
	}
}

func changed(a, b *jobs.View) bool {
	return a.Status != b.Status || a.Progress != b.Progress || (a.VideoInfo == nil) != (b.VideoInfo == nil)
}
