package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/nguyentantai21042004/video-summarizer/internal/logger"
)

// Logger logs method, path, status, duration and remote address of every
// request. The wrapped writer still supports hijacking for websockets.
func Logger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.Info(r.Context(), "%s %s %d %dms %s",
				r.Method, r.URL.Path, status, time.Since(start).Milliseconds(), r.RemoteAddr)
		})
	}
}
