package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/nguyentantai21042004/video-summarizer/internal/api/handler"
	mw "github.com/nguyentantai21042004/video-summarizer/internal/api/middleware"
	"github.com/nguyentantai21042004/video-summarizer/internal/api/response"
	"github.com/nguyentantai21042004/video-summarizer/internal/logger"
)

// Dependencies holds the handler and middleware dependencies of the router.
type Dependencies struct {
	Handler     *handler.Handler
	RateLimit   *mw.RateLimit
	CORSOrigins []string
	Logger      logger.Logger
}

// NewRouter builds the chi router with its middleware stack and routes.
func NewRouter(deps Dependencies) http.Handler {
	h := deps.Handler
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(mw.Logger(deps.Logger))
	r.Use(mw.Recovery(deps.Logger))
	r.Use(mw.CORS(deps.CORSOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", h.Health)
	r.Get("/gpu-status", h.GPUStatus)

	r.Get("/status/{jobID}", h.Status)
	r.Get("/ws/status/{jobID}", h.WatchStatus)

	r.Get("/files", h.Files)
	r.Get("/download/{filename}", h.Download)
	r.Get("/static/images/{filename}", h.Image)

	// Submissions
	r.Group(func(r chi.Router) {
		if deps.RateLimit != nil {
			r.Use(deps.RateLimit.Limit)
		}
		r.Post("/process", h.Process)
		r.Post("/process-transcript", h.ProcessTranscript)
	})

	return r
}
