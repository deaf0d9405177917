package handler

import (
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"

	"github.com/nguyentantai21042004/video-summarizer/internal/api/response"
	"github.com/nguyentantai21042004/video-summarizer/internal/jobs"
	"github.com/nguyentantai21042004/video-summarizer/internal/results"
)

var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
}

// Download handles GET /download/{filename}.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	name, ok := h.fileParam(w, r)
	if !ok {
		return
	}

	f, err := h.jobs.OpenFile(name)
	if err != nil {
		h.writeError(w, r, err, "File not found: "+name)
		return
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}

	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	http.ServeContent(w, r, name, st.ModTime(), f)
}

// Image handles GET /static/images/{filename}.
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	name, ok := h.fileParam(w, r)
	if !ok {
		return
	}

	p, err := results.Resolve(h.cfg.ImageDir, name)
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}

	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			h.logger.Warn(r.Context(), "Image not found: %s", name)
			h.writeError(w, r, jobs.ErrNotFound, "Image not found: "+name)
			return
		}
		h.writeError(w, r, err, "")
		return
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil || st.IsDir() {
		h.writeError(w, r, jobs.ErrNotFound, "Image not found: "+name)
		return
	}

	ct, ok := imageType(p)
	if !ok {
		h.writeError(w, r, jobs.ErrNotFound, "Image not found: "+name)
		return
	}

	w.Header().Set("Content-Type", ct)
	http.ServeContent(w, r, name, st.ModTime(), f)
}

// imageType picks the content type from the extension, then from the file
// contents. Files that are not images report false.
func imageType(p string) (string, bool) {
	if t, ok := imageTypes[strings.ToLower(filepath.Ext(p))]; ok {
		return t, true
	}
	if mt, err := mimetype.DetectFile(p); err == nil && strings.HasPrefix(mt.String(), "image/") {
		return mt.String(), true
	}
	return "", false
}

// fileParam returns the decoded {filename} parameter. chi matches on the
// raw path only when it differs from the default escaping, and only then
// is the parameter still escaped.
func (h *Handler) fileParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := chi.URLParam(r, "filename")
	if r.URL.RawPath == "" {
		return name, true
	}
	name, err := url.PathUnescape(name)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid filename")
		return "", false
	}
	return name, true
}

type fileList struct {
	Files []results.FileInfo `json:"files"`
}

// Files handles GET /files.
func (h *Handler) Files(w http.ResponseWriter, r *http.Request) {
	files, err := h.jobs.ListFiles()
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}
	if files == nil {
		files = []results.FileInfo{}
	}
	response.OK(w, fileList{Files: files})
}
