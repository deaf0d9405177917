package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/nguyentantai21042004/video-summarizer/internal/api/response"
	"github.com/nguyentantai21042004/video-summarizer/internal/jobs"
	"github.com/nguyentantai21042004/video-summarizer/pkg/models"
)

const (
	multipartMemory  = 32 << 20
	pdfMIME          = "application/pdf"
	uploadTimeLayout = "20060102_150405"
)

var errNotPDF = errors.New("only PDF files are allowed")

// formFields names the request fields of one submission route.
type formFields struct {
	source      string
	title       string
	model       string
	contentType string
	sections    string
	pdf         string
}

var (
	videoFields = formFields{
		source:      "url",
		model:       "model",
		contentType: "content_type",
		sections:    "study_sections",
		pdf:         "pdf_file",
	}
	transcriptFields = formFields{
		source:      "transcript_text",
		title:       "transcript_title",
		contentType: "transcript_content_type",
		sections:    "transcript_study_sections",
		pdf:         "transcript_pdf_file",
	}
)

type jobCreated struct {
	JobID string `json:"job_id"`
}

// Process handles POST /process.
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, videoFields)
}

// ProcessTranscript handles POST /process-transcript.
func (h *Handler) ProcessTranscript(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, transcriptFields)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request, f formFields) {
	values, pdfPath, err := h.readSubmission(w, r, f)
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			response.Error(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Upload exceeds %d MB", h.cfg.MaxUploadBytes>>20))
		case errors.Is(err, errNotPDF):
			response.Error(w, http.StatusBadRequest, "Only PDF files are allowed")
		default:
			response.Error(w, http.StatusBadRequest, "Invalid request body")
		}
		return
	}

	req := jobs.Request{
		ModelSize:   values.get(f.model),
		ContentType: values.get(f.contentType),
		PDFPath:     pdfPath,
	}
	if req.ContentType == models.ContentStudyMaterial {
		req.Sections = values.list(f.sections)
	}
	if f == transcriptFields {
		req.Transcript = values.get(f.source)
		req.TranscriptTitle = values.get(f.title)
		if req.Transcript == "" {
			h.discardUpload(r, pdfPath)
			response.Error(w, http.StatusBadRequest, "Transcript text is required")
			return
		}
	} else {
		req.URL = values.get(f.source)
		if req.URL == "" {
			h.discardUpload(r, pdfPath)
			response.Error(w, http.StatusBadRequest, "URL is required")
			return
		}
	}

	id, err := h.jobs.Submit(r.Context(), req)
	if err != nil {
		h.discardUpload(r, pdfPath)
		h.writeError(w, r, err, "Job not found")
		return
	}
	response.OK(w, jobCreated{JobID: id})
}

// fieldValues holds submitted fields, either from JSON or a form.
type fieldValues map[string][]string

func (v fieldValues) get(key string) string {
	if key == "" || len(v[key]) == 0 {
		return ""
	}
	return strings.TrimSpace(v[key][0])
}

// list accepts repeated fields as well as comma separated values.
func (v fieldValues) list(key string) []string {
	var out []string
	for _, raw := range v[key] {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func (h *Handler) readSubmission(w http.ResponseWriter, r *http.Request, f formFields) (fieldValues, string, error) {
	if h.cfg.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	}

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/json":
		values, err := decodeJSON(r.Body)
		return values, "", err
	case "multipart/form-data":
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return nil, "", err
		}
		pdfPath, err := h.savePDF(r, f.pdf)
		return fieldValues(r.MultipartForm.Value), pdfPath, err
	default:
		if err := r.ParseForm(); err != nil {
			return nil, "", err
		}
		return fieldValues(r.PostForm), "", nil
	}
}

// decodeJSON flattens a JSON object into field values. Arrays become
// repeated values; other scalars are formatted.
func decodeJSON(body io.Reader) (fieldValues, error) {
	var raw map[string]any
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, err
	}
	values := fieldValues{}
	for k, v := range raw {
		switch t := v.(type) {
		case nil:
		case string:
			values[k] = []string{t}
		case []any:
			for _, item := range t {
				values[k] = append(values[k], fmt.Sprint(item))
			}
		default:
			values[k] = []string{fmt.Sprint(t)}
		}
	}
	return values, nil
}

// savePDF stores the uploaded PDF under the upload directory with a
// timestamp prefix. A missing upload is not an error.
func (h *Handler) savePDF(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	if header.Filename == "" {
		return "", nil
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		return "", errNotPDF
	}
	mt, err := mimetype.DetectReader(file)
	if err != nil {
		return "", err
	}
	if !mt.Is(pdfMIME) {
		return "", errNotPDF
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	if err := os.MkdirAll(h.cfg.UploadDir, 0755); err != nil {
		return "", err
	}
	name := time.Now().Format(uploadTimeLayout) + "_" + secureFilename(header.Filename)
	dstPath := filepath.Join(h.cfg.UploadDir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(dstPath)
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", err
	}

	h.logger.Info(r.Context(), "Saved upload %s", name)
	return dstPath, nil
}

func (h *Handler) discardUpload(r *http.Request, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil {
		h.logger.Warn(r.Context(), "Failed to remove upload %s: %v", path, err)
	}
}

// secureFilename keeps ASCII letters, digits, dots, dashes and underscores
// of the base name; spaces become underscores.
func secureFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, name)
	cleaned = strings.Trim(cleaned, "._")
	if cleaned == "" {
		return "upload.pdf"
	}
	return cleaned
}
