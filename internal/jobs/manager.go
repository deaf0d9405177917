package jobs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/video-summarizer/internal/logger"
	"github.com/nguyentantai21042004/video-summarizer/internal/media"
	"github.com/nguyentantai21042004/video-summarizer/internal/results"
	"github.com/nguyentantai21042004/video-summarizer/internal/transcriber"
	"github.com/nguyentantai21042004/video-summarizer/pkg/models"
)

const maxIDAttempts = 5

// Submit validates req, admits a new job and starts its worker. It returns
// the job id without waiting for any processing.
func (m *Manager) Submit(ctx context.Context, req Request) (string, error) {
	req, err := m.validate(req)
	if err != nil {
		return "", err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", ErrShuttingDown
	}

	var id string
	for attempt := 0; ; attempt++ {
		id = newID()
		err = m.store.Create(ctx, newJob(id, req, time.Now()))
		if !errors.Is(err, errDuplicateID) {
			break
		}
		if attempt == maxIDAttempts {
			return "", fmt.Errorf("allocate job id: %w", err)
		}
	}
	if err != nil {
		return "", err
	}

	m.logger.Info(logger.WithJobID(ctx, id), "Job admitted (content type %s)", req.ContentType)

	m.wg.Add(1)
	go m.run(id, req)
	return id, nil
}

func newID() string {
	return uuid.NewString()[:8]
}

func (m *Manager) validate(req Request) (Request, error) {
	req.URL = strings.TrimSpace(req.URL)
	req.Transcript = strings.TrimSpace(req.Transcript)
	req.TranscriptTitle = strings.TrimSpace(req.TranscriptTitle)

	sources := 0
	for _, s := range []string{req.URL, req.Transcript, req.LocalFile} {
		if s != "" {
			sources++
		}
	}
	switch {
	case sources == 0:
		return req, invalid("url", "Please provide a video URL or a transcript")
	case sources > 1:
		return req, invalid("url", "Provide either a video URL or a transcript, not both")
	}

	if req.URL != "" {
		if err := media.CheckURL(req.URL, m.opts.AllowedDomains); err != nil {
			return req, invalid("url", fmt.Sprintf("Please provide a valid video URL (supported: %s)", strings.Join(m.opts.AllowedDomains, ", ")))
		}
	}

	if req.ContentType == "" {
		req.ContentType = models.ContentSummary
	}
	switch req.ContentType {
	case models.ContentSummary:
		req.Sections = nil
	case models.ContentStudyMaterial:
		sections, err := models.NormalizeSections(req.Sections)
		if err != nil {
			return req, invalid("study_sections", "Invalid study sections: "+err.Error())
		}
		req.Sections = sections
	default:
		return req, invalid("content_type", fmt.Sprintf("Unknown content type %q", req.ContentType))
	}

	if !req.isTranscript() {
		if req.ModelSize == "" {
			req.ModelSize = m.opts.DefaultModel
		}
		if !transcriber.ValidModelSize(req.ModelSize) {
			return req, invalid("model", fmt.Sprintf("Invalid model size %q", req.ModelSize))
		}
	}
	return req, nil
}

// Status returns a snapshot of the job. A job first read while its worker
// is still fetching metadata reports the admission snapshot, starting at 0.
func (m *Manager) Status(ctx context.Context, id string) (*View, error) {
	job, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Observed || job.Status.Terminal() {
		return job.view(), nil
	}

	if err := m.store.Update(ctx, id, func(j *Job) { j.Observed = true }); err != nil {
		return nil, err
	}
	if job.Status == StatusGettingInfo {
		return job.admissionView(), nil
	}
	return job.view(), nil
}

// Len reports the number of jobs in the table.
func (m *Manager) Len(ctx context.Context) (int, error) {
	return m.store.Len(ctx)
}

// OpenFile opens a generated output file by base name.
func (m *Manager) OpenFile(name string) (*os.File, error) {
	p, err := results.Resolve(m.deps.Results.OutputDir(), name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if st.IsDir() {
		f.Close()
		return nil, ErrNotFound
	}
	return f, nil
}

// ListFiles lists the generated output files, newest first.
func (m *Manager) ListFiles() ([]results.FileInfo, error) {
	return results.List(m.deps.Results.OutputDir())
}

// AcceleratorStats reports how many accelerator slots are held.
func (m *Manager) AcceleratorStats() (inUse, capacity int) {
	return m.accelerator.inUse(), m.accelerator.capacity()
}

// Shutdown stops admission, cancels running workers and waits for them to
// record their final state.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	m.cancel()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
