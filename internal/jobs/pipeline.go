package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/video-summarizer/internal/generator"
	"github.com/nguyentantai21042004/video-summarizer/internal/logger"
	"github.com/nguyentantai21042004/video-summarizer/internal/results"
	"github.com/nguyentantai21042004/video-summarizer/pkg/models"
)

const (
	transcriptUploader = "Direct Input"
	transcriptLanguage = "auto-detected"
	topicContextRunes  = 500
)

// run is the worker goroutine of one job.
func (m *Manager) run(id string, req Request) {
	defer m.wg.Done()
	ctx := logger.WithJobID(m.baseCtx, id)

	defer func() {
		if r := recover(); r != nil {
			m.logger.Error(ctx, "Worker panicked: %v", r)
			m.fail(ctx, id, fmt.Errorf("internal error: %v", r))
		}
	}()

	if err := m.workers.acquire(ctx); err != nil {
		m.fail(ctx, id, fmt.Errorf("wait for worker: %w", err))
		return
	}
	defer m.workers.release()

	startTime := time.Now()
	if err := m.process(ctx, id, req); err != nil {
		m.fail(ctx, id, err)
		return
	}
	m.logger.Info(ctx, "Job completed in %v", time.Since(startTime).Round(time.Millisecond))
}

// process runs every stage of the pipeline and records the result.
func (m *Manager) process(ctx context.Context, id string, req Request) error {
	tmpDir := filepath.Join(m.opts.TempDir, id)
	if err := os.MkdirAll(tmpDir, 0755); err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			m.logger.Warn(ctx, "Failed to cleanup temp dir %s: %v", tmpDir, err)
		}
	}()

	var (
		info       models.VideoInfo
		transcript models.Transcript
		plan       stagePlan
		err        error
	)
	if req.isTranscript() {
		plan = transcriptPlan
		info, transcript, err = m.transcriptSource(ctx, id, req)
	} else {
		plan = mediaPlan
		info, transcript, err = m.mediaSource(ctx, id, req, tmpDir)
	}
	if err != nil {
		return err
	}

	var selected []models.SelectedImage
	if req.PDFPath != "" {
		m.advance(ctx, id, StatusAnalyzingImages, plan.images)
		selected = m.selectImages(ctx, id, req.PDFPath, tmpDir, info.Title, transcript.Text)
	}

	res := &Result{
		Transcript:    transcript.Text,
		Language:      transcript.Language,
		Segments:      transcript.Segments,
		SegmentsCount: len(transcript.Segments),
		ContentType:   req.ContentType,
		Images:        selected,
		ImagesCount:   len(selected),
	}

	if req.ContentType == models.ContentStudyMaterial {
		if err := m.studyMaterial(ctx, id, req.Sections, transcript.Text, info.Title, plan, res); err != nil {
			return err
		}
	} else {
		m.advance(ctx, id, StatusSummarizing, progressSummarizing)
		err := m.accelerator.with(ctx, func() {
			res.Summary = m.deps.Generator.Summary(ctx, transcript.Text, info.Title)
		})
		if err != nil {
			return fmt.Errorf("summarize: %w", err)
		}
	}

	m.advance(ctx, id, StatusSaving, progressSaving)
	files, err := m.deps.Results.Save(ctx, results.Bundle{
		JobID:         id,
		VideoInfo:     info,
		Transcript:    transcript,
		ContentType:   req.ContentType,
		Summary:       res.Summary,
		StudyMaterial: res.StudyMaterial,
		Images:        selected,
		Timestamp:     time.Now(),
	})
	if err != nil {
		return fmt.Errorf("save results: %w", err)
	}

	m.update(ctx, id, func(j *Job) { j.complete(res, files) })
	return nil
}

// mediaSource resolves, downloads and transcribes a URL or local media job.
func (m *Manager) mediaSource(ctx context.Context, id string, req Request, tmpDir string) (models.VideoInfo, models.Transcript, error) {
	var (
		info models.VideoInfo
		err  error
	)

	m.advance(ctx, id, StatusGettingInfo, progressGettingInfo)
	if req.LocalFile != "" {
		info, err = m.deps.Fetcher.LocalInfo(ctx, req.LocalFile)
	} else {
		info, err = m.deps.Fetcher.Info(ctx, req.URL)
	}
	if err != nil {
		return info, models.Transcript{}, fmt.Errorf("get video info: %w", err)
	}
	m.update(ctx, id, func(j *Job) { j.setVideoInfo(info) })
	m.logger.Info(ctx, "Processing %q (%s)", info.Title, info.DurationLabel())

	mediaPath := req.LocalFile
	if mediaPath == "" {
		m.advance(ctx, id, StatusDownloading, progressDownloading)
		mediaPath, err = m.deps.Fetcher.DownloadAudio(ctx, req.URL, tmpDir)
		if err != nil {
			return info, models.Transcript{}, fmt.Errorf("download audio: %w", err)
		}
	}

	m.advance(ctx, id, StatusTranscribing, progressTranscribing)
	var transcript models.Transcript
	gateErr := m.accelerator.with(ctx, func() {
		transcript, err = m.deps.Transcriber.Transcribe(ctx, mediaPath, req.ModelSize)
	})
	if gateErr != nil {
		return info, transcript, fmt.Errorf("wait for accelerator: %w", gateErr)
	}
	if err != nil {
		return info, transcript, fmt.Errorf("transcribe: %w", err)
	}
	return info, transcript, nil
}

// transcriptSource builds the metadata of a pasted transcript, generating a
// title when none was given.
func (m *Manager) transcriptSource(ctx context.Context, id string, req Request) (models.VideoInfo, models.Transcript, error) {
	m.advance(ctx, id, StatusProcessingTranscript, progressTranscript)

	title := req.TranscriptTitle
	if title == "" || title == generator.DefaultTranscriptTitle {
		err := m.accelerator.with(ctx, func() {
			title = m.deps.Generator.Title(ctx, req.Transcript)
		})
		if err != nil {
			return models.VideoInfo{}, models.Transcript{}, fmt.Errorf("generate title: %w", err)
		}
	}

	info := models.VideoInfo{Title: title, Uploader: transcriptUploader}
	m.update(ctx, id, func(j *Job) { j.setVideoInfo(info) })

	return info, models.Transcript{Text: req.Transcript, Language: transcriptLanguage}, nil
}

// selectImages extracts, ranks and publishes the images of the job's PDF.
// Image failures never fail the job.
func (m *Manager) selectImages(ctx context.Context, id, pdfPath, tmpDir, title, transcript string) []models.SelectedImage {
	dir := filepath.Join(tmpDir, "images")
	if _, err := m.deps.Extractor.Extract(ctx, pdfPath, dir); err != nil {
		m.logger.Warn(ctx, "Image extraction failed: %v", err)
		return nil
	}

	topic := title + " " + truncateRunes(transcript, topicContextRunes)
	selected, err := m.deps.Analyzer.Select(ctx, dir, topic, m.opts.MaxImages)
	if err != nil {
		m.logger.Warn(ctx, "Image analysis failed: %v", err)
		return nil
	}
	return m.deps.Analyzer.Publish(ctx, selected, id)
}

// studyMaterial generates each requested section in order under the
// accelerator gate, then formats the document.
func (m *Manager) studyMaterial(ctx context.Context, id string, sections []string, transcript, title string, plan stagePlan, res *Result) error {
	m.advance(ctx, id, StatusGeneratingStudyMaterial, plan.studyStart)

	n := len(sections)
	generated := make([]models.GeneratedSection, 0, n)
	for i, name := range sections {
		m.advance(ctx, id, SectionStatus(name), plan.studyStart+i*plan.studySpan/n)

		var text string
		err := m.accelerator.with(ctx, func() {
			text = m.deps.Generator.Section(ctx, name, transcript, title)
		})
		if err != nil {
			return fmt.Errorf("generate %s: %w", name, err)
		}
		generated = append(generated, models.GeneratedSection{Name: name, Content: text})
	}
	m.advance(ctx, id, StatusGeneratingStudyMaterial, plan.studyStart+plan.studySpan)

	res.Sections = generated
	res.StudyMaterial = generator.FormatStudyMaterial(title, generated, res.Images)
	return nil
}

func (m *Manager) advance(ctx context.Context, id string, status Status, progress int) {
	m.update(ctx, id, func(j *Job) { j.advance(status, progress) })
}

func (m *Manager) fail(ctx context.Context, id string, err error) {
	msg := errorMessage(err)
	m.logger.Error(ctx, "Job failed: %v", err)
	m.update(ctx, id, func(j *Job) { j.fail(msg) })
}

// update writes through to the store even after the worker context was
// cancelled, so a shutdown still records the final state.
func (m *Manager) update(ctx context.Context, id string, fn func(*Job)) {
	if err := m.store.Update(context.WithoutCancel(ctx), id, fn); err != nil {
		m.logger.Error(ctx, "Failed to update job: %v", err)
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}
