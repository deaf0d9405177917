package jobs

import (
	"maps"
	"time"

	"github.com/nguyentantai21042004/video-summarizer/internal/results"
	"github.com/nguyentantai21042004/video-summarizer/pkg/models"
)

// Request describes what a job should process. Exactly one of URL,
// Transcript and LocalFile is set.
type Request struct {
	URL             string   `json:"url,omitempty"`
	Transcript      string   `json:"transcript,omitempty"`
	TranscriptTitle string   `json:"transcript_title,omitempty"`
	LocalFile       string   `json:"local_file,omitempty"`
	ModelSize       string   `json:"model_size,omitempty"`
	ContentType     string   `json:"content_type,omitempty"`
	Sections        []string `json:"sections,omitempty"`
	PDFPath         string   `json:"pdf_path,omitempty"`
}

func (r Request) isTranscript() bool { return r.Transcript != "" }

// Result is what a completed job produced.
type Result struct {
	Transcript    string                    `json:"transcript"`
	Language      string                    `json:"language"`
	Segments      []models.Segment          `json:"segments,omitempty"`
	SegmentsCount int                       `json:"segments_count"`
	ContentType   string                    `json:"content_type"`
	Summary       string                    `json:"summary,omitempty"`
	StudyMaterial string                    `json:"study_material,omitempty"`
	Sections      []models.GeneratedSection `json:"sections,omitempty"`
	Images        []models.SelectedImage    `json:"images,omitempty"`
	ImagesCount   int                       `json:"images_count"`
}

// Job is one entry of the job table.
type Job struct {
	ID         string            `json:"id"`
	Request    Request           `json:"request"`
	Status     Status            `json:"status"`
	Progress   int               `json:"progress"`
	VideoInfo  *models.VideoInfo `json:"video_info,omitempty"`
	Result     *Result           `json:"result,omitempty"`
	Error      string            `json:"error,omitempty"`
	Files      results.Manifest  `json:"files,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	FinishedAt *time.Time        `json:"finished_at,omitempty"`

	// Observed is set by the first status read.
	Observed bool `json:"observed,omitempty"`
}

func newJob(id string, req Request, now time.Time) *Job {
	return &Job{
		ID:        id,
		Request:   req,
		Status:    StatusStarting,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// advance moves a running job to status. Progress only moves forward and a
// terminal job is left untouched.
func (j *Job) advance(status Status, progress int) {
	if j.Status.Terminal() {
		return
	}
	j.Status = status
	j.Progress = max(j.Progress, min(progress, progressCompleted))
	j.UpdatedAt = time.Now()
}

func (j *Job) setVideoInfo(info models.VideoInfo) {
	if j.Status.Terminal() {
		return
	}
	j.VideoInfo = &info
	j.UpdatedAt = time.Now()
}

func (j *Job) complete(res *Result, files results.Manifest) {
	if j.Status.Terminal() {
		return
	}
	now := time.Now()
	j.Status = StatusCompleted
	j.Progress = progressCompleted
	j.Result = res
	j.Files = files
	j.UpdatedAt = now
	j.FinishedAt = &now
}

func (j *Job) fail(msg string) {
	if j.Status.Terminal() {
		return
	}
	now := time.Now()
	j.Status = StatusError
	j.Error = msg
	j.UpdatedAt = now
	j.FinishedAt = &now
}

func (j *Job) clone() *Job {
	c := *j
	if j.VideoInfo != nil {
		info := *j.VideoInfo
		c.VideoInfo = &info
	}
	if j.FinishedAt != nil {
		t := *j.FinishedAt
		c.FinishedAt = &t
	}
	c.Files = maps.Clone(j.Files)
	c.Request.Sections = append([]string(nil), j.Request.Sections...)
	return &c
}

// View is the public snapshot returned by status queries.
type View struct {
	JobID     string            `json:"job_id"`
	Status    Status            `json:"status"`
	Progress  int               `json:"progress"`
	VideoInfo *models.VideoInfo `json:"video_info,omitempty"`
	Result    *Result           `json:"result,omitempty"`
	Files     results.Manifest  `json:"files,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// admissionView is the snapshot of the job as Submit stored it.
func (j *Job) admissionView() *View {
	return &View{JobID: j.ID, Status: StatusStarting}
}

func (j *Job) view() *View {
	v := &View{
		JobID:     j.ID,
		Status:    j.Status,
		Progress:  j.Progress,
		VideoInfo: j.VideoInfo,
	}
	switch j.Status {
	case StatusCompleted:
		v.Result = j.Result
		v.Files = j.Files
	case StatusError:
		v.Error = j.Error
	}
	return v
}
