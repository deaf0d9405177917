package jobs

import "strings"

// Status is the lifecycle state of a job.
type Status string

const (
	StatusStarting                Status = "starting"
	StatusGettingInfo             Status = "getting_info"
	StatusDownloading             Status = "downloading"
	StatusTranscribing            Status = "transcribing"
	StatusProcessingTranscript    Status = "processing_transcript"
	StatusAnalyzingImages         Status = "analyzing_images"
	StatusSummarizing             Status = "summarizing"
	StatusGeneratingStudyMaterial Status = "generating_study_material"
	StatusSaving                  Status = "saving"
	StatusCompleted               Status = "completed"
	StatusError                   Status = "error"

	sectionStatusPrefix = "generating_"
)

// Progress checkpoints.
const (
	progressGettingInfo  = 10
	progressDownloading  = 20
	progressTranscript   = 20
	progressTranscribing = 40
	progressSummarizing  = 70
	progressSaving       = 90
	progressCompleted    = 100
)

// stagePlan holds the checkpoints that differ between media and transcript
// jobs.
type stagePlan struct {
	images     int
	studyStart int
	studySpan  int
}

var (
	mediaPlan      = stagePlan{images: 55, studyStart: 60, studySpan: 25}
	transcriptPlan = stagePlan{images: 35, studyStart: 50, studySpan: 35}
)

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// SectionStatus is the sub-status reported while one section is generated.
func SectionStatus(section string) Status {
	return Status(sectionStatusPrefix + section)
}

// Section returns the section name of a per-section sub-status.
func (s Status) Section() (string, bool) {
	if s == StatusGeneratingStudyMaterial || !strings.HasPrefix(string(s), sectionStatusPrefix) {
		return "", false
	}
	return strings.TrimPrefix(string(s), sectionStatusPrefix), true
}
