package results

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/video-summarizer/internal/logger"
	"github.com/nguyentantai21042004/video-summarizer/pkg/models"
)

// Manifest keys.
const (
	FileTranscript        = "transcript"
	FileSummary           = "summary"
	FileStudyMaterial     = "study_material"
	FileStudyMaterialDocx = "study_material_docx"
	FileSRT               = "srt"
	FileJSON              = "json"
)

const headerRule = "--------------------------------------------------"

// Bundle is everything a finished job persists.
type Bundle struct {
	JobID         string
	VideoInfo     models.VideoInfo
	Transcript    models.Transcript
	ContentType   string
	Summary       string
	StudyMaterial string
	Images        []models.SelectedImage
	Timestamp     time.Time
}

// Manifest maps file kinds to the base names written for a job.
type Manifest map[string]string

// Assembler writes job results under an outputs directory.
type Assembler struct {
	outputDir string
	imageDir  string
	logger    logger.Logger
}

// NewAssembler creates an Assembler. imageDir is where published images
// live; the DOCX renderer embeds them from there.
func NewAssembler(outputDir, imageDir string, log logger.Logger) *Assembler {
	return &Assembler{outputDir: outputDir, imageDir: imageDir, logger: log}
}

func (a *Assembler) OutputDir() string { return a.outputDir }

// Save writes every file of the bundle and returns the manifest. The
// DOCX rendering is best effort; the other files are mandatory.
func (a *Assembler) Save(ctx context.Context, b Bundle) (Manifest, error) {
	if err := os.MkdirAll(a.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if b.Timestamp.IsZero() {
		b.Timestamp = time.Now()
	}

	base := BaseName(b.VideoInfo.Title, b.JobID)
	files := Manifest{}

	write := func(key, name, content string) error {
		if err := os.WriteFile(filepath.Join(a.outputDir, name), []byte(content), 0644); err != nil {
			return fmt.Errorf("write %s: %w", key, err)
		}
		files[key] = name
		return nil
	}

	if err := write(FileTranscript, base+"_transcript.txt", a.transcriptText(b)); err != nil {
		return nil, err
	}

	if b.Summary != "" {
		if err := write(FileSummary, base+"_summary.txt", a.summaryText(b)); err != nil {
			return nil, err
		}
	}

	if b.StudyMaterial != "" {
		if err := write(FileStudyMaterial, base+"_study_material.md", b.StudyMaterial); err != nil {
			return nil, err
		}

		docxName := base + "_study_material.docx"
		if err := a.markdownToDocx(b.StudyMaterial, filepath.Join(a.outputDir, docxName)); err != nil {
			a.logger.Warn(ctx, "Failed to render study material document: %v", err)
		} else {
			files[FileStudyMaterialDocx] = docxName
		}
	}

	if err := write(FileSRT, base+".srt", FormatSRT(b.Transcript.Segments)); err != nil {
		return nil, err
	}

	doc, err := json.MarshalIndent(completeDoc(b), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result json: %w", err)
	}
	if err := write(FileJSON, base+"_complete.json", string(doc)); err != nil {
		return nil, err
	}

	a.logger.Info(ctx, "Saved %d result files for %s", len(files), base)
	return files, nil
}

func (a *Assembler) transcriptText(b Bundle) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Title: %s\n", b.VideoInfo.Title)
	fmt.Fprintf(&sb, "Duration: %s\n", b.VideoInfo.DurationLabel())
	fmt.Fprintf(&sb, "Language: %s\n", b.Transcript.Language)
	sb.WriteString(headerRule + "\n\n")
	sb.WriteString("TRANSCRIPT:\n")
	sb.WriteString(b.Transcript.Text)
	return sb.String()
}

func (a *Assembler) summaryText(b Bundle) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Title: %s\n", b.VideoInfo.Title)
	fmt.Fprintf(&sb, "Duration: %s\n", b.VideoInfo.DurationLabel())
	sb.WriteString(headerRule + "\n\n")
	sb.WriteString("SUMMARY:\n")
	sb.WriteString(b.Summary)
	return sb.String()
}

// CompleteDocument is the layout of <base>_complete.json.
type CompleteDocument struct {
	JobID         string            `json:"job_id"`
	Timestamp     string            `json:"timestamp"`
	ContentType   string            `json:"content_type"`
	VideoInfo     models.VideoInfo  `json:"video_info"`
	Transcript    models.Transcript `json:"transcript"`
	Summary       string            `json:"summary"`
	StudyMaterial string            `json:"study_material"`
	ImagesCount   int               `json:"images_count"`
}

func completeDoc(b Bundle) CompleteDocument {
	return CompleteDocument{
		JobID:         b.JobID,
		Timestamp:     b.Timestamp.Format(time.RFC3339),
		ContentType:   b.ContentType,
		VideoInfo:     b.VideoInfo,
		Transcript:    b.Transcript,
		Summary:       b.Summary,
		StudyMaterial: b.StudyMaterial,
		ImagesCount:   len(b.Images),
	}
}
