package results

import (
	"context"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/video-summarizer/internal/logger"
	"github.com/nguyentantai21042004/video-summarizer/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBundle() Bundle {
	return Bundle{
		JobID:       "ab12cd34",
		VideoInfo:   models.VideoInfo{Title: "Graphs: An Intro", Duration: 125},
		ContentType: models.ContentSummary,
		Transcript: models.Transcript{
			Text:     "Hello and welcome.",
			Language: "en",
			Segments: []models.Segment{{Start: 0, End: 2, Text: "Hello and welcome."}},
		},
		Summary:   "**Main Topic:** Graphs",
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestSaveSummary(t *testing.T) {
	dir := t.TempDir()
	a := NewAssembler(dir, t.TempDir(), logger.NewNop())

	files, err := a.Save(context.Background(), sampleBundle())
	require.NoError(t, err)

	assert.Equal(t, Manifest{
		FileTranscript: "Graphs An Intro_ab12cd34_transcript.txt",
		FileSummary:    "Graphs An Intro_ab12cd34_summary.txt",
		FileSRT:        "Graphs An Intro_ab12cd34.srt",
		FileJSON:       "Graphs An Intro_ab12cd34_complete.json",
	}, files)

	transcript, err := os.ReadFile(filepath.Join(dir, files[FileTranscript]))
	require.NoError(t, err)
	assert.Equal(t, "Title: Graphs: An Intro\nDuration: 2:05\nLanguage: en\n"+
		strings.Repeat("-", 50)+"\n\nTRANSCRIPT:\nHello and welcome.", string(transcript))

	summary, err := os.ReadFile(filepath.Join(dir, files[FileSummary]))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(summary), "SUMMARY:\n**Main Topic:** Graphs"))

	raw, err := os.ReadFile(filepath.Join(dir, files[FileJSON]))
	require.NoError(t, err)
	var doc CompleteDocument
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "ab12cd34", doc.JobID)
	assert.Equal(t, "2026-01-02T03:04:05Z", doc.Timestamp)
	assert.Equal(t, "Hello and welcome.", doc.Transcript.Text)
	assert.Zero(t, doc.ImagesCount)
}

func TestSaveStudyMaterialWithImage(t *testing.T) {
	dir := t.TempDir()
	imgDir := t.TempDir()

	f, err := os.Create(filepath.Join(imgDir, "ab12cd34_flow diagram_1_1.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 960, 480))))
	require.NoError(t, f.Close())

	b := sampleBundle()
	b.ContentType = models.ContentStudyMaterial
	b.Summary = ""
	b.StudyMaterial = "# Graphs\n\n## Overview\n\nGraphs are **nodes** and *edges* with `code`.\n\n" +
		"### Visual Illustrations\n\n![Educational illustration: Flow Diagram](/static/images/ab12cd34_flow%20diagram_1_1.png)\n*Figure: A diagram*\n\n" +
		"- first\n- second\n1. one\n\n---\n*footer*\n"
	b.Images = []models.SelectedImage{{Filename: "ab12cd34_flow diagram_1_1.png"}}

	a := NewAssembler(dir, imgDir, logger.NewNop())
	files, err := a.Save(context.Background(), b)
	require.NoError(t, err)

	assert.NotContains(t, files, FileSummary)
	assert.Equal(t, "Graphs An Intro_ab12cd34_study_material.md", files[FileStudyMaterial])
	assert.Equal(t, "Graphs An Intro_ab12cd34_study_material.docx", files[FileStudyMaterialDocx])

	info, err := os.Stat(filepath.Join(dir, files[FileStudyMaterialDocx]))
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestParseInline(t *testing.T) {
	got := parseInline("a **b** *c* `d` [e](http://x) __f__ tail")
	assert.Equal(t, []span{
		{text: "a "},
		{text: "b", style: styleBold},
		{text: " "},
		{text: "c", style: styleItalic},
		{text: " "},
		{text: "d", style: styleCode},
		{text: " "},
		{text: "e"},
		{text: " "},
		{text: "f", style: styleBold},
		{text: " tail"},
	}, got)

	assert.Equal(t, "Key Points: x", cleanMarkdownInline("**Key Points:** x"))
}

func TestImageSizeInches(t *testing.T) {
	p := filepath.Join(t.TempDir(), "wide.png")
	f, err := os.Create(p)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 1152, 288))))
	require.NoError(t, f.Close())

	w, h, ok := imageSizeInches(p)
	require.True(t, ok)
	assert.Equal(t, 6.0, w)
	assert.Equal(t, 1.5, h)

	_, _, ok = imageSizeInches(filepath.Join(t.TempDir(), "missing.png"))
	assert.False(t, ok)
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old.txt")
	require.NoError(t, os.WriteFile(old, []byte("1"), 0o644))
	require.NoError(t, os.Chtimes(old, time.Now().Add(-time.Hour), time.Now().Add(-time.Hour)))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("22"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	files, err := List(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "new.txt", files[0].Name)
	assert.Equal(t, int64(2), files[0].Size)

	files, err = List(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, files)
}
