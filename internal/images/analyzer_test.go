package images

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/video-summarizer/internal/config"
	"github.com/nguyentantai21042004/video-summarizer/internal/logger"
	"github.com/nguyentantai21042004/video-summarizer/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("img"), 0o644))
}

func TestSelect(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"b photo_1_1.png", "a photo_1_2.png", "flow diagram_2_1.png", "graph example_3_1.jpg", "notes.txt", "scan.tif"} {
		touch(t, dir, n)
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.png"), 0o755))

	a := NewAnalyzer(t.TempDir(), logger.NewNop())
	got, err := a.Select(context.Background(), dir, "Graph theory", 3)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "graph example_3_1.jpg", got[0].Filename)
	assert.Equal(t, 1.0, got[0].Score)
	assert.Equal(t, "flow diagram_2_1.png", got[1].Filename)
	// ties keep name order
	assert.Equal(t, "a photo_1_2.png", got[2].Filename)
	assert.Equal(t, models.SectionExamples, got[0].Placement)
}

func TestSelectMissingDir(t *testing.T) {
	a := NewAnalyzer(t.TempDir(), logger.NewNop())
	_, err := a.Select(context.Background(), filepath.Join(t.TempDir(), "missing"), "", 6)
	assert.Error(t, err)
}

func TestPublishDropsFailedCopies(t *testing.T) {
	src := t.TempDir()
	touch(t, src, "diagram_1_1.png")
	static := filepath.Join(t.TempDir(), "static", "images")

	a := NewAnalyzer(static, logger.NewNop())
	got := a.Publish(context.Background(), []models.SelectedImage{
		{Path: filepath.Join(src, "diagram_1_1.png"), Filename: "diagram_1_1.png"},
		{Path: filepath.Join(src, "missing.png"), Filename: "missing.png"},
	}, "ab12cd34")

	require.Len(t, got, 1)
	assert.Equal(t, "ab12cd34_diagram_1_1.png", got[0].Filename)
	assert.FileExists(t, filepath.Join(static, "ab12cd34_diagram_1_1.png"))
}

func TestScale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 300))
	src.Set(10, 10, color.White)

	got := scale(src, 0.7)
	assert.Equal(t, 280, got.Bounds().Dx())
	assert.Equal(t, 210, got.Bounds().Dy())

	assert.Equal(t, src, scale(src, 1))
}

func TestConvertFiltersSmallImages(t *testing.T) {
	dir := t.TempDir()
	e := NewExtractor(config.ImagesConfig{MinDimension: 300, ResizeFactor: 0.5}, logger.NewNop()).(*implExtractor)

	small := filepath.Join(dir, "small.png")
	require.NoError(t, savePNG(image.NewRGBA(image.Rect(0, 0, 299, 600)), small))
	ok, err := e.convert(small, filepath.Join(dir, "small_out.png"))
	require.NoError(t, err)
	assert.False(t, ok)

	big := filepath.Join(dir, "big.png")
	require.NoError(t, savePNG(image.NewRGBA(image.Rect(0, 0, 600, 400)), big))
	out := filepath.Join(dir, "big_out.png")
	ok, err = e.convert(big, out)
	require.NoError(t, err)
	require.True(t, ok)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
}

func TestConvertRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "junk.png")
	e := NewExtractor(config.ImagesConfig{MinDimension: 1, ResizeFactor: 1}, logger.NewNop()).(*implExtractor)

	_, err := e.convert(filepath.Join(dir, "junk.png"), filepath.Join(dir, "out.png"))
	assert.Error(t, err)
}

func TestExtractMissingPDF(t *testing.T) {
	e := NewExtractor(config.ImagesConfig{MinDimension: 300, ResizeFactor: 0.7}, logger.NewNop())
	_, err := e.Extract(context.Background(), filepath.Join(t.TempDir(), "none.pdf"), t.TempDir())
	assert.Error(t, err)
}
