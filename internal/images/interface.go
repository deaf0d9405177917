package images

import (
	"context"

	"github.com/nguyentantai21042004/video-summarizer/pkg/models"
)

// Extractor pulls raster images out of a PDF into a directory.
type Extractor interface {
	Extract(ctx context.Context, pdfPath, outDir string) ([]string, error)
}

// Analyzer scores extracted images against a topic and publishes the
// selected ones to the static images directory.
type Analyzer interface {
	Select(ctx context.Context, dir, topic string, max int) ([]models.SelectedImage, error)
	Publish(ctx context.Context, images []models.SelectedImage, prefix string) []models.SelectedImage
}
