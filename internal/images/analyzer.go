package images

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/nguyentantai21042004/video-summarizer/pkg/models"
)

// Select scores every supported image in dir against topic and returns
// at most max of them, best first. Ties keep file name order.
func (a *implAnalyzer) Select(ctx context.Context, dir, topic string, max int) ([]models.SelectedImage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read image dir: %w", err)
	}

	var selected []models.SelectedImage
	for _, e := range entries {
		if e.IsDir() || !isSupportedImage(e.Name()) {
			continue
		}
		name := e.Name()
		selected = append(selected, models.SelectedImage{
			Path:        filepath.Join(dir, name),
			Filename:    name,
			Score:       Score(name, topic),
			Placement:   Placement(name),
			Description: Description(name),
			AltText:     AltText(name),
		})
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Score > selected[j].Score
	})
	if max >= 0 && len(selected) > max {
		selected = selected[:max]
	}

	a.logger.Info(ctx, "Selected %d images from %s", len(selected), dir)
	return selected, nil
}

// Publish copies images into the static directory under prefix_<name>.
// Images that fail to copy are dropped from the result.
func (a *implAnalyzer) Publish(ctx context.Context, images []models.SelectedImage, prefix string) []models.SelectedImage {
	if len(images) == 0 {
		return nil
	}
	if err := os.MkdirAll(a.staticDir, 0755); err != nil {
		a.logger.Error(ctx, "Failed to create static image dir: %v", err)
		return nil
	}

	published := make([]models.SelectedImage, 0, len(images))
	for _, img := range images {
		name := img.Filename
		if prefix != "" {
			name = prefix + "_" + name
		}
		dest := filepath.Join(a.staticDir, name)
		if err := copyFile(img.Path, dest); err != nil {
			a.logger.Warn(ctx, "Failed to publish image %s: %v", img.Filename, err)
			continue
		}
		img.Path = dest
		img.Filename = name
		published = append(published, img)
	}
	return published
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
