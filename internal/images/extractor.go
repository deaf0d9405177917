package images

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	maxPageNameRunes = 50
	pageNameLines    = 3
	fallbackPageName = "page"
)

// Extract writes every sufficiently large image of the PDF to outDir as
// <page text>_<page>_<index>.png and returns the written paths.
func (e *implExtractor) Extract(ctx context.Context, pdfPath, outDir string) ([]string, error) {
	pages, err := api.PageCountFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("count pdf pages: %w", err)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}

	texts := e.pageTexts(ctx, pdfPath)
	conf := model.NewDefaultConfiguration()

	e.logger.Info(ctx, "Extracting images from %s (%d pages)", filepath.Base(pdfPath), pages)

	var written []string
	for page := 1; page <= pages; page++ {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		paths, err := e.extractPage(ctx, pdfPath, outDir, page, pageName(texts[page]), conf)
		if err != nil {
			e.logger.Warn(ctx, "Skipping images of page %d: %v", page, err)
			continue
		}
		written = append(written, paths...)
	}

	e.logger.Info(ctx, "Extracted %d images", len(written))
	return written, nil
}

func (e *implExtractor) extractPage(ctx context.Context, pdfPath, outDir string, page int, name string, conf *model.Configuration) ([]string, error) {
	raw, err := os.MkdirTemp(outDir, "raw-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(raw)

	if err := api.ExtractImagesFile(pdfPath, raw, []string{strconv.Itoa(page)}, conf); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(raw)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var written []string
	for i, entry := range entries {
		if entry.IsDir() {
			continue
		}
		src := filepath.Join(raw, entry.Name())
		dst := filepath.Join(outDir, fmt.Sprintf("%s_%d_%d.png", name, page, i+1))

		ok, err := e.convert(src, dst)
		if err != nil {
			e.logger.Debug(ctx, "Cannot decode %s: %v", entry.Name(), err)
			continue
		}
		if ok {
			written = append(written, dst)
		}
	}
	return written, nil
}

// convert decodes src, drops it when smaller than the minimum dimension and
// otherwise writes a scaled PNG to dst.
func (e *implExtractor) convert(src, dst string) (bool, error) {
	f, err := os.Open(src)
	if err != nil {
		return false, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return false, err
	}

	b := img.Bounds()
	if b.Dx() < e.minDimension || b.Dy() < e.minDimension {
		return false, nil
	}
	return true, savePNG(scale(img, e.resizeFactor), dst)
}

func scale(src image.Image, factor float64) image.Image {
	if factor <= 0 || factor >= 1 {
		return src
	}
	b := src.Bounds()
	w := max(1, int(float64(b.Dx())*factor))
	h := max(1, int(float64(b.Dy())*factor))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func savePNG(img image.Image, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// pageTexts reads each page's plain text. Text is only used for naming,
// so a PDF the text reader cannot parse yields an empty map.
func (e *implExtractor) pageTexts(ctx context.Context, path string) (texts map[int]string) {
	texts = make(map[int]string)
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn(ctx, "PDF text reader panicked on %s: %v", filepath.Base(path), r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		e.logger.Warn(ctx, "Cannot read PDF text of %s: %v", filepath.Base(path), err)
		return texts
	}
	defer f.Close()

	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		texts[i] = text
	}
	return texts
}

// pageName builds a file-name-safe label from the first lines of a page.
func pageName(text string) string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
		if len(lines) == pageNameLines {
			break
		}
	}

	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`<>:"/\|?*`, r) || unicode.IsControl(r) {
			return -1
		}
		return r
	}, strings.Join(lines, "_"))

	for strings.Contains(name, "..") {
		name = strings.ReplaceAll(name, "..", ".")
	}

	runes := []rune(name)
	if len(runes) > maxPageNameRunes {
		runes = runes[:maxPageNameRunes]
	}
	name = strings.Trim(string(runes), " ._")
	if name == "" {
		return fallbackPageName
	}
	return name
}
