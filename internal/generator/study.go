package generator

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/nguyentantai21042004/video-summarizer/pkg/models"
)

const (
	// VisualIllustrationsHeading introduces the figures of a section.
	VisualIllustrationsHeading = "### Visual Illustrations"
	// ImageURLPrefix is the public path selected images are served under.
	ImageURLPrefix = "/static/images/"

	studyFooter = "---\n*Generated using AI-powered Video Summarizer*\n"
)

// FormatStudyMaterial renders the generated sections as one Markdown
// document, in the given order, with selected images appended to the
// section they were placed in.
func FormatStudyMaterial(title string, sections []models.GeneratedSection, images []models.SelectedImage) string {
	figures := placeImages(sections, images)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)

	for _, s := range sections {
		heading := models.SectionHeading(s.Name)
		if heading == "" {
			heading = s.Name
		}
		fmt.Fprintf(&sb, "## %s\n\n", heading)
		sb.WriteString(strings.TrimSpace(s.Content))

		if imgs := figures[s.Name]; len(imgs) > 0 {
			sb.WriteString("\n\n" + VisualIllustrationsHeading + "\n")
			for _, img := range imgs {
				sb.WriteString("\n" + figureMarkdown(img) + "\n")
			}
		}
		sb.WriteString("\n\n")
	}

	sb.WriteString(studyFooter)
	return sb.String()
}

// placeImages groups images by placement. Images placed in a section that
// was not generated go to the first generated section.
func placeImages(sections []models.GeneratedSection, images []models.SelectedImage) map[string][]models.SelectedImage {
	out := make(map[string][]models.SelectedImage)
	if len(sections) == 0 {
		return out
	}

	present := make(map[string]bool, len(sections))
	for _, s := range sections {
		present[s.Name] = true
	}
	for _, img := range images {
		target := img.Placement
		if !present[target] {
			target = sections[0].Name
		}
		out[target] = append(out[target], img)
	}
	return out
}

func figureMarkdown(img models.SelectedImage) string {
	return fmt.Sprintf("![%s](%s%s)\n*Figure: %s*", img.AltText, ImageURLPrefix, url.PathEscape(img.Filename), img.Description)
}
