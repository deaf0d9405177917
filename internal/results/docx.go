package results

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/common/units"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName     = "Times New Roman"
	codeFontName = "Courier New"
	fontSize     = 12
	textColor    = "000000"

	maxImageWidthInches = 6.0
	imageDPI            = 96.0
	illustrationsTitle  = "visual illustrations"
)

var (
	reHeading  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBullet   = regexp.MustCompile(`^[\-\*•]\s+(.+)$`)
	reNumbered = regexp.MustCompile(`^\d+[.)]\s+(.+)$`)
	reImage    = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)]+)\)$`)
	reRule     = regexp.MustCompile(`^(-{3,}|\*{3,}|_{3,})$`)

	// one inline span per match: bold, italic, code or link
	reInline = regexp.MustCompile("\\*\\*(.+?)\\*\\*|__(.+?)__|\\*([^*\\s][^*]*?)\\*|`([^`]+)`|\\[([^\\]]+)\\]\\([^)]+\\)")
)

type spanStyle int

const (
	stylePlain spanStyle = iota
	styleBold
	styleItalic
	styleCode
)

type span struct {
	text  string
	style spanStyle
}

// markdownToDocx renders study-material Markdown as a styled document.
// Image lines under a "Visual Illustrations" heading are embedded from the
// image directory; elsewhere they degrade to their alt text.
func (a *Assembler) markdownToDocx(markdown, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	inIllustrations := false
	var paragraph []string

	flush := func() {
		if len(paragraph) == 0 {
			return
		}
		addRichText(doc.AddParagraph(""), strings.Join(paragraph, " "))
		paragraph = nil
	}

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "" || reRule.MatchString(trimmed):
			flush()

		case reHeading.MatchString(trimmed):
			flush()
			m := reHeading.FindStringSubmatch(trimmed)
			level := len(m[1])
			inIllustrations = level == 3 && strings.EqualFold(strings.TrimSpace(m[2]), illustrationsTitle)
			addStyledRun(doc.AddParagraph(""), m[2], true, headingSize(level))

		case reImage.MatchString(trimmed):
			flush()
			m := reImage.FindStringSubmatch(trimmed)
			if inIllustrations && a.addImage(doc, m[2]) {
				continue
			}
			addStyledRun(doc.AddParagraph(""), "["+m[1]+"]", false, fontSize)

		case reBullet.MatchString(trimmed):
			flush()
			m := reBullet.FindStringSubmatch(trimmed)
			addRichText(doc.AddParagraph(""), "• "+m[1])

		case reNumbered.MatchString(trimmed):
			flush()
			addRichText(doc.AddParagraph(""), trimmed)

		default:
			paragraph = append(paragraph, trimmed)
		}
	}
	flush()

	return doc.SaveTo(outputPath)
}

// addImage embeds the image a Markdown link points at. Only the base name
// of the link is used, resolved inside the image directory.
func (a *Assembler) addImage(doc *docx.RootDoc, link string) bool {
	name, err := url.PathUnescape(path.Base(link))
	if err != nil {
		return false
	}
	p, err := Resolve(a.imageDir, name)
	if err != nil {
		return false
	}

	w, h, ok := imageSizeInches(p)
	if !ok {
		return false
	}
	if _, err := doc.AddPicture(p, units.Inch(w), units.Inch(h)); err != nil {
		return false
	}
	return true
}

func imageSizeInches(p string) (float64, float64, bool) {
	f, err := os.Open(filepath.Clean(p))
	if err != nil {
		return 0, 0, false
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil || cfg.Width == 0 || cfg.Height == 0 {
		return 0, 0, false
	}

	w := float64(cfg.Width) / imageDPI
	h := float64(cfg.Height) / imageDPI
	if w > maxImageWidthInches {
		h = h * maxImageWidthInches / w
		w = maxImageWidthInches
	}
	return w, h, true
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 18
	case 2:
		return 15
	case 3:
		return 13
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = cleanMarkdownInline(text)
	run := p.AddText(text).Font(fontName).Size(size).Color(textColor)
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	for _, s := range parseInline(text) {
		run := p.AddText(s.text).Size(fontSize).Color(textColor)
		switch s.style {
		case styleBold:
			run.Font(fontName).Bold(true)
		case styleItalic:
			run.Font(fontName).Italic(true)
		case styleCode:
			run.Font(codeFontName)
		default:
			run.Font(fontName)
		}
	}
}

// parseInline splits text into styled spans. Links keep only their text.
func parseInline(text string) []span {
	var spans []span
	last := 0
	for _, m := range reInline.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			spans = append(spans, span{text: text[last:m[0]]})
		}
		switch {
		case m[2] >= 0:
			spans = append(spans, span{text: text[m[2]:m[3]], style: styleBold})
		case m[4] >= 0:
			spans = append(spans, span{text: text[m[4]:m[5]], style: styleBold})
		case m[6] >= 0:
			spans = append(spans, span{text: text[m[6]:m[7]], style: styleItalic})
		case m[8] >= 0:
			spans = append(spans, span{text: text[m[8]:m[9]], style: styleCode})
		case m[10] >= 0:
			spans = append(spans, span{text: text[m[10]:m[11]]})
		}
		last = m[1]
	}
	if last < len(text) {
		spans = append(spans, span{text: text[last:]})
	}
	return spans
}

func cleanMarkdownInline(s string) string {
	var sb strings.Builder
	for _, sp := range parseInline(s) {
		sb.WriteString(sp.text)
	}
	return sb.String()
}
