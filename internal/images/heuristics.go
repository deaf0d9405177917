package images

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nguyentantai21042004/video-summarizer/pkg/models"
)

const (
	baseScore    = 0.5
	keywordBonus = 0.2
	contextBonus = 0.1

	defaultPlacement   = models.SectionConceptExplanation
	defaultDescription = "An educational illustration"
	altTextPrefix      = "Educational illustration: "
)

var educationalKeywords = []string{"diagram", "chart", "graph", "example", "model", "process"}

type keywordRule struct {
	value    string
	keywords []string
}

// placementRules are checked in order; the first match wins.
var placementRules = []keywordRule{
	{models.SectionOverview, []string{"overview", "introduction", "summary"}},
	{models.SectionConceptExplanation, []string{"diagram", "model", "structure", "theory", "concept"}},
	{models.SectionExamples, []string{"example", "sample", "demo", "practical", "real"}},
	{models.SectionKeyTakeaways, []string{"key", "important", "summary", "conclusion"}},
	{models.SectionPracticeExercises, []string{"exercise", "practice", "activity", "quiz"}},
}

// descriptionRules are checked in order, so "chart" labels a flowchart.
var descriptionRules = []keywordRule{
	{"A diagram illustrating key concepts", []string{"diagram"}},
	{"A chart showing data relationships", []string{"chart"}},
	{"A graph displaying quantitative information", []string{"graph"}},
	{"A flowchart showing process steps", []string{"flowchart"}},
	{"A model demonstrating the concept", []string{"model"}},
	{"An example illustration", []string{"example"}},
	{"A process visualization", []string{"process"}},
	{"A structural representation", []string{"structure"}},
	{"An algorithm visualization", []string{"algorithm"}},
	{"A network diagram", []string{"network"}},
	{"An architectural diagram", []string{"architecture"}},
	{"A comparison illustration", []string{"comparison"}},
	{"A timeline representation", []string{"timeline"}},
	{"A cycle diagram", []string{"cycle"}},
	{"A hierarchical structure", []string{"hierarchy"}},
	{"A workflow diagram", []string{"workflow"}},
	{"A conceptual illustration", []string{"concept"}},
	{"A theoretical representation", []string{"theory"}},
	{"A practical example", []string{"practical"}},
	{"A real-world example", []string{"real"}},
}


// Score rates how relevant an image looks for the topic, from its file
// name alone. The result is within [0, 1].
func Score(filename, topic string) float64 {
	name := strings.ToLower(filename)
	score := baseScore

	for _, kw := range educationalKeywords {
		if strings.Contains(name, kw) {
			score += keywordBonus
		}
	}
	for _, word := range strings.Fields(strings.ToLower(topic)) {
		if utf8.RuneCountInString(word) > 3 && strings.Contains(name, word) {
			score += contextBonus
		}
	}

	// round away float noise such as 0.7000000000000001
	score = math.Round(score*1000) / 1000
	return math.Min(score, 1.0)
}

// Placement suggests the study section an image belongs to.
func Placement(filename string) string {
	return matchRule(placementRules, filename, defaultPlacement)
}

func Description(filename string) string {
	return matchRule(descriptionRules, filename, defaultDescription)
}

// AltText derives accessibility text from the file name stem.
func AltText(filename string) string {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.NewReplacer("_", " ", "-", " ").Replace(stem)

	words := strings.Fields(stem)
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return altTextPrefix + strings.Join(words, " ")
}

func matchRule(rules []keywordRule, filename, fallback string) string {
	name := strings.ToLower(filename)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(name, kw) {
				return r.value
			}
		}
	}
	return fallback
}

func titleWord(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}

func isSupportedImage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp":
		return true
	}
	return false
}
