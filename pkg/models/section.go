package models

import "fmt"

const (
	SectionOverview           = "overview"
	SectionLearningOutcomes   = "learning_outcomes"
	SectionConceptExplanation = "concept_explanation"
	SectionExamples           = "examples"
	SectionCaseStudies        = "case_studies"
	SectionKeyTakeaways       = "key_takeaways"
	SectionPracticeExercises  = "practice_exercises"
	SectionQuizQuestions      = "quiz_questions"
)

const (
	ContentSummary       = "summary"
	ContentStudyMaterial = "study_material"
)

// DefaultSections is used when a study-material job names no sections.
var DefaultSections = []string{
	SectionOverview,
	SectionConceptExplanation,
	SectionExamples,
	SectionKeyTakeaways,
	SectionPracticeExercises,
	SectionQuizQuestions,
}

var sectionHeadings = map[string]string{
	SectionOverview:           "Overview",
	SectionLearningOutcomes:   "Learning Outcomes",
	SectionConceptExplanation: "Concept Explanation",
	SectionExamples:           "Examples",
	SectionCaseStudies:        "Case Studies / Scenarios",
	SectionKeyTakeaways:       "Key Takeaways",
	SectionPracticeExercises:  "Practice Exercises / Activities",
	SectionQuizQuestions:      "Quizzes / Self-Assessment",
}

// SectionHeading returns the display heading of a known section.
func SectionHeading(name string) string {
	return sectionHeadings[name]
}

func IsKnownSection(name string) bool {
	_, ok := sectionHeadings[name]
	return ok
}

// NormalizeSections de-duplicates names preserving first occurrence, rejects
// unknown names and inserts learning_outcomes after overview unless it was
// requested explicitly. An empty list yields the defaults.
func NormalizeSections(names []string) ([]string, error) {
	if len(names) == 0 {
		names = DefaultSections
	}

	seen := make(map[string]bool, len(names))
	explicitOutcomes := false
	for _, n := range names {
		if n == SectionLearningOutcomes {
			explicitOutcomes = true
		}
	}

	out := make([]string, 0, len(names)+1)
	for _, n := range names {
		if !IsKnownSection(n) {
			return nil, fmt.Errorf("unknown section %q", n)
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
		if n == SectionOverview && !explicitOutcomes {
			seen[SectionLearningOutcomes] = true
			out = append(out, SectionLearningOutcomes)
		}
	}
	return out, nil
}

// GeneratedSection is one named section's generated text.
type GeneratedSection struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}
