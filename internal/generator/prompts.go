package generator

import (
	"fmt"

	"github.com/nguyentantai21042004/video-summarizer/pkg/models"
)

// promptSpec binds a section template to its transcript prefix length and
// completion budget. Templates take the title then the transcript excerpt.
type promptSpec struct {
	excerpt   int
	maxTokens int
	template  string
}

const defaultMaxTokens = 800

const summaryPrompt = `Create a concise, well-structured summary of the following video transcript.

Video Title: %s

Transcript:
%s

Use exactly this format:

**Main Topic:** [one sentence describing the main subject]

**Key Points:**
• [first key point]
• [second key point]
• [third key point]
• [fourth key point, if relevant]

**Key Takeaways:** [two or three sentences on what the viewer should remember]

Keep the summary under 300 words. Focus on the most important information.`

const titlePrompt = `Read the beginning of this transcript and propose a short, descriptive title of at most 8 words.
Reply with the title only, without quotes or extra commentary.

Transcript:
%s`

var sectionPrompts = map[string]promptSpec{
	models.SectionOverview: {
		excerpt:   2000,
		maxTokens: 600,
		template: `You are an instructional designer. Based on the transcript below, write an overview for study material on "%s".

Include:
1. A brief introduction to the topic
2. Why the topic matters
3. What the learner will gain from studying it

Transcript:
%s

Write 2-3 clear paragraphs suitable for students.`,
	},
	models.SectionLearningOutcomes: {
		excerpt:   1500,
		maxTokens: 400,
		template: `List 4-6 specific learning outcomes for study material on "%s", based on the transcript below.
Start every outcome with an action verb (understand, explain, apply, analyze, evaluate) and format them as bullet points.

Transcript:
%s`,
	},
	models.SectionConceptExplanation: {
		excerpt:   4000,
		maxTokens: defaultMaxTokens,
		template: `Explain the main concepts covered in this transcript about "%s".

For each concept:
1. Give a clear definition
2. Break it into understandable parts
3. Show how it relates to the other concepts
4. Use analogies where they help

Transcript:
%s

Use headings and bullet points for readability.`,
	},
	models.SectionExamples: {
		excerpt:   3000,
		maxTokens: defaultMaxTokens,
		template: `Write 3-4 practical examples that illustrate the concepts in this transcript about "%s".

For each example:
1. Give it a short title
2. Describe the scenario step by step
3. Connect it back to the key concepts

Transcript:
%s`,
	},
	models.SectionCaseStudies: {
		excerpt:   3000,
		maxTokens: defaultMaxTokens,
		template: `Write 2 realistic case studies or scenarios that apply the ideas in this transcript about "%s".

For each case:
1. Background and context
2. The challenge or problem
3. How the concepts solve it
4. The outcome and lessons learned

Transcript:
%s`,
	},
	models.SectionKeyTakeaways: {
		excerpt:   3000,
		maxTokens: defaultMaxTokens,
		template: `Summarize the key takeaways of this transcript about "%s".

Provide 5-7 takeaways as bullet points. Each should be one memorable, self-contained statement.

Transcript:
%s`,
	},
	models.SectionPracticeExercises: {
		excerpt:   3000,
		maxTokens: defaultMaxTokens,
		template: `Create 4-5 practice exercises for learners studying "%s", based on the transcript below.

Mix difficulty levels and types (short answer, application, reflection). Number each exercise and state clearly what the learner should do.

Transcript:
%s`,
	},
	models.SectionQuizQuestions: {
		excerpt:   3000,
		maxTokens: defaultMaxTokens,
		template: `Write a self-assessment quiz on "%s" based on the transcript below.

Include:
- 5 multiple-choice questions with 4 options each
- 2 true/false questions
- 1 short-answer question

Put an answer key at the end.

Transcript:
%s`,
	},
}

var (
	summarySpec = promptSpec{excerpt: 4000, maxTokens: 350, template: summaryPrompt}
	titleSpec   = promptSpec{excerpt: 1000, maxTokens: 30, template: titlePrompt}
)

func (s promptSpec) render(title, transcript string) string {
	return fmt.Sprintf(s.template, title, truncate(transcript, s.excerpt))
}
