package generator

import "context"

// Options are the sampling parameters of one completion request.
type Options struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
}

// Provider is a text-generation backend.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

// Generator produces the natural-language content of a job. Generation
// failures are returned in-band as the content text; they never abort a job.
type Generator interface {
	Summary(ctx context.Context, transcript, title string) string
	Section(ctx context.Context, section, transcript, title string) string
	// Title proposes a title for an untitled transcript, falling back to
	// DefaultTranscriptTitle.
	Title(ctx context.Context, transcript string) string
}
