package generator

import (
	"context"
	"fmt"
	"strings"
)

// DefaultTranscriptTitle names transcript jobs when no title can be derived.
const DefaultTranscriptTitle = "Direct Transcript"

const maxTitleRunes = 100

// Summary renders the summary prompt over the first 4000 runes.
func (g *implGenerator) Summary(ctx context.Context, transcript, title string) string {
	return g.generate(ctx, summarySpec.render(title, transcript), summarySpec.maxTokens)
}

// Section generates one named study section. Unknown names yield an
// in-band error text.
func (g *implGenerator) Section(ctx context.Context, section, transcript, title string) string {
	spec, ok := sectionPrompts[section]
	if !ok {
		return msgGenericPrefix + fmt.Sprintf("unknown section %q", section)
	}
	g.logger.Debug(ctx, "Generating section %s", section)
	return g.generate(ctx, spec.render(title, transcript), spec.maxTokens)
}

func (g *implGenerator) Title(ctx context.Context, transcript string) string {
	prompt := fmt.Sprintf(titleSpec.template, truncate(transcript, titleSpec.excerpt))
	text, _, err := g.call(ctx, prompt, titleSpec.maxTokens)
	if err != nil {
		g.logger.Warn(ctx, "Title generation failed: %v", err)
		return DefaultTranscriptTitle
	}
	if title := cleanTitle(text); title != "" {
		return title
	}
	return DefaultTranscriptTitle
}

// generate applies the in-band failure policy on top of call.
func (g *implGenerator) generate(ctx context.Context, prompt string, maxTokens int) string {
	text, retried, err := g.call(ctx, prompt, maxTokens)
	switch {
	case err != nil && retried:
		return msgMemoryGiveUp
	case err != nil:
		return msgGenericPrefix + err.Error()
	case strings.TrimSpace(text) == "" && retried:
		return msgReducedEmpty
	case strings.TrimSpace(text) == "":
		return msgEmpty
	}
	return strings.TrimSpace(text)
}

// call sends one completion request. A memory-exhaustion failure is retried
// exactly once with a shortened prompt and a smaller token budget.
func (g *implGenerator) call(ctx context.Context, prompt string, maxTokens int) (string, bool, error) {
	opts := Options{Temperature: g.temperature, TopP: g.topP, MaxTokens: maxTokens}

	text, err := g.provider.Generate(ctx, prompt, opts)
	if err == nil {
		return text, false, nil
	}
	if !IsMemoryExhausted(err) || ctx.Err() != nil {
		g.logger.Error(ctx, "%s generation failed: %v", g.provider.Name(), err)
		return "", false, err
	}

	g.logger.Warn(ctx, "%s ran out of memory, retrying with reduced parameters", g.provider.Name())
	opts.MaxTokens = min(maxTokens, retryMaxTokensCap)
	text, err = g.provider.Generate(ctx, truncate(prompt, retryPromptRunes), opts)
	if err != nil {
		g.logger.Error(ctx, "%s retry failed: %v", g.provider.Name(), err)
		return "", true, err
	}
	return text, true, nil
}

func cleanTitle(s string) string {
	line := strings.TrimSpace(s)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimPrefix(line, "Title:")
	line = strings.Trim(line, " \t\"'*#")
	return truncate(line, maxTitleRunes)
}
