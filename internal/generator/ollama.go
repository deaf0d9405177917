package generator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"

	"github.com/nguyentantai21042004/video-summarizer/internal/config"
)

// Ollama generates text with a local Ollama server.
type Ollama struct {
	client *api.Client
	model  string
}

func NewOllama(cfg config.OllamaConfig) (*Ollama, error) {
	base, err := url.Parse(cfg.Host)
	if err != nil {
		return nil, fmt.Errorf("parse ollama host %q: %w", cfg.Host, err)
	}
	return &Ollama{
		client: api.NewClient(base, http.DefaultClient),
		model:  cfg.Model,
	}, nil
}

func (o *Ollama) Name() string { return "ollama" }

func (o *Ollama) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	stream := false
	req := &api.GenerateRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: &stream,
		Options: map[string]any{
			"temperature": opts.Temperature,
			"top_p":       opts.TopP,
			"num_predict": opts.MaxTokens,
		},
	}

	var sb strings.Builder
	err := o.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", classifyOllama(err)
	}
	return sb.String(), nil
}

// classifyOllama tags server-side 500s and memory complaints with
// ErrMemoryExhausted, the way the server reports a model that no longer fits.
func classifyOllama(err error) error {
	var se api.StatusError
	if errors.As(err, &se) {
		if se.StatusCode == http.StatusInternalServerError || strings.Contains(strings.ToLower(se.ErrorMessage), "memory") {
			return fmt.Errorf("%w: %s (status code: %d)", ErrMemoryExhausted, se.ErrorMessage, se.StatusCode)
		}
		return fmt.Errorf("ollama: %s (status code: %d)", se.ErrorMessage, se.StatusCode)
	}
	return fmt.Errorf("ollama: %w", err)
}

var _ Provider = (*Ollama)(nil)
