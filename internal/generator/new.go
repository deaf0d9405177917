package generator

import (
	"fmt"

	"github.com/nguyentantai21042004/video-summarizer/internal/config"
	"github.com/nguyentantai21042004/video-summarizer/internal/logger"
)

type implGenerator struct {
	provider    Provider
	temperature float64
	topP        float64
	logger      logger.Logger
}

// New creates a Generator over provider using the configured sampling.
func New(provider Provider, cfg config.LLMConfig, log logger.Logger) Generator {
	return &implGenerator{
		provider:    provider,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
		logger:      log,
	}
}

// NewProvider constructs the provider named by cfg.Provider.
func NewProvider(cfg config.LLMConfig, log logger.Logger) (Provider, error) {
	switch cfg.Provider {
	case "ollama":
		return NewOllama(cfg.Ollama)
	case "gemini":
		return NewGemini(cfg.Gemini, log)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q: must be one of ollama, gemini", cfg.Provider)
	}
}
