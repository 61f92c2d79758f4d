// Package llm provides text generators used by event extraction.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/noah-isme/orbit-api/pkg/config"
)

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("llm: empty response")

// Generator turns a prompt into model text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewGenerator builds the configured provider. A nil generator with a nil error
// means generation is disabled and callers should use their fallback path.
func NewGenerator(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (Generator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case "", config.ProviderGemini:
		if cfg.APIKey == "" {
			logger.Info("llm api key not configured, extraction uses regex fallback")
			return nil, nil
		}
		return NewGeminiREST(cfg.APIURL, cfg.APIKey, httpClient), nil
	case config.ProviderGeminiSDK:
		if cfg.APIKey == "" {
			logger.Info("llm api key not configured, extraction uses regex fallback")
			return nil, nil
		}
		gemini, err := NewGemini(ctx, cfg.Model, cfg.APIKey)
		if err != nil {
			return nil, err
		}
		return gemini, nil
	case config.ProviderOpenAI:
		if cfg.APIKey == "" {
			logger.Info("llm api key not configured, extraction uses regex fallback")
			return nil, nil
		}
		return NewOpenAI(cfg.Model, cfg.APIKey, cfg.BaseURL, httpClient), nil
	case config.ProviderOllama:
		ollama, err := NewOllama(cfg.Model, cfg.BaseURL, httpClient)
		if err != nil {
			return nil, err
		}
		return ollama, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}
