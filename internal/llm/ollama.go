package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	olla "github.com/ollama/ollama/api"
)

const defaultOllamaURL = "http://localhost:11434"

// Ollama generates text with a local Ollama server.
type Ollama struct {
	client *olla.Client
	model  string
}

// NewOllama creates an Ollama generator. baseURL defaults to the local daemon.
func NewOllama(model, baseURL string, httpClient *http.Client) (*Ollama, error) {
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Ollama{client: olla.NewClient(parsedURL, httpClient), model: model}, nil
}

// Generate runs a non-streaming completion.
func (o *Ollama) Generate(ctx context.Context, prompt string) (string, error) {
	stream := false
	var sb strings.Builder
	err := o.client.Generate(ctx, &olla.GenerateRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: &stream,
		Options: map[string]any{
			"temperature": 0.7,
			"top_k":       40,
			"top_p":       0.95,
			"num_predict": 1024,
		},
	}, func(resp olla.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate content with ollama: %w", err)
	}
	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
