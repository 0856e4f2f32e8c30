package llm

import (
	"context"
	"fmt"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIImageGenerator implements ImageGenerator using DALL-E.
type OpenAIImageGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIImageGenerator creates an image generator from OpenAI config.
// Images always go through OpenAI even when another text provider is
// selected, since it is the only backend here with an image endpoint.
func NewOpenAIImageGenerator(cfg OpenAIConfig) (*OpenAIImageGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required for image generation")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.ImageModel
	if model == "" {
		model = openai.CreateImageModelDallE3
	}

	return &OpenAIImageGenerator{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}, nil
}

func (g *OpenAIImageGenerator) GenerateImage(ctx context.Context, req ImageRequest) (string, error) {
	size := req.Size
	if size == "" {
		size = openai.CreateImageSize1024x1024
	}
	quality := req.Quality
	if quality == "" {
		quality = openai.CreateImageQualityStandard
	}

	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Model:          g.model,
		Prompt:         req.Prompt,
		Size:           size,
		Quality:        quality,
		N:              1,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return "", openaiError(err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", &ErrInvalidResponse{
			Err: fmt.Errorf("no image URL in response"),
		}
	}

	return resp.Data[0].URL, nil
}

// MockImageGenerator is a deterministic ImageGenerator for testing.
// It records every prompt and returns canned URLs in FIFO order.
type MockImageGenerator struct {
	mu      sync.Mutex
	urls    []string
	err     error
	Prompts []string
}

// NewMockImageGenerator creates a mock that serves the given URLs.
func NewMockImageGenerator(urls ...string) *MockImageGenerator {
	return &MockImageGenerator{urls: urls}
}

// FailWith makes every subsequent call return err.
func (m *MockImageGenerator) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockImageGenerator) GenerateImage(_ context.Context, req ImageRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Prompts = append(m.Prompts, req.Prompt)

	if m.err != nil {
		return "", m.err
	}
	if len(m.urls) == 0 {
		return "https://images.example/mock.png", nil
	}
	url := m.urls[0]
	m.urls = m.urls[1:]
	return url, nil
}

// CallCount returns the number of GenerateImage calls made.
func (m *MockImageGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}
