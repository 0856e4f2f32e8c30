package llm

import (
	"context"
	"fmt"
)

// NewProvider creates a Provider from configuration, wrapped with retry
// and request-logging middleware.
func NewProvider(ctx context.Context, cfg Config, log RequestLog) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Caller → retry → logging → base.
	logged := WithLogging(base, log)
	retried := WithRetry(logged, cfg.Retry)

	return retried, nil
}

// ResolveConfigFromEnv returns the effective configuration from
// CHEFMATE_* env vars, falling back to probing the standard provider
// API key variables.
func ResolveConfigFromEnv() (Config, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return Config{}, err
		}
		cfg = discovered
	}
	return cfg, nil
}

// NewImageGenerator creates an ImageGenerator from configuration.
// Returns (nil, nil) when no OpenAI key is available; callers treat a nil
// generator as "image generation not configured".
func NewImageGenerator(cfg Config) (ImageGenerator, error) {
	if cfg.Provider == "mock" {
		return NewMockImageGenerator(), nil
	}
	if cfg.OpenAI.APIKey == "" {
		return nil, nil
	}
	return NewOpenAIImageGenerator(cfg.OpenAI)
}
