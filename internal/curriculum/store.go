package curriculum

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/yusufk/chefmate/internal/config"
	"github.com/yusufk/chefmate/internal/llm"
	"github.com/yusufk/chefmate/internal/prompts"
)

// CacheRepo persists raw curriculum text keyed by (topic, configuration).
// No TTL and no eviction; entries live until explicitly cleared.
type CacheRepo interface {
	// Get returns the raw text for key, or ok=false on a miss.
	Get(ctx context.Context, key string) (raw string, ok bool, err error)

	// Put stores raw text under key. Topic and configKey are stored
	// alongside for inspection.
	Put(ctx context.Context, key, topic, configKey, raw string) error
}

// Store generates curricula through the LLM provider, caching raw results.
type Store struct {
	provider llm.Provider
	catalog  *prompts.Catalog
	cache    CacheRepo
	cfg      GenerateConfig
}

// GenerateConfig bounds curriculum generation requests.
type GenerateConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultGenerateConfig returns the standard generation bounds.
func DefaultGenerateConfig() GenerateConfig {
	return GenerateConfig{
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}

// NewStore creates a curriculum Store.
func NewStore(provider llm.Provider, catalog *prompts.Catalog, cache CacheRepo, cfg GenerateConfig) *Store {
	return &Store{provider: provider, catalog: catalog, cache: cache, cfg: cfg}
}

// CacheKey returns the deterministic cache key for a (topic, configuration)
// pair: hex SHA-256 over the canonicalized tuple. Collision-resistant
// regardless of what characters the topic contains.
func CacheKey(topic string, cfg config.Config) string {
	sum := sha256.Sum256([]byte(topic + "\x1f" + cfg.CanonicalKey()))
	return hex.EncodeToString(sum[:])
}

// GetOrGenerate returns the curriculum for (topic, cfg), loading from
// cache when a valid entry exists and generating otherwise. A corrupt
// cache entry falls through to regeneration instead of failing the call.
func (s *Store) GetOrGenerate(ctx context.Context, topic string, cfg config.Config) (*Curriculum, error) {
	key := CacheKey(topic, cfg)

	if raw, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		if cur, perr := Parse(topic, raw); perr == nil {
			return cur, nil
		}
		// Unparsable cache entry: regenerate.
	}

	ctx = llm.WithPurpose(ctx, "curriculum")
	resp, err := s.provider.Generate(ctx, llm.Request{
		System: prompts.AgentSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: s.catalog.Curriculum(topic)},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("curriculum generation: %w", err)
	}

	raw := resp.Text()
	cur, err := Parse(topic, raw)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Put(ctx, key, topic, cfg.CanonicalKey(), raw); err != nil {
		return nil, fmt.Errorf("cache curriculum: %w", err)
	}

	return cur, nil
}
