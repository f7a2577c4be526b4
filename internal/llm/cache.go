package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/patrickmn/go-cache"
)

// CachedClient memoizes successful oracle responses by prompt hash for a
// bounded TTL. Failures are never cached.
type CachedClient struct {
	inner LLMClient
	cache *cache.Cache
}

func NewCachedClient(inner LLMClient, ttl time.Duration) *CachedClient {
	return &CachedClient{
		inner: inner,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *CachedClient) Generate(ctx context.Context, prompt string) (string, error) {
	key := promptKey(prompt)
	if cached, found := c.cache.Get(key); found {
		return cached.(string), nil
	}

	response, err := c.inner.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	c.cache.Set(key, response, cache.DefaultExpiration)
	return response, nil
}

func promptKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
