package llm

import (
	"context"
	"time"
)

// timeoutClient bounds every oracle call with its own deadline so a hung
// remote inference request cannot stall the whole pipeline.
type timeoutClient struct {
	inner   LLMClient
	timeout time.Duration
}

// WithTimeout wraps a client with a per-call timeout.
func WithTimeout(inner LLMClient, timeout time.Duration) LLMClient {
	return &timeoutClient{inner: inner, timeout: timeout}
}

func (c *timeoutClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.inner.Generate(ctx, prompt)
}
