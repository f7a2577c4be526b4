package llm

import (
	"context"
)

// LLMClient is the inference oracle: a prompt in, raw text out. A nil client
// is a supported state everywhere in the pipeline; callers degrade to their
// documented fallback values instead of failing.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
