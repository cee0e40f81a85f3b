// Package provider implements the outbound AI provider clients (an
// OpenAI-style chat-completion client and a Google-style generate-content
// client) plus the pure response normalizers shared with their tests.
//
// Both clients follow the same contract: up to three attempts with
// exponential backoff, a per-call timeout independent of the retry loop, and
// a hard (non-retried) failure when a 2xx response carries a body that is not
// JSON — that indicates a protocol mismatch, not transience.
package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"focusd/internal/common"
	"focusd/internal/logging"
)

// Options tune a single call. Zero values mean defaults (30 s timeout, the
// provider's default model).
type Options struct {
	Timeout time.Duration
	Model   string
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return common.DefaultProviderTimeout
	}
	return o.Timeout
}

// Client is an outbound provider. Call returns the normalized response text
// or the last observed error once the retry budget is exhausted.
type Client interface {
	Name() string
	Call(ctx context.Context, apiKey, prompt string, opts Options) (string, error)
}

// retry budget shared by both clients: 3 attempts total, exponential backoff
// from a 100 ms base between attempts.
const (
	maxRetries  = 2
	backoffBase = 100 * time.Millisecond
)

// ForName maps a user-facing provider name (including aliases) to a client.
func ForName(name string, log logging.Logger) (Client, error) {
	switch strings.ToLower(name) {
	case "chatgpt", "openai":
		return NewChatGPTClient(log), nil
	case "gemini", "google":
		return NewGeminiClient(log), nil
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrorUnknownProvider, name)
	}
}
