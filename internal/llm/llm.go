package llm

import (
	"context"
	"errors"
)

// Client abstracts LLM providers for document generation.
type Client interface {
	Generate(ctx context.Context, input GenerateInput) (Generation, error)
}

// GenerateInput carries the composed prompt and sampling parameters for one call.
type GenerateInput struct {
	Messages    []Message
	Temperature float32
}

// Message is a single chat message sent to the provider.
type Message struct {
	Role    string
	Content string
}

// Usage holds token counts reported by the provider, passed through untransformed.
type Usage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// Generation is the provider's response to a single prompt.
type Generation struct {
	Text  string
	Model string
	Usage Usage
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM provider not configured")

// PlaceholderClient is a stub implementation used when no provider is wired.
type PlaceholderClient struct{}

// Generate returns ErrNotConfigured.
func (PlaceholderClient) Generate(ctx context.Context, input GenerateInput) (Generation, error) {
	_ = ctx
	_ = input
	return Generation{}, ErrNotConfigured
}
