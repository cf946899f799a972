// Package ai talks to an OpenAI-compatible completion API with sequential
// credential fallback, and wraps the two completion flows the planner uses:
// generating a plan document and categorizing item labels.
package ai

import "context"

// Message is one chat turn sent to the completion endpoint.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionOptions tune a single completion call. Zero values fall back to
// the client defaults.
type CompletionOptions struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

// Model describes one entry of the provider's model listing.
type Model struct {
	ID      string `json:"id"`
	OwnedBy string `json:"owned_by"`
	Created int64  `json:"created"`
}

// Client is a single-credential completion client.
type Client interface {
	Completion(ctx context.Context, messages []Message, opts CompletionOptions) (string, error)
	ListModels(ctx context.Context) ([]Model, error)
}

//go:generate mockgen -source=client.go -destination=client_mock.go -package=ai
