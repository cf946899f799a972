package ai

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// ErrNoCredentials is returned when no API key is configured at all.
var ErrNoCredentials = errors.New("no AI credentials configured")

// Credential is one configured API key, tagged with the source it was
// loaded from so operators can tell which key is in play.
type Credential struct {
	Source string
	Key    string
}

// Factory builds a client for one credential.
type Factory func(Credential) Client

// Runner tries each credential in order. A failure classified as retryable
// (rate limit, exhausted quota, invalid key) moves on to the next credential
// immediately, with no backoff and no second attempt on the same one. Any
// other failure aborts the whole call.
type Runner struct {
	creds   []Credential
	factory Factory
	log     *slog.Logger
}

func NewRunner(creds []Credential, factory Factory, log *slog.Logger) *Runner {
	return &Runner{creds: creds, factory: factory, log: log}
}

func (r *Runner) Completion(ctx context.Context, messages []Message, opts CompletionOptions) (string, error) {
	var content string

	err := r.run(ctx, func(c Client) error {
		var err error
		content, err = c.Completion(ctx, messages, opts)
		return err
	})

	return content, err
}

func (r *Runner) ListModels(ctx context.Context) ([]Model, error) {
	var models []Model

	err := r.run(ctx, func(c Client) error {
		var err error
		models, err = c.ListModels(ctx)
		return err
	})

	return models, err
}

func (r *Runner) run(ctx context.Context, action func(Client) error) error {
	if len(r.creds) == 0 {
		return ErrNoCredentials
	}

	var lastErr error

	for _, cred := range r.creds {
		err := action(r.factory(cred))
		if err == nil {
			return nil
		}

		if !retryable(err) {
			return err
		}

		r.log.WarnContext(ctx, "AI credential failed, trying next",
			slog.String("source", cred.Source), slog.String("error", err.Error()))
		lastErr = err
	}

	return lastErr
}

var retryMarkers = []string{"rate limit", "quota", "insufficient", "unauthorized", "429", "401"}

func retryable(err error) bool {
	msg := strings.ToLower(err.Error())

	for _, marker := range retryMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}
