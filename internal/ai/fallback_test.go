package ai

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunner_FallsBackOnRetryableErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	first := NewMockClient(ctrl)
	second := NewMockClient(ctrl)
	third := NewMockClient(ctrl)

	first.EXPECT().Completion(ctx, gomock.Any(), gomock.Any()).
		Return("", errors.New("completion API failed (429): slow down"))
	second.EXPECT().Completion(ctx, gomock.Any(), gomock.Any()).
		Return("", errors.New("completion API failed (429): slow down"))
	third.EXPECT().Completion(ctx, gomock.Any(), gomock.Any()).
		Return("answer", nil)

	clients := map[string]Client{"primary": first, "backup1": second, "backup2": third}
	creds := []Credential{
		{Source: "primary", Key: "k1"},
		{Source: "backup1", Key: "k2"},
		{Source: "backup2", Key: "k3"},
		{Source: "backup3", Key: "k4"}, // must never be reached
	}

	runner := NewRunner(creds, func(c Credential) Client {
		client, ok := clients[c.Source]
		require.True(t, ok, "unexpected credential %s", c.Source)
		return client
	}, discardLogger())

	content, err := runner.Completion(ctx, []Message{{Role: "system", Content: "hi"}}, CompletionOptions{})
	require.NoError(t, err)
	assert.Equal(t, "answer", content)
}

func TestRunner_FatalErrorAbortsImmediately(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	first := NewMockClient(ctrl)
	first.EXPECT().Completion(ctx, gomock.Any(), gomock.Any()).
		Return("", errors.New("completion API failed (500): boom"))

	runner := NewRunner(
		[]Credential{{Source: "primary", Key: "k1"}, {Source: "backup1", Key: "k2"}},
		func(Credential) Client { return first },
		discardLogger(),
	)

	_, err := runner.Completion(ctx, nil, CompletionOptions{})
	assert.ErrorContains(t, err, "500")
}

func TestRunner_AllCredentialsFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	client := NewMockClient(ctrl)
	client.EXPECT().ListModels(ctx).Return(nil, errors.New("quota exceeded")).Times(2)

	runner := NewRunner(
		[]Credential{{Source: "primary", Key: "k1"}, {Source: "backup1", Key: "k2"}},
		func(Credential) Client { return client },
		discardLogger(),
	)

	_, err := runner.ListModels(ctx)
	assert.ErrorContains(t, err, "quota")
}

func TestRunner_NoCredentials(t *testing.T) {
	runner := NewRunner(nil, func(Credential) Client { return nil }, discardLogger())

	_, err := runner.Completion(context.Background(), nil, CompletionOptions{})
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"completion API failed (429): Rate limit reached", true},
		{"completion API failed (401): Unauthorized", true},
		{"insufficient_quota", true},
		{"completion API failed (500): internal error", false},
		{"calling completion API: connection refused", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, retryable(errors.New(tt.msg)), tt.msg)
	}
}
