package failover

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"contract-iq-be/pkg/llm"
)

type stubProvider struct {
	text  string
	err   error
	calls int
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	s.calls++
	return s.text, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
}

func authErr() error {
	return &llm.APIError{StatusCode: 401, Body: "unauthorized"}
}

func rateLimitErr() error {
	return &llm.APIError{StatusCode: 429, Body: "rate limited"}
}

func history() []llm.Message {
	return []llm.Message{{Role: llm.RoleUser, Content: "hello"}}
}

func TestComplete_PrimarySucceeds(t *testing.T) {
	primary := &stubProvider{text: "answer"}
	fallback := &stubProvider{text: "never"}
	client := NewClient(primary, fallback, nil, "generic")

	text, err := client.Complete(context.Background(), history())

	assert.NoError(t, err)
	assert.Equal(t, "answer", text)
	assert.Equal(t, 0, fallback.calls)
}

func TestComplete_FallbackAfterAuthFailure(t *testing.T) {
	primary := &stubProvider{err: authErr()}
	fallback := &stubProvider{text: "rescued"}
	client := NewClient(primary, fallback, nil, "generic")

	text, err := client.Complete(context.Background(), history())

	assert.NoError(t, err)
	assert.Equal(t, "rescued", text)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestComplete_FallbackAfterRateLimit(t *testing.T) {
	primary := &stubProvider{err: rateLimitErr()}
	fallback := &stubProvider{text: "rescued"}
	client := NewClient(primary, fallback, nil, "generic")

	text, err := client.Complete(context.Background(), history())

	assert.NoError(t, err)
	assert.Equal(t, "rescued", text)
}

func TestComplete_NoCredentials(t *testing.T) {
	client := NewClient(nil, nil, nil, "generic")

	_, err := client.Complete(context.Background(), history())

	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestComplete_OnlyFallbackConfigured(t *testing.T) {
	fallback := &stubProvider{text: "from fallback"}
	client := NewClient(nil, fallback, nil, "generic")

	text, err := client.Complete(context.Background(), history())

	assert.NoError(t, err)
	assert.Equal(t, "from fallback", text)
}

func TestComplete_BothCredentialsRejected(t *testing.T) {
	primary := &stubProvider{err: authErr()}
	fallback := &stubProvider{err: rateLimitErr()}
	client := NewClient(primary, fallback, nil, "generic")

	_, err := client.Complete(context.Background(), history())

	assert.ErrorIs(t, err, ErrCredentialsExhausted)
}

func TestComplete_AuthFailureWithoutFallback(t *testing.T) {
	primary := &stubProvider{err: authErr()}
	client := NewClient(primary, nil, nil, "generic")

	_, err := client.Complete(context.Background(), history())

	assert.ErrorIs(t, err, ErrCredentialsExhausted)
}

func TestComplete_TransportErrorSurfaced(t *testing.T) {
	transient := errors.New("connection refused")
	primary := &stubProvider{err: transient}
	fallback := &stubProvider{text: "never"}
	client := NewClient(primary, fallback, nil, "generic")

	_, err := client.Complete(context.Background(), history())

	assert.ErrorIs(t, err, transient)
	assert.Equal(t, 0, fallback.calls)
}

func TestComplete_EmptyCompletionSurfaced(t *testing.T) {
	primary := &stubProvider{err: llm.ErrEmptyCompletion}
	fallback := &stubProvider{text: "never"}
	client := NewClient(primary, fallback, nil, "generic")

	_, err := client.Complete(context.Background(), history())

	assert.ErrorIs(t, err, llm.ErrEmptyCompletion)
	assert.Equal(t, 0, fallback.calls)
}

func TestCompleteWithFallback_CannedOnExhaustion(t *testing.T) {
	primary := &stubProvider{err: authErr()}
	fallback := &stubProvider{err: authErr()}
	canned := map[string]string{"chat": "canned chat reply"}
	client := NewClient(primary, fallback, canned, "generic")

	text, degraded, err := client.CompleteWithFallback(context.Background(), "chat", history())

	assert.NoError(t, err)
	assert.True(t, degraded)
	assert.Equal(t, "canned chat reply", text)
}

func TestCompleteWithFallback_GenericForUnknownUseCase(t *testing.T) {
	primary := &stubProvider{err: authErr()}
	client := NewClient(primary, nil, map[string]string{"chat": "canned"}, "generic reply")

	text, degraded, err := client.CompleteWithFallback(context.Background(), "translation", history())

	assert.NoError(t, err)
	assert.True(t, degraded)
	assert.Equal(t, "generic reply", text)
}

func TestCompleteWithFallback_PassThroughOnSuccess(t *testing.T) {
	primary := &stubProvider{text: "real answer"}
	client := NewClient(primary, nil, nil, "generic")

	text, degraded, err := client.CompleteWithFallback(context.Background(), "chat", history())

	assert.NoError(t, err)
	assert.False(t, degraded)
	assert.Equal(t, "real answer", text)
}

func TestCompleteWithFallback_OtherErrorsPropagate(t *testing.T) {
	primary := &stubProvider{err: llm.ErrEmptyCompletion}
	client := NewClient(primary, nil, nil, "generic")

	_, _, err := client.CompleteWithFallback(context.Background(), "chat", history())

	assert.ErrorIs(t, err, llm.ErrEmptyCompletion)
}
