package failover

import (
	"context"
	"errors"
	"fmt"
	"log"

	"contract-iq-be/pkg/llm"
)

var (
	// ErrNoCredentials means neither the primary nor the fallback
	// credential was configured.
	ErrNoCredentials = errors.New("no completion credentials configured")

	// ErrCredentialsExhausted means the primary credential was rejected
	// (auth or rate limit) and the fallback credential was absent or
	// failed as well.
	ErrCredentialsExhausted = errors.New("all completion credentials exhausted")
)

// Client chains two completion providers sharing one upstream API.
// When the primary credential hits an auth or rate-limit rejection the
// request is retried once on the fallback credential.
type Client struct {
	primary  llm.LLMProvider
	fallback llm.LLMProvider
	canned   map[string]string
	generic  string
}

func NewClient(primary, fallback llm.LLMProvider, canned map[string]string, generic string) *Client {
	return &Client{
		primary:  primary,
		fallback: fallback,
		canned:   canned,
		generic:  generic,
	}
}

// Complete runs the chat completion through the credential chain.
// Auth and rate-limit rejections trigger the fallback credential; every
// other failure (transport, empty completion) is surfaced as-is.
func (c *Client) Complete(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	client := c.primary
	if client == nil {
		if c.fallback == nil {
			return "", ErrNoCredentials
		}
		log.Println("[Completion] Primary credential not configured, using fallback")
		client = c.fallback
	}

	text, err := client.Chat(ctx, history, options...)
	if err == nil {
		return text, nil
	}

	if !llm.IsAuthError(err) && !llm.IsRateLimitError(err) {
		return "", err
	}

	if c.fallback == nil || client == c.fallback {
		return "", fmt.Errorf("%w: %v", ErrCredentialsExhausted, err)
	}

	log.Printf("[Completion] Primary credential rejected: %v, retrying with fallback", err)
	text, fbErr := c.fallback.Chat(ctx, history, options...)
	if fbErr != nil {
		log.Printf("[Completion] Fallback credential failed: %v", fbErr)
		return "", fmt.Errorf("%w: %v", ErrCredentialsExhausted, fbErr)
	}
	return text, nil
}

// CompleteWithFallback behaves like Complete but degrades to a canned
// response keyed by use case when both credentials are exhausted. The
// returned bool reports whether the text is canned.
func (c *Client) CompleteWithFallback(ctx context.Context, useCase string, history []llm.Message, options ...llm.Option) (string, bool, error) {
	text, err := c.Complete(ctx, history, options...)
	if err == nil {
		return text, false, nil
	}
	if errors.Is(err, ErrCredentialsExhausted) {
		return c.cannedFor(useCase), true, nil
	}
	return "", false, err
}

func (c *Client) cannedFor(useCase string) string {
	if text, ok := c.canned[useCase]; ok {
		return text
	}
	return c.generic
}
