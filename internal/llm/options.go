package llm

import (
	"context"
	"fmt"
	"time"
)

// InvokeOptions configures per-stage timeout and retry behavior. Timeout and
// retries apply to each individual Invoke/InvokeJSON call made through the
// wrapped client.
type InvokeOptions struct {
	// Timeout bounds a single call; zero means no stage-level timeout
	Timeout time.Duration
	// MaxRetries is the number of additional attempts after the first failure
	MaxRetries int
	// RetryBackoff is the wait between attempts; zero uses a 1s default
	RetryBackoff time.Duration
}

// DefaultInvokeOptions returns the standard per-stage call options
func DefaultInvokeOptions() InvokeOptions {
	return InvokeOptions{
		Timeout:      120 * time.Second,
		MaxRetries:   2,
		RetryBackoff: time.Second,
	}
}

// WithOptions wraps a client so every call honors the given timeout and
// retry policy.
func WithOptions(client Client, opts InvokeOptions) Client {
	return &retryingClient{inner: client, opts: opts}
}

type retryingClient struct {
	inner Client
	opts  InvokeOptions
}

func (c *retryingClient) Invoke(ctx context.Context, systemPrompt, userPrompt string, tier ModelTier) (string, error) {
	return c.call(ctx, func(callCtx context.Context) (string, error) {
		return c.inner.Invoke(callCtx, systemPrompt, userPrompt, tier)
	})
}

func (c *retryingClient) InvokeJSON(ctx context.Context, systemPrompt, userPrompt string, tier ModelTier) (string, error) {
	return c.call(ctx, func(callCtx context.Context) (string, error) {
		return c.inner.InvokeJSON(callCtx, systemPrompt, userPrompt, tier)
	})
}

func (c *retryingClient) GetModel(tier ModelTier) string {
	return c.inner.GetModel(tier)
}

func (c *retryingClient) Close() error {
	return c.inner.Close()
}

func (c *retryingClient) call(ctx context.Context, fn func(context.Context) (string, error)) (string, error) {
	backoff := c.opts.RetryBackoff
	if backoff <= 0 {
		backoff = time.Second
	}

	var lastErr error
	for attempt := 0; attempt <= c.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		callCtx := ctx
		var cancel context.CancelFunc
		if c.opts.Timeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		}

		text, err := fn(callCtx)
		if cancel != nil {
			cancel()
		}
		if err == nil {
			return text, nil
		}
		lastErr = err

		// The parent context expiring means the whole run is being abandoned
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	return "", fmt.Errorf("call failed after %d attempts: %w", c.opts.MaxRetries+1, lastErr)
}
