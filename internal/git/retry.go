package git

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryPolicy bounds the automatic retries of network git commands
type RetryPolicy struct {
	MaxTries        uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryPolicy retries three times, starting at one second
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxTries:        3,
		InitialInterval: time.Second,
		MaxInterval:     10 * time.Second,
	}
}

// runWithRetry runs a git command, retrying transient failures
func (c *Client) runWithRetry(ctx context.Context, args ...string) (RunResult, error) {
	tries := c.retry.MaxTries
	if tries == 0 {
		tries = 1
	}

	b := backoff.NewExponentialBackOff()
	if c.retry.InitialInterval > 0 {
		b.InitialInterval = c.retry.InitialInterval
	}
	if c.retry.MaxInterval > 0 {
		b.MaxInterval = c.retry.MaxInterval
	}

	return backoff.Retry(ctx, func() (RunResult, error) {
		rr, err := c.Run(ctx, args...)
		if err == nil {
			return rr, nil
		}
		var gitErr *GitExecError
		if errors.As(err, &gitErr) && !gitErr.Transient() {
			return rr, backoff.Permanent(err)
		}
		return rr, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(tries))
}
