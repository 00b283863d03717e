// Package retry runs an operation with capped exponential backoff. It is a
// thin configuration layer over github.com/sethvargo/go-retry.
package retry

import (
	"context"
	"time"

	goretry "github.com/sethvargo/go-retry"
)

type Operation = func() error

type Config struct {
	MaxRetries    int
	BackoffFactor float64
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	// Jitter adds up to ±Jitter to every wait.
	Jitter time.Duration
	// Retryable reports whether an error is worth another attempt.
	// Nil means every error is retried.
	Retryable func(error) bool
}

func NewDefaultConfig() *Config {
	return &Config{
		MaxRetries:    3,
		BackoffFactor: 2,
		InitialDelay:  500 * time.Millisecond,
		MaxDelay:      10 * time.Second,
		Jitter:        100 * time.Millisecond,
	}
}

type Retrier struct {
	config *Config
}

func NewRetrier(config *Config) *Retrier {
	return &Retrier{config: config}
}

func NewDefaultRetrier() *Retrier {
	return NewRetrier(NewDefaultConfig())
}

// Do calls op until it succeeds, returns a non-retryable error, runs out of
// retries or ctx is done. The last error from op is returned unwrapped.
func (r *Retrier) Do(ctx context.Context, op Operation) error {
	return goretry.Do(ctx, r.backoff(), func(context.Context) error {
		err := op()
		if err != nil && r.retryable(err) {
			return goretry.RetryableError(err)
		}
		return err
	})
}

// backoff is built per call since go-retry backoffs are stateful.
func (r *Retrier) backoff() goretry.Backoff {
	c := r.config
	delay := c.InitialDelay
	factor := c.BackoffFactor
	if factor < 1 {
		factor = 1
	}

	var b goretry.Backoff = goretry.BackoffFunc(func() (time.Duration, bool) {
		d := delay
		delay = time.Duration(float64(delay) * factor)
		return d, false
	})
	if c.MaxDelay > 0 {
		b = goretry.WithCappedDuration(c.MaxDelay, b)
	}
	if c.Jitter > 0 {
		b = goretry.WithJitter(c.Jitter, b)
	}
	return goretry.WithMaxRetries(uint64(max(c.MaxRetries, 0)), b)
}

func (r *Retrier) retryable(err error) bool {
	if r.config.Retryable == nil {
		return true
	}
	return r.config.Retryable(err)
}
