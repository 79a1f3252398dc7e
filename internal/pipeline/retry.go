package pipeline

import (
	"context"
	"errors"
	"math"
	"time"
)

// RetryConfig defines backoff for operations that may fail transiently
type RetryConfig struct {
	MaxAttempts       int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
	// NonRetryable errors end the loop at once (matched with errors.Is)
	NonRetryable []error
}

// DefaultExportRetry is used for export file writes
var DefaultExportRetry = RetryConfig{
	MaxAttempts:       3,
	InitialDelay:      50 * time.Millisecond,
	MaxDelay:          time.Second,
	BackoffMultiplier: 2.0,
}

// retry runs op until it succeeds, fails with a non-retryable error, the
// attempts are exhausted or ctx is done. The last error is returned.
func retry(ctx context.Context, cfg RetryConfig, op func() error) error {
	attempts := max(cfg.MaxAttempts, 1)

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if !cfg.isRetryable(err) || attempt == attempts {
			break
		}

		timer := time.NewTimer(cfg.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.Join(err, ctx.Err())
		case <-timer.C:
		}
	}
	return err
}

// backoff returns the delay after the given failed attempt (1-based)
func (cfg RetryConfig) backoff(attempt int) time.Duration {
	multiplier := cfg.BackoffMultiplier
	if multiplier < 1 {
		multiplier = 1
	}
	delay := time.Duration(float64(cfg.InitialDelay) * math.Pow(multiplier, float64(attempt-1)))
	if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
		delay = cfg.MaxDelay
	}
	return delay
}

func (cfg RetryConfig) isRetryable(err error) bool {
	for _, target := range cfg.NonRetryable {
		if errors.Is(err, target) {
			return false
		}
	}
	return true
}
