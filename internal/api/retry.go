package api

import (
	"context"
	"os"
	"time"
)

// DefaultRetryWait is the fixed delay between retry attempts: used for
// 500s always, and for 429s that carry no Retry-After header. The
// Retry-After value on a 500 is deliberately ignored; a server error is
// not expected to carry a meaningful one.
const DefaultRetryWait = 1 * time.Second

// RetryConfig holds the retry knobs. Tries lives on each Request; the
// wait is client-level because it is policy, not per-call intent.
type RetryConfig struct {
	// RetryWait is the fixed inter-attempt delay. Zero falls back to
	// DefaultRetryWait.
	RetryWait time.Duration
}

// DefaultRetryConfig returns a RetryConfig populated from environment
// variables with fallback to the default constant.
//
// Environment variables:
//   - SHOPCTL_RETRY_WAIT: fixed delay between retries (default: "1s")
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		RetryWait: getEnvDuration("SHOPCTL_RETRY_WAIT", DefaultRetryWait),
	}
}

func (c RetryConfig) wait() time.Duration {
	if c.RetryWait <= 0 {
		return DefaultRetryWait
	}
	return c.RetryWait
}

// getEnvDuration reads a duration from an environment variable with a
// default fallback.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// retryable reports whether a status triggers the retry loop. Only
// HTTP-semantic failures retry; transport failures propagate
// immediately.
func retryable(code int) bool {
	return code == 429 || code == 500
}

// retryDelay picks the inter-attempt delay for a retryable envelope.
func (c RetryConfig) retryDelay(resp *Response) time.Duration {
	if resp.Code == 429 && resp.RetryAfter != nil {
		return time.Duration(*resp.RetryAfter * float64(time.Second))
	}
	return c.wait()
}

// sleepWithContext waits for the duration or returns early on context
// cancellation, so a caller's deadline aborts mid-backoff rather than
// after it.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
