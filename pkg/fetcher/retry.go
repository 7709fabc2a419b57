package fetcher

import (
	"context"
	"errors"
	"log"
	"math"
	"net/http"
	"time"
)

// RetryFetcher retries transient failures of the wrapped Fetcher.
// It is opt-in: the crawler uses a bare HTTPFetcher unless configured otherwise.
//
// Transient means a transport error, HTTP 429 or any 5xx. The wait doubles on
// every attempt starting at Backoff: with 5s that is 5s, 10s, 20s, ...
type RetryFetcher struct {
	next        Fetcher
	MaxAttempts int
	Backoff     time.Duration

	// wait is swapped out by tests to avoid real sleeps
	wait func(ctx context.Context, d time.Duration) error
}

// NewRetryFetcher wraps next. maxAttempts counts the first try; values below 1 mean 1.
func NewRetryFetcher(next Fetcher, maxAttempts int, backoff time.Duration) *RetryFetcher {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryFetcher{
		next:        next,
		MaxAttempts: maxAttempts,
		Backoff:     backoff,
		wait:        Sleep,
	}
}

// Fetch calls the wrapped fetcher until it succeeds, fails permanently or
// attempts run out. The last error is returned as-is.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	var lastErr error
	for attempt := 0; attempt < f.MaxAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * f.Backoff
			log.Printf("RetryFetcher: retrying %s in %v (attempt %d/%d): %v", url, backoff, attempt+1, f.MaxAttempts, lastErr)
			if err := f.wait(ctx, backoff); err != nil {
				return nil, err
			}
		}

		page, err := f.next.Fetch(ctx, url)
		if err == nil {
			return page, nil
		}
		lastErr = err
		if !isTransient(err) {
			return nil, err
		}
	}
	return nil, lastErr
}

func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrDisallowed) {
		return false
	}
	code := StatusCode(err)
	switch {
	case code == 0:
		return true
	case code == http.StatusTooManyRequests:
		return true
	case code >= 500:
		return true
	default:
		return false
	}
}

// Sleep waits for d or until ctx is done, returning ctx.Err() in the latter case
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
