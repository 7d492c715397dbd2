package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/pageblocks"
)

// SnapshotFunc is the signature for a snapshot function.
type SnapshotFunc func(ctx context.Context, url string) (*pageblocks.Document, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for snapshot retries:
// 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// SnapshotWithRetry attempts to snapshot a URL with exponential backoff.
// It retries up to 3 times (4 total attempts) with delays of 1s, 2s, 4s.
// The logger function, if provided, is called for each retry attempt.
func SnapshotWithRetry(ctx context.Context, url string, snapshot SnapshotFunc, logger LogFunc) (*pageblocks.Document, error) {
	return SnapshotWithRetryDelays(ctx, url, snapshot, logger, DefaultRetryDelays())
}

// SnapshotWithRetryDelays is like SnapshotWithRetry but allows configurable
// delays. This is useful for testing without waiting for real delays.
func SnapshotWithRetryDelays(ctx context.Context, url string, snapshot SnapshotFunc, logger LogFunc, delays []time.Duration) (*pageblocks.Document, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		doc, err := snapshot(ctx, url)
		if err == nil {
			return doc, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if logger != nil {
			logger("  retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
