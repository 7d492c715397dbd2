package crawl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/pageblocks"
	"github.com/fwojciec/pageblocks/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func immediateDelays() []time.Duration {
	return []time.Duration{0, 0, 0}
}

func TestSnapshotWithRetryDelays_SucceedsFirstAttempt(t *testing.T) {
	t.Parallel()

	calls := 0
	snapshot := func(ctx context.Context, url string) (*pageblocks.Document, error) {
		calls++
		return pageblocks.NewDocument(url, "ok", &pageblocks.Element{Tag: "body"}), nil
	}

	doc, err := crawl.SnapshotWithRetryDelays(context.Background(), "https://example.com", snapshot, nil, immediateDelays())

	require.NoError(t, err)
	assert.Equal(t, "ok", doc.Title)
	assert.Equal(t, 1, calls)
}

func TestSnapshotWithRetryDelays_RetriesUntilSuccess(t *testing.T) {
	t.Parallel()

	calls := 0
	snapshot := func(ctx context.Context, url string) (*pageblocks.Document, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("transient failure")
		}
		return pageblocks.NewDocument(url, "ok", &pageblocks.Element{Tag: "body"}), nil
	}

	var logged []string
	logger := func(format string, args ...any) {
		logged = append(logged, format)
	}

	doc, err := crawl.SnapshotWithRetryDelays(context.Background(), "https://example.com", snapshot, logger, immediateDelays())

	require.NoError(t, err)
	assert.NotNil(t, doc)
	assert.Equal(t, 3, calls)
	assert.Len(t, logged, 2, "each retry should be logged")
}

func TestSnapshotWithRetryDelays_ExhaustsRetries(t *testing.T) {
	t.Parallel()

	calls := 0
	snapshot := func(ctx context.Context, url string) (*pageblocks.Document, error) {
		calls++
		return nil, errors.New("permanent failure")
	}

	_, err := crawl.SnapshotWithRetryDelays(context.Background(), "https://example.com", snapshot, nil, immediateDelays())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "permanent failure")
	assert.Equal(t, 4, calls, "1 initial attempt + 3 retries")
}

func TestSnapshotWithRetryDelays_StopsOnContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	snapshot := func(ctx context.Context, url string) (*pageblocks.Document, error) {
		calls++
		cancel()
		return nil, errors.New("failure")
	}

	_, err := crawl.SnapshotWithRetryDelays(ctx, "https://example.com", snapshot, nil, crawl.DefaultRetryDelays())

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls, "should not retry after cancellation")
}
