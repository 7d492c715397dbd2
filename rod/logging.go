package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pageblocks"
)

// Ensure LoggingSnapshotter implements pageblocks.Snapshotter.
var _ pageblocks.Snapshotter = (*LoggingSnapshotter)(nil)

// LoggingSnapshotter wraps a Snapshotter with debug logging.
type LoggingSnapshotter struct {
	next   pageblocks.Snapshotter
	logger *slog.Logger
}

// NewLoggingSnapshotter creates a new LoggingSnapshotter.
func NewLoggingSnapshotter(next pageblocks.Snapshotter, logger *slog.Logger) *LoggingSnapshotter {
	return &LoggingSnapshotter{next: next, logger: logger}
}

// Snapshot logs the URL being captured and delegates to the wrapped
// snapshotter.
func (s *LoggingSnapshotter) Snapshot(ctx context.Context, url string) (doc *pageblocks.Document, err error) {
	defer func(begin time.Time) {
		title := ""
		if doc != nil {
			title = doc.Title
		}
		s.logger.Info("snapshot",
			"url", url,
			"title", title,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Snapshot(ctx, url)
}

// Close delegates to the wrapped snapshotter.
func (s *LoggingSnapshotter) Close() error {
	return s.next.Close()
}
