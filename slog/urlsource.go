// Package slog provides logging decorators for the root package interfaces,
// built on the standard library's structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pageblocks"
)

// Ensure LoggingURLSource implements pageblocks.URLSource.
var _ pageblocks.URLSource = (*LoggingURLSource)(nil)

// LoggingURLSource wraps a URLSource with debug logging.
type LoggingURLSource struct {
	next   pageblocks.URLSource
	logger *slog.Logger
}

// NewLoggingURLSource creates a new LoggingURLSource.
func NewLoggingURLSource(next pageblocks.URLSource, logger *slog.Logger) *LoggingURLSource {
	return &LoggingURLSource{next: next, logger: logger}
}

// Discover delegates to the wrapped source and logs the operation.
func (s *LoggingURLSource) Discover(ctx context.Context, sourceURL string) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("url discovery",
			"url", sourceURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Discover(ctx, sourceURL)
}
