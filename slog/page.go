package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pageblocks"
)

// Ensure LoggingPageService implements pageblocks.PageService.
var _ pageblocks.PageService = (*LoggingPageService)(nil)

// LoggingPageService wraps a PageService with debug logging.
type LoggingPageService struct {
	next   pageblocks.PageService
	logger *slog.Logger
}

// NewLoggingPageService creates a new LoggingPageService.
func NewLoggingPageService(next pageblocks.PageService, logger *slog.Logger) *LoggingPageService {
	return &LoggingPageService{next: next, logger: logger}
}

// CreatePage delegates to the wrapped service and logs the operation.
func (s *LoggingPageService) CreatePage(ctx context.Context, page *pageblocks.Page) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create page",
			"url", page.URL,
			"blocks", len(page.Blocks),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreatePage(ctx, page)
}

// FindPageByID delegates to the wrapped service.
func (s *LoggingPageService) FindPageByID(ctx context.Context, id string) (*pageblocks.Page, error) {
	return s.next.FindPageByID(ctx, id)
}

// FindPages delegates to the wrapped service and logs the result count.
func (s *LoggingPageService) FindPages(ctx context.Context, filter pageblocks.PageFilter) (pages []*pageblocks.Page, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find pages",
			"count", len(pages),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindPages(ctx, filter)
}

// DeletePage delegates to the wrapped service and logs the operation.
func (s *LoggingPageService) DeletePage(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete page",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeletePage(ctx, id)
}
