// Package crawl provides site crawling orchestration. It coordinates URL
// discovery, snapshot capture, block extraction, and storage of crawled
// pages.
package crawl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/pageblocks"
	"golang.org/x/sync/errgroup"
)

// BlockExtractor turns a document snapshot into classified blocks.
type BlockExtractor interface {
	All(doc *pageblocks.Document, selectors []pageblocks.Selector) ([]pageblocks.Block, error)
}

// Crawler orchestrates the crawling of a site into stored pages.
type Crawler struct {
	// Sitemaps discovers seed URLs from the site's sitemaps. Optional;
	// when it yields nothing the crawler falls back to recursive link
	// following via Links.
	Sitemaps pageblocks.URLSource

	// Links discovers same-host links on a single page. Required for
	// recursive crawling, unused otherwise.
	Links pageblocks.URLSource

	Snapshots pageblocks.Snapshotter
	Extractor BlockExtractor
	Pages     pageblocks.PageService

	// Limiter spaces out requests per domain. Optional.
	Limiter *DomainLimiter

	Concurrency int
	MaxPages    int
	MaxDepth    int
	RetryDelays []time.Duration
}

// Result holds the outcome of a crawl operation. Bytes is the total size
// of the saved pages' block JSON, for summary reporting.
type Result struct {
	Saved  int
	Failed int
	Blocks int
	Bytes  int
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// crawlResult holds the outcome of processing a single URL.
type crawlResult struct {
	position int
	url      string
	title    string
	blocks   []pageblocks.Block
	bytes    int
	err      error
}

// Frontier configuration for recursive crawling.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01

	// defaultMaxPages bounds a crawl to prevent runaway walks on large
	// sites.
	defaultMaxPages = 1000
)

// Crawl crawls the site rooted at sourceURL and saves one page per URL.
// Seed URLs come from sitemap discovery; when the site has no sitemap the
// crawler falls back to recursive link following scoped to sourceURL's
// host and path prefix. The progress callback, if provided, receives
// events as crawling proceeds.
func (c *Crawler) Crawl(ctx context.Context, sourceURL string, progress ProgressFunc) (*Result, error) {
	var urls []string
	if c.Sitemaps != nil {
		var err error
		urls, err = c.Sitemaps.Discover(ctx, sourceURL)
		if err != nil {
			return nil, fmt.Errorf("sitemap discovery: %w", err)
		}
	}

	if len(urls) == 0 {
		if c.Links != nil {
			return c.recursiveCrawl(ctx, sourceURL, progress)
		}
		return &Result{}, nil
	}

	if c.MaxPages > 0 && len(urls) > c.MaxPages {
		urls = urls[:c.MaxPages]
	}

	return c.crawlList(ctx, urls, progress)
}

// crawlList processes a known URL list concurrently and saves the results
// in source order.
func (c *Crawler) crawlList(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	resultCh := make(chan crawlResult, len(urls))

	var completed atomic.Int64
	total := len(urls)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			i, u := i, u
			g.Go(func() error {
				resultCh <- c.processURL(gctx, i, u)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]crawlResult, len(urls))
	var failed int
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		if progress == nil {
			if result.err != nil {
				failed++
			}
			continue
		}
		event := ProgressEvent{
			Completed: int(completed.Load()),
			Total:     total,
			URL:       result.url,
		}
		if result.err != nil {
			failed++
			event.Type = ProgressFailed
			event.Error = result.err
		} else {
			event.Type = ProgressCompleted
		}
		progress(event)
	}

	res := &Result{Failed: failed}
	for _, result := range results {
		if result.err != nil {
			continue
		}
		page := &pageblocks.Page{
			URL:    result.url,
			Title:  result.title,
			Blocks: result.blocks,
		}
		if err := c.Pages.CreatePage(ctx, page); err != nil {
			res.Failed++
			continue
		}
		res.Saved++
		res.Blocks += len(result.blocks)
		res.Bytes += result.bytes
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return res, nil
}

// processURL snapshots and extracts a single URL.
func (c *Crawler) processURL(ctx context.Context, position int, pageURL string) crawlResult {
	result := crawlResult{position: position, url: pageURL}

	if c.Limiter != nil {
		parsed, err := url.Parse(pageURL)
		if err != nil {
			result.err = err
			return result
		}
		if err := c.Limiter.Wait(ctx, parsed.Host); err != nil {
			result.err = err
			return result
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	doc, err := SnapshotWithRetryDelays(ctx, pageURL, c.Snapshots.Snapshot, nil, delays)
	if err != nil {
		result.err = err
		return result
	}

	blocks, err := c.Extractor.All(doc, nil)
	if err != nil {
		result.err = err
		return result
	}

	result.title = doc.Title
	result.blocks = blocks
	if encoded, err := json.Marshal(blocks); err == nil {
		result.bytes = len(encoded)
	}
	return result
}

// recursiveCrawl walks the site by following links from sourceURL, staying
// on the same host and under its path prefix. URLs are processed
// sequentially to keep frontier management and rate limiting simple; for
// high-throughput crawls use sitemap-based crawling.
func (c *Crawler) recursiveCrawl(ctx context.Context, sourceURL string, progress ProgressFunc) (*Result, error) {
	source, err := url.Parse(sourceURL)
	if err != nil {
		return nil, fmt.Errorf("invalid source URL: %w", err)
	}
	pathPrefix := source.Path

	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(Link{URL: sourceURL, Depth: 0})

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted})
	}

	var result Result
	processed := 0

	for {
		link, ok := frontier.Pop()
		if !ok || processed >= maxPages {
			break
		}
		processed++
		if ctx.Err() != nil {
			break
		}

		crawled := c.processURL(ctx, 0, link.URL)
		if crawled.err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, URL: link.URL, Error: crawled.err})
			}
			continue
		}

		// Expand the frontier from this page, best effort.
		if c.MaxDepth <= 0 || link.Depth < c.MaxDepth {
			discovered, err := c.Links.Discover(ctx, link.URL)
			if err == nil {
				for _, d := range discovered {
					du, err := url.Parse(d)
					if err != nil {
						continue
					}
					if du.Host != source.Host {
						continue
					}
					if !strings.HasPrefix(du.Path, pathPrefix) {
						continue
					}
					frontier.Push(Link{URL: d, Depth: link.Depth + 1})
				}
			}
		}

		page := &pageblocks.Page{
			URL:    crawled.url,
			Title:  crawled.title,
			Blocks: crawled.blocks,
		}
		if err := c.Pages.CreatePage(ctx, page); err != nil {
			result.Failed++
			continue
		}

		result.Saved++
		result.Blocks += len(crawled.blocks)
		result.Bytes += crawled.bytes
		if progress != nil {
			progress(ProgressEvent{Type: ProgressCompleted, URL: link.URL})
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished})
	}

	return &result, nil
}
