package main

import (
	"fmt"

	"github.com/fwojciec/pageblocks/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			if event.Total > 0 {
				fmt.Fprintf(deps.Stdout, "  Found %d URLs\n", event.Total)
			}
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", crawl.TruncateURL(event.URL, 60), event.Error)
		case crawl.ProgressFinished:
			// Summary printed after crawl completes
		}
	}

	result, err := deps.Crawler.Crawl(deps.Ctx, c.URL, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Saved %d pages (%d blocks, %s", result.Saved, result.Blocks, crawl.FormatBytes(result.Bytes))
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, ", %d failed", result.Failed)
	}
	fmt.Fprintln(deps.Stdout, ")")

	return nil
}
