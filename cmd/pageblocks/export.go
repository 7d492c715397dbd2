package main

import (
	"fmt"

	"github.com/fwojciec/pageblocks"
	"github.com/fwojciec/pageblocks/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	filter := pageblocks.PageFilter{}
	if c.URL != "" {
		filter.URL = &c.URL
	}

	pages, err := deps.Pages.FindPages(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pageblocks.ErrorMessage(err))
		return err
	}

	if len(pages) == 0 {
		fmt.Fprintln(deps.Stdout, "No pages found. Use 'pageblocks crawl' to capture some.")
		return nil
	}

	exporter := fs.NewExporter(c.Dir)
	for _, page := range pages {
		if err := exporter.Export(deps.Ctx, page); err != nil {
			_ = exporter.Abort()
			fmt.Fprintf(deps.Stderr, "error exporting %s: %v\n", page.URL, err)
			return err
		}
	}
	if err := exporter.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d pages to %s\n", len(pages), c.Dir)
	return nil
}
