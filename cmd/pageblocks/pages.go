package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/pageblocks"
)

// Run executes the pages command.
func (c *PagesCmd) Run(deps *Dependencies) error {
	filter := pageblocks.PageFilter{Limit: c.Limit, Offset: c.Offset}
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

	for _, p := range pages {
		title := p.Title
		if title == "" {
			title = p.URL
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %d blocks  %s\n", p.ID, title, len(p.Blocks), p.URL)
	}

	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	page, err := deps.Pages.FindPageByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pageblocks.ErrorMessage(err))
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(page)
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return pageblocks.Errorf(pageblocks.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Pages.DeletePage(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pageblocks.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted page %q\n", c.ID)
	return nil
}
