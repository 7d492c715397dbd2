package main

import (
	"fmt"

	"github.com/fwojciec/pageblocks"
	"github.com/fwojciec/pageblocks/reconstruct"
)

// Run executes the markdown command.
func (c *MarkdownCmd) Run(deps *Dependencies) error {
	doc, err := deps.Snapshots.Snapshot(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pageblocks.ErrorMessage(err))
		return err
	}

	blocks, err := deps.Extractor.All(doc, nil)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pageblocks.ErrorMessage(err))
		return err
	}

	items := deps.Reconstructor.Items(blocks)
	fmt.Fprintln(deps.Stdout, reconstruct.Markdown(items))
	return nil
}
