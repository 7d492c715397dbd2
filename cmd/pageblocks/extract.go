package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/pageblocks"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
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

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		URL    string             `json:"url"`
		Title  string             `json:"title"`
		Blocks []pageblocks.Block `json:"blocks"`
	}{doc.URL, doc.Title, blocks})
}
