package main

import (
	"context"
	"io"

	"github.com/fwojciec/pageblocks"
	"github.com/fwojciec/pageblocks/crawl"
	"github.com/fwojciec/pageblocks/extract"
	"github.com/fwojciec/pageblocks/reconstruct"
	"github.com/fwojciec/pageblocks/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx           context.Context
	Stdout        io.Writer
	Stderr        io.Writer
	DB            *sqlite.DB
	Snapshots     pageblocks.Snapshotter
	Extractor     *extract.Extractor
	Reconstructor *reconstruct.Reconstructor
	Pages         pageblocks.PageService
	Crawler       *crawl.Crawler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log service calls to stderr"`

	Extract  ExtractCmd  `cmd:"" help:"Extract classified blocks from a page as JSON"`
	Markdown MarkdownCmd `cmd:"" help:"Extract a page and reconstruct it as markdown"`
	Crawl    CrawlCmd    `cmd:"" help:"Crawl a site and store extracted pages"`
	Pages    PagesCmd    `cmd:"" help:"List stored pages"`
	Export   ExportCmd   `cmd:"" help:"Export stored pages as a markdown file tree"`
	Show     ShowCmd     `cmd:"" help:"Show one stored page as JSON"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a stored page"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL    string `arg:"" help:"Page URL"`
	Static bool   `short:"s" help:"Fetch static HTML instead of driving a browser"`
}

// MarkdownCmd is the "markdown" subcommand.
type MarkdownCmd struct {
	URL    string `arg:"" help:"Page URL"`
	Static bool   `short:"s" help:"Fetch static HTML instead of driving a browser"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL         string  `arg:"" help:"Site URL; its path scopes the crawl"`
	Static      bool    `short:"s" help:"Fetch static HTML instead of driving a browser"`
	Concurrency int     `short:"c" default:"10" help:"Concurrent snapshot limit"`
	MaxPages    int     `default:"1000" help:"Stop after this many pages"`
	MaxDepth    int     `help:"Link-following depth limit (0 = unlimited)"`
	Rate        float64 `default:"1" help:"Requests per second per domain"`
}

// PagesCmd is the "pages" subcommand.
type PagesCmd struct {
	URL    string `help:"Only pages captured from this URL"`
	Limit  int    `default:"50" help:"Maximum number of pages to list"`
	Offset int    `help:"Number of pages to skip"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir string `arg:"" help:"Output directory"`
	URL string `help:"Only pages captured from this URL"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Page ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Page ID"`
	Force bool   `help:"Confirm deletion"`
}
