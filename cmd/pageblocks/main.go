package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pageblocks"
	"github.com/fwojciec/pageblocks/crawl"
	"github.com/fwojciec/pageblocks/extract"
	"github.com/fwojciec/pageblocks/goquery"
	pbhttp "github.com/fwojciec/pageblocks/http"
	"github.com/fwojciec/pageblocks/reconstruct"
	"github.com/fwojciec/pageblocks/rod"
	pbslog "github.com/fwojciec/pageblocks/slog"
	"github.com/fwojciec/pageblocks/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services. Pre-set values are used as-is, which lets tests inject
	// mocks; nil values are wired to real implementations by Run().
	Snapshots pageblocks.Snapshotter
	Pages     pageblocks.PageService
	Sitemaps  pageblocks.URLSource
	Links     pageblocks.URLSource
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pageblocks"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pageblocks --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := commandName(kongCtx.Command())

	var logger *slog.Logger
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	deps.Extractor = extract.New()
	deps.Reconstructor = reconstruct.New()

	// Commands that read or write stored pages need the database.
	if cmd == "crawl" || cmd == "pages" || cmd == "export" || cmd == "show" || cmd == "delete" {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set PAGEBLOCKS_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		if m.Pages == nil {
			m.Pages = sqlite.NewPageService(m.DB)
		}
		deps.DB = m.DB
		deps.Pages = m.Pages
		if logger != nil {
			deps.Pages = pbslog.NewLoggingPageService(deps.Pages, logger)
		}
	}

	// Commands that capture pages need a snapshotter.
	if cmd == "extract" || cmd == "markdown" || cmd == "crawl" {
		snapshots, err := m.openSnapshotter(cmd, cli, stderr)
		if err != nil {
			return err
		}
		defer snapshots.Close()

		deps.Snapshots = snapshots
		if logger != nil {
			deps.Snapshots = rod.NewLoggingSnapshotter(deps.Snapshots, logger)
		}
	}

	if cmd == "crawl" {
		if m.Sitemaps == nil {
			m.Sitemaps = pbhttp.NewSitemapSource(nil)
		}
		if m.Links == nil {
			m.Links = goquery.NewLinkSource()
		}
		sitemaps, links := m.Sitemaps, m.Links
		if logger != nil {
			sitemaps = pbslog.NewLoggingURLSource(sitemaps, logger)
			links = pbslog.NewLoggingURLSource(links, logger)
		}

		deps.Crawler = &crawl.Crawler{
			Sitemaps:    sitemaps,
			Links:       links,
			Snapshots:   deps.Snapshots,
			Extractor:   deps.Extractor,
			Pages:       deps.Pages,
			Limiter:     crawl.NewDomainLimiter(cli.Crawl.Rate),
			Concurrency: cli.Crawl.Concurrency,
			MaxPages:    cli.Crawl.MaxPages,
			MaxDepth:    cli.Crawl.MaxDepth,
		}
	}

	return kongCtx.Run(deps)
}

// openSnapshotter returns the snapshotter for the given command: an
// injected one if set, a plain HTTP fetcher for --static, a headless
// browser otherwise.
func (m *Main) openSnapshotter(cmd string, cli *CLI, stderr io.Writer) (pageblocks.Snapshotter, error) {
	if m.Snapshots != nil {
		return m.Snapshots, nil
	}

	static := false
	switch cmd {
	case "extract":
		static = cli.Extract.Static
	case "markdown":
		static = cli.Markdown.Static
	case "crawl":
		static = cli.Crawl.Static
	}
	if static {
		return pbhttp.NewSnapshotter(), nil
	}

	snapshots, err := rod.NewSnapshotter()
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	return snapshots, nil
}

// commandName strips argument placeholders from a Kong command string,
// e.g. "extract <url>" becomes "extract".
func commandName(command string) string {
	name, _, _ := strings.Cut(command, " ")
	return name
}

func defaultDBPath() string {
	if path := os.Getenv("PAGEBLOCKS_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pageblocks.db"
	}
	dir := filepath.Join(home, ".pageblocks")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "pageblocks.db")
}
