package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/pageblocks"
	"github.com/fwojciec/pageblocks/reconstruct"
)

// Exporter writes stored pages as a markdown file tree with atomic update
// semantics. Files are written to a temporary sibling directory and moved
// into place on Commit, so readers never observe a half-written export.
type Exporter struct {
	dir string
	rec *reconstruct.Reconstructor
}

// NewExporter creates an Exporter targeting the given directory.
func NewExporter(dir string) *Exporter {
	return &Exporter{
		dir: dir,
		rec: reconstruct.New(),
	}
}

func (e *Exporter) tempDir() string {
	return e.dir + ".tmp"
}

// Export reconstructs the page's blocks to markdown and writes the file
// into the pending export. Call Commit once all pages are exported.
func (e *Exporter) Export(ctx context.Context, page *pageblocks.Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := page.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(page.URL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(e.tempDir(), relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	markdown := reconstruct.Markdown(e.rec.Items(page.Blocks))
	return os.WriteFile(fullPath, []byte(FormatPage(page, markdown)), 0644)
}

// Commit atomically replaces the target directory with the pending export.
func (e *Exporter) Commit() error {
	if err := os.RemoveAll(e.dir); err != nil {
		return err
	}
	return os.Rename(e.tempDir(), e.dir)
}

// Abort discards the pending export.
func (e *Exporter) Abort() error {
	return os.RemoveAll(e.tempDir())
}
