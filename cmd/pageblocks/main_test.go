package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/pageblocks"
	main "github.com/fwojciec/pageblocks/cmd/pageblocks"
	"github.com/fwojciec/pageblocks/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testContext returns a background context for tests.
func testContext() context.Context {
	return context.Background()
}

// testMain returns a Main backed by a temp database.
func testMain(t *testing.T) *main.Main {
	t.Helper()
	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	return m
}

// snapshotDoc builds a rendered snapshot with one extractable paragraph.
func snapshotDoc(url string) *pageblocks.Document {
	visible := pageblocks.Style{
		Display:    "block",
		Visibility: "visible",
		Opacity:    1,
		FontSize:   16,
		FontWeight: 400,
	}
	root := &pageblocks.Element{
		Tag:   "body",
		Style: visible,
		BBox:  pageblocks.BBox{X: 0, Y: 0, Width: 800, Height: 600},
		Nodes: []pageblocks.Node{
			{Element: &pageblocks.Element{
				Tag:   "p",
				Style: visible,
				BBox:  pageblocks.BBox{X: 10, Y: 10, Width: 600, Height: 20},
				Nodes: []pageblocks.Node{
					{Text: "This settled paragraph easily clears the word count gate."},
				},
			}},
		},
	}
	return pageblocks.NewDocument(url, "Test Page", root)
}

func stubSnapshotter() *mock.Snapshotter {
	return &mock.Snapshotter{
		SnapshotFn: func(ctx context.Context, url string) (*pageblocks.Document, error) {
			return snapshotDoc(url), nil
		},
	}
}

func TestCmdExtract(t *testing.T) {
	t.Parallel()

	t.Run("emits block JSON", func(t *testing.T) {
		t.Parallel()

		m := testMain(t)
		m.Snapshots = stubSnapshotter()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"extract", "https://example.com/docs/page1"}, stdout, stderr)
		require.NoError(t, err)

		out := stdout.String()
		assert.Contains(t, out, `"url": "https://example.com/docs/page1"`)
		assert.Contains(t, out, `"type": "text"`)
		assert.Contains(t, out, "This settled paragraph easily clears the word count gate.")
		assert.Empty(t, stderr.String())
	})

	t.Run("reports snapshot failure", func(t *testing.T) {
		t.Parallel()

		m := testMain(t)
		m.Snapshots = &mock.Snapshotter{
			SnapshotFn: func(ctx context.Context, url string) (*pageblocks.Document, error) {
				return nil, pageblocks.Errorf(pageblocks.EUNAVAILABLE, "navigation failed")
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"extract", "https://example.com"}, stdout, stderr)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "navigation failed")
		assert.Empty(t, stdout.String())
	})
}

func TestCmdMarkdown(t *testing.T) {
	t.Parallel()

	m := testMain(t)
	m.Snapshots = stubSnapshotter()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(testContext(), []string{"markdown", "https://example.com/docs/page1"}, stdout, stderr)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "This settled paragraph easily clears the word count gate.")
	assert.Empty(t, stderr.String())
}

func TestCmdCrawl(t *testing.T) {
	t.Parallel()

	t.Run("saves discovered pages and prints summary", func(t *testing.T) {
		t.Parallel()

		m := testMain(t)
		m.Snapshots = stubSnapshotter()
		m.Sitemaps = &mock.URLSource{
			DiscoverFn: func(ctx context.Context, sourceURL string) ([]string, error) {
				return []string{
					"https://example.com/docs/a",
					"https://example.com/docs/b",
				}, nil
			},
		}

		var saved []*pageblocks.Page
		m.Pages = &mock.PageService{
			CreatePageFn: func(ctx context.Context, page *pageblocks.Page) error {
				saved = append(saved, page)
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"crawl", "https://example.com/docs/"}, stdout, stderr)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "Found 2 URLs")
		assert.Contains(t, stdout.String(), "Saved 2 pages")
		require.Len(t, saved, 2)
		assert.Equal(t, "https://example.com/docs/a", saved[0].URL)
		assert.Equal(t, "https://example.com/docs/b", saved[1].URL)
	})

	t.Run("stores pages in sqlite by default", func(t *testing.T) {
		t.Parallel()

		m := testMain(t)
		m.Snapshots = stubSnapshotter()
		m.Sitemaps = &mock.URLSource{
			DiscoverFn: func(ctx context.Context, sourceURL string) ([]string, error) {
				return []string{"https://example.com/docs/a"}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"crawl", "https://example.com/docs/"}, stdout, stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Saved 1 pages")

		// The page must be visible through the pages command against the
		// same database.
		stdout.Reset()
		m2 := main.NewMain()
		m2.DBPath = m.DBPath
		err = m2.Run(testContext(), []string{"pages"}, stdout, stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "https://example.com/docs/a")
	})
}

func TestCmdPages(t *testing.T) {
	t.Parallel()

	t.Run("lists stored pages", func(t *testing.T) {
		t.Parallel()

		m := testMain(t)
		m.Pages = &mock.PageService{
			FindPagesFn: func(ctx context.Context, filter pageblocks.PageFilter) ([]*pageblocks.Page, error) {
				assert.Equal(t, 50, filter.Limit)
				return []*pageblocks.Page{
					{ID: "id-1", URL: "https://example.com/docs/a", Title: "Page A"},
					{ID: "id-2", URL: "https://example.com/docs/b"},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"pages"}, stdout, stderr)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "id-1")
		assert.Contains(t, stdout.String(), "Page A")
		// Pages without a title fall back to the URL.
		assert.Contains(t, stdout.String(), "https://example.com/docs/b")
	})

	t.Run("prints hint when empty", func(t *testing.T) {
		t.Parallel()

		m := testMain(t)
		m.Pages = &mock.PageService{
			FindPagesFn: func(ctx context.Context, filter pageblocks.PageFilter) ([]*pageblocks.Page, error) {
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"pages"}, stdout, stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No pages found")
	})

	t.Run("passes URL filter", func(t *testing.T) {
		t.Parallel()

		m := testMain(t)
		m.Pages = &mock.PageService{
			FindPagesFn: func(ctx context.Context, filter pageblocks.PageFilter) ([]*pageblocks.Page, error) {
				require.NotNil(t, filter.URL)
				assert.Equal(t, "https://example.com/docs/a", *filter.URL)
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"pages", "--url", "https://example.com/docs/a"}, stdout, stderr)
		require.NoError(t, err)
	})
}

func TestCmdExport(t *testing.T) {
	t.Parallel()

	t.Run("writes markdown files for stored pages", func(t *testing.T) {
		t.Parallel()

		m := testMain(t)
		m.Pages = &mock.PageService{
			FindPagesFn: func(ctx context.Context, filter pageblocks.PageFilter) ([]*pageblocks.Page, error) {
				return []*pageblocks.Page{{
					URL:   "https://example.com/docs/start",
					Title: "Getting Started",
					Blocks: []pageblocks.Block{{
						Type:     pageblocks.BlockText,
						BBox:     pageblocks.BBox{X: 10, Y: 10, Width: 600, Height: 20},
						Text:     "Install the package before running any commands.",
						FontSize: 16,
					}},
				}}, nil
			},
		}

		dir := filepath.Join(t.TempDir(), "export")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"export", dir}, stdout, stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Exported 1 pages")

		content, err := os.ReadFile(filepath.Join(dir, "docs", "start.md"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "Install the package before running any commands.")
	})

	t.Run("prints hint when nothing is stored", func(t *testing.T) {
		t.Parallel()

		m := testMain(t)
		m.Pages = &mock.PageService{
			FindPagesFn: func(ctx context.Context, filter pageblocks.PageFilter) ([]*pageblocks.Page, error) {
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"export", filepath.Join(t.TempDir(), "export")}, stdout, stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No pages found")
	})
}

func TestCmdShow(t *testing.T) {
	t.Parallel()

	t.Run("emits page JSON", func(t *testing.T) {
		t.Parallel()

		m := testMain(t)
		m.Pages = &mock.PageService{
			FindPageByIDFn: func(ctx context.Context, id string) (*pageblocks.Page, error) {
				assert.Equal(t, "id-1", id)
				return &pageblocks.Page{ID: "id-1", URL: "https://example.com/docs/a", Title: "Page A"}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"show", "id-1"}, stdout, stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `"id": "id-1"`)
		assert.Contains(t, stdout.String(), "Page A")
	})

	t.Run("reports missing page", func(t *testing.T) {
		t.Parallel()

		m := testMain(t)
		m.Pages = &mock.PageService{
			FindPageByIDFn: func(ctx context.Context, id string) (*pageblocks.Page, error) {
				return nil, pageblocks.Errorf(pageblocks.ENOTFOUND, "page not found")
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"show", "missing"}, stdout, stderr)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "page not found")
	})
}

func TestCmdDelete(t *testing.T) {
	t.Parallel()

	t.Run("requires force", func(t *testing.T) {
		t.Parallel()

		deleteCalled := false
		m := testMain(t)
		m.Pages = &mock.PageService{
			DeletePageFn: func(ctx context.Context, id string) error {
				deleteCalled = true
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"delete", "id-1"}, stdout, stderr)
		require.Error(t, err)
		assert.Equal(t, pageblocks.EINVALID, pageblocks.ErrorCode(err))
		assert.False(t, deleteCalled)
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("deletes with force", func(t *testing.T) {
		t.Parallel()

		var deletedID string
		m := testMain(t)
		m.Pages = &mock.PageService{
			DeletePageFn: func(ctx context.Context, id string) error {
				deletedID = id
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"delete", "id-1", "--force"}, stdout, stderr)
		require.NoError(t, err)
		assert.Equal(t, "id-1", deletedID)
		assert.Contains(t, stdout.String(), "Deleted page")
	})
}
