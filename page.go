package pageblocks

import (
	"context"
	"time"
)

// Page represents one stored extraction result: the block sequence captured
// from a single settled snapshot of a URL.
type Page struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Blocks      []Block   `json:"blocks"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	return nil
}

// PageFilter represents a filter for FindPages.
type PageFilter struct {
	ID  *string `json:"id"`
	URL *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// PageService represents a service for managing stored pages.
type PageService interface {
	// CreatePage stores a new page, assigning its ID and content hash.
	CreatePage(ctx context.Context, page *Page) error

	// FindPageByID retrieves a page by ID.
	// Returns ENOTFOUND if the page does not exist.
	FindPageByID(ctx context.Context, id string) (*Page, error)

	// FindPages retrieves pages matching the filter, newest first.
	FindPages(ctx context.Context, filter PageFilter) ([]*Page, error)

	// DeletePage permanently removes a page.
	// Returns ENOTFOUND if the page does not exist.
	DeletePage(ctx context.Context, id string) error
}
