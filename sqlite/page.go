package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pageblocks"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pageblocks.PageService = (*PageService)(nil)

// PageService implements pageblocks.PageService using SQLite. Block
// sequences are stored as JSON, which keeps the schema stable as block
// fields evolve and avoids a wide sparse columns-per-type table.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

// hashBlocks computes xxHash of the serialized block sequence and returns
// a hex string.
func hashBlocks(blocks []byte) string {
	h := xxhash.Sum64(blocks)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// CreatePage stores a new page, assigning its ID and content hash.
func (s *PageService) CreatePage(ctx context.Context, page *pageblocks.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}

	blocks, err := json.Marshal(page.Blocks)
	if err != nil {
		return fmt.Errorf("failed to encode blocks: %w", err)
	}

	page.ID = uuid.New().String()
	page.FetchedAt = time.Now().UTC()
	page.ContentHash = hashBlocks(blocks)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pages (id, url, title, blocks, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, page.ID, page.URL, page.Title, string(blocks), page.ContentHash,
		page.FetchedAt.Format(time.RFC3339))

	return err
}

// FindPageByID retrieves a page by ID.
func (s *PageService) FindPageByID(ctx context.Context, id string) (*pageblocks.Page, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, title, blocks, content_hash, fetched_at
		FROM pages
		WHERE id = ?
	`, id)

	page, err := scanPage(row.Scan)
	if err == sql.ErrNoRows {
		return nil, pageblocks.Errorf(pageblocks.ENOTFOUND, "page not found")
	}
	if err != nil {
		return nil, err
	}

	return page, nil
}

// FindPages retrieves pages matching the filter, newest first.
func (s *PageService) FindPages(ctx context.Context, filter pageblocks.PageFilter) ([]*pageblocks.Page, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, title, blocks, content_hash, fetched_at FROM pages WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY fetched_at DESC, id")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*pageblocks.Page
	for rows.Next() {
		page, err := scanPage(rows.Scan)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	return pages, rows.Err()
}

// DeletePage permanently removes a page.
func (s *PageService) DeletePage(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM pages WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return pageblocks.Errorf(pageblocks.ENOTFOUND, "page not found")
	}

	return nil
}

// scanPage reads one pages row via the given scan function and decodes the
// block JSON.
func scanPage(scan func(dest ...any) error) (*pageblocks.Page, error) {
	var page pageblocks.Page
	var blocks string
	var fetchedAt string

	if err := scan(&page.ID, &page.URL, &page.Title, &blocks, &page.ContentHash, &fetchedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(blocks), &page.Blocks); err != nil {
		return nil, fmt.Errorf("failed to decode blocks: %w", err)
	}

	var err error
	page.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fetched_at: %w", err)
	}

	return &page, nil
}
