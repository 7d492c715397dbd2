// Package http provides HTTP-based implementations of the root package's
// snapshot and URL discovery interfaces for static sites that don't require
// JavaScript rendering.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/pageblocks"
	"github.com/fwojciec/pageblocks/htmldoc"
)

// DefaultSnapshotTimeout is the default timeout for HTTP requests.
const DefaultSnapshotTimeout = 10 * time.Second

// Ensure Snapshotter implements pageblocks.Snapshotter at compile time.
var _ pageblocks.Snapshotter = (*Snapshotter)(nil)

// Snapshotter captures document snapshots over plain HTTP. It does not
// execute JavaScript, and geometry comes from htmldoc's synthetic flow
// layout rather than a real rendering engine, so it is suitable for static
// sites only. For client-rendered pages use rod.Snapshotter.
type Snapshotter struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Snapshotter.
type Option func(*Snapshotter)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultSnapshotTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(s *Snapshotter) { s.timeout = d }
}

// NewSnapshotter creates a new HTTP-based Snapshotter.
func NewSnapshotter(opts ...Option) *Snapshotter {
	s := &Snapshotter{timeout: DefaultSnapshotTimeout}
	for _, opt := range opts {
		opt(s)
	}
	s.client = &http.Client{Timeout: s.timeout}
	return s
}

// Snapshot fetches the URL and returns a snapshot of the parsed document
// with synthetic layout.
func (s *Snapshotter) Snapshot(ctx context.Context, url string) (*pageblocks.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return htmldoc.FromHTML(url, string(body))
}

// Close releases resources. For the HTTP snapshotter this is a no-op since
// http.Client doesn't require explicit cleanup.
func (s *Snapshotter) Close() error {
	return nil
}
