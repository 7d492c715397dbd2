// Package rod captures rendered document snapshots using Chrome browser
// automation via go-rod.
package rod

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/fwojciec/pageblocks"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Snapshotter implements pageblocks.Snapshotter at compile time.
var _ pageblocks.Snapshotter = (*Snapshotter)(nil)

// DefaultSnapshotTimeout bounds a single page visit, navigation and layout
// capture included.
const DefaultSnapshotTimeout = 30 * time.Second

// Snapshotter captures settled document snapshots from live pages rendered
// in a headless Chrome browser. A snapshot carries the layout geometry and
// computed style the browser actually resolved, so downstream extraction
// never has to guess at rendering.
//
// Snapshotter is safe for concurrent use by multiple goroutines.
type Snapshotter struct {
	manager *Manager
	timeout time.Duration
	closed  atomic.Bool
}

// Option configures a Snapshotter.
type Option func(*Snapshotter)

// WithSnapshotTimeout sets the per-snapshot timeout. Defaults to
// DefaultSnapshotTimeout.
func WithSnapshotTimeout(d time.Duration) Option {
	return func(s *Snapshotter) { s.timeout = d }
}

// WithRecycleAfter sets how many pages the underlying browser serves before
// it is restarted.
func WithRecycleAfter(n int64) Option {
	return func(s *Snapshotter) { s.manager.recycleAfter = n }
}

// NewSnapshotter launches a headless Chrome browser and returns a
// Snapshotter backed by it. Close must be called when the Snapshotter is no
// longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewSnapshotter(opts ...Option) (*Snapshotter, error) {
	s := &Snapshotter{
		manager: newManager(),
		timeout: DefaultSnapshotTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.manager.start(); err != nil {
		return nil, err
	}
	return s, nil
}

// snapshot mirrors the JSON payload produced by snapshotJS.
type snapshot struct {
	URL   string              `json:"url"`
	Title string              `json:"title"`
	Root  *pageblocks.Element `json:"root"`
}

// Snapshot navigates to the URL, waits for the page to settle, and returns
// the rendered document tree with per-element geometry and computed style.
func (s *Snapshotter) Snapshot(ctx context.Context, url string) (*pageblocks.Document, error) {
	if s.closed.Load() {
		return nil, pageblocks.Errorf(pageblocks.EINVALID, "snapshotter is closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	page, err := s.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	defer page.Close()
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return nil, err
	}
	if err := page.WaitLoad(); err != nil {
		return nil, err
	}

	obj, err := page.Eval(snapshotJS)
	if err != nil {
		return nil, err
	}

	var snap snapshot
	if err := json.Unmarshal([]byte(obj.Value.Str()), &snap); err != nil {
		return nil, pageblocks.Errorf(pageblocks.EINTERNAL, "decoding snapshot: %v", err)
	}
	if snap.Root == nil {
		return nil, pageblocks.Errorf(pageblocks.EINVALID, "page has no body element")
	}

	s.manager.Visited()
	return pageblocks.NewDocument(snap.URL, snap.Title, snap.Root), nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (s *Snapshotter) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (s *Snapshotter) LauncherPID() int {
	return s.manager.PID()
}
