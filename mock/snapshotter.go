// Package mock provides function-field mock implementations of the root
// package interfaces for use in tests.
package mock

import (
	"context"

	"github.com/fwojciec/pageblocks"
)

var _ pageblocks.Snapshotter = (*Snapshotter)(nil)

// Snapshotter is a mock implementation of pageblocks.Snapshotter.
type Snapshotter struct {
	SnapshotFn func(ctx context.Context, url string) (*pageblocks.Document, error)
	CloseFn    func() error
}

func (s *Snapshotter) Snapshot(ctx context.Context, url string) (*pageblocks.Document, error) {
	return s.SnapshotFn(ctx, url)
}

func (s *Snapshotter) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}
