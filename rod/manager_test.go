//go:build integration

package rod_test

import (
	"context"
	"testing"

	"github.com/fwojciec/pageblocks/rod"
	"github.com/stretchr/testify/require"
)

func TestSnapshotter_RecyclesBrowserAcrossVisits(t *testing.T) {
	t.Parallel()

	srv := serve(t, `<html><head><title>t</title></head><body><p>recycling probe</p></body></html>`)

	s, err := rod.NewSnapshotter(rod.WithRecycleAfter(2))
	require.NoError(t, err)
	defer s.Close()

	// Each snapshot counts one visit; the third forces a browser restart.
	// The snapshots must all succeed across the recycle boundary.
	for i := 0; i < 4; i++ {
		doc, err := s.Snapshot(context.Background(), srv.URL)
		require.NoError(t, err, "snapshot %d", i)
		require.NotNil(t, doc.Root)
	}
}
