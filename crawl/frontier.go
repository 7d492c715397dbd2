package crawl

import (
	"container/heap"
	"strings"
	"sync"

	"github.com/fwojciec/pageblocks/bloom"
)

// Link is one frontier entry: a URL and the link depth at which it was
// discovered (0 for seeds).
type Link struct {
	URL   string
	Depth int
}

// Frontier is an in-memory URL frontier: a depth-ordered queue with Bloom
// filter deduplication. Shallower links are popped first, so a bounded
// crawl covers the pages closest to the seed before descending.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue *linkHeap
	seq   int
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	h := &linkHeap{}
	heap.Init(h)
	return &Frontier{
		seen:  bloom.NewFilter(n, fpRate),
		queue: h,
	}
}

// Push adds a link to the frontier. Returns false if the URL has already
// been seen. URL fragments are stripped before deduplication, so URLs
// differing only by fragment count as duplicates.
func (f *Frontier) Push(link Link) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	link.URL = stripFragment(link.URL)
	if f.seen.TestAndAdd(link.URL) {
		return false
	}

	f.seq++
	heap.Push(f.queue, queued{Link: link, seq: f.seq})
	return true
}

// Pop returns the next link, shallowest depth first and insertion order
// within a depth. The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (Link, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return Link{}, false
	}
	q, _ := heap.Pop(f.queue).(queued)
	return q.Link, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen returns true if the URL has been queued before (popped or not).
// URL fragments are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(stripFragment(rawURL))
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}

// queued pairs a Link with its insertion sequence for stable ordering.
type queued struct {
	Link
	seq int
}

// linkHeap implements heap.Interface: min-heap on depth, then insertion
// order.
type linkHeap []queued

func (h linkHeap) Len() int { return len(h) }

func (h linkHeap) Less(i, j int) bool {
	if h[i].Depth != h[j].Depth {
		return h[i].Depth < h[j].Depth
	}
	return h[i].seq < h[j].seq
}

func (h linkHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *linkHeap) Push(x any) {
	q, _ := x.(queued)
	*h = append(*h, q)
}

func (h *linkHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
