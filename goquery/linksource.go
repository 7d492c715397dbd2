package goquery

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/fwojciec/pageblocks"
)

// Ensure LinkSource implements pageblocks.URLSource.
var _ pageblocks.URLSource = (*LinkSource)(nil)

// LinkSource discovers URLs by fetching a page over HTTP and extracting its
// same-host links. It is the recursive-discovery counterpart to sitemap
// discovery: crawlers expand their frontier one page at a time with it.
type LinkSource struct {
	client   *http.Client
	selector string
}

// LinkSourceOption configures a LinkSource.
type LinkSourceOption func(*LinkSource)

// WithClient sets the HTTP client used to fetch pages. Defaults to
// http.DefaultClient.
func WithClient(client *http.Client) LinkSourceOption {
	return func(s *LinkSource) { s.client = client }
}

// WithSelector restricts discovery to anchors matching the CSS selector.
// Defaults to all anchors.
func WithSelector(selector string) LinkSourceOption {
	return func(s *LinkSource) { s.selector = selector }
}

// NewLinkSource creates a new LinkSource.
func NewLinkSource(opts ...LinkSourceOption) *LinkSource {
	s := &LinkSource{
		client:   http.DefaultClient,
		selector: "a[href]",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Discover fetches sourceURL and returns its same-host links in document
// order.
func (s *LinkSource) Discover(ctx context.Context, sourceURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, sourceURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return LinksIn(string(body), sourceURL, s.selector)
}
