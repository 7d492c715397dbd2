package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/pageblocks"
)

// Ensure SitemapSource implements pageblocks.URLSource.
var _ pageblocks.URLSource = (*SitemapSource)(nil)

// SitemapSource discovers page URLs from a site's sitemaps. Sitemap
// locations come from robots.txt Sitemap directives, with /sitemap.xml as
// the fallback, and sitemap index files are followed recursively.
type SitemapSource struct {
	client *http.Client
}

// NewSitemapSource creates a new SitemapSource with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapSource(client *http.Client) *SitemapSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapSource{client: client}
}

// Discover finds all URLs from the site's sitemaps. Returns an empty slice
// (not nil) if no sitemaps are found.
//
// When sourceURL has a non-root path (e.g. https://example.com/docs/), only
// URLs under that path are returned.
func (s *SitemapSource) Discover(ctx context.Context, sourceURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(sourceURL)
	if err != nil {
		return nil, pageblocks.Errorf(pageblocks.EINVALID, "invalid source URL: %v", err)
	}

	// Sitemaps live at the domain root even when the source URL points
	// deeper; the path becomes a result filter instead.
	prefix := base.Path
	if prefix == "/" {
		prefix = ""
	}
	root := *base
	root.Path = ""

	sitemaps, err := s.locateSitemaps(ctx, &root)
	if err != nil {
		return nil, err
	}
	if len(sitemaps) == 0 {
		return []string{}, nil
	}

	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)
	var urls []string
	for _, sm := range sitemaps {
		found, err := s.walkSitemap(ctx, sm, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, u := range found {
			if !seenURLs[u] {
				seenURLs[u] = true
				urls = append(urls, u)
			}
		}
	}

	if prefix == "" {
		return urls, nil
	}
	filtered := make([]string, 0, len(urls))
	for _, u := range urls {
		if underPath(u, prefix) {
			filtered = append(filtered, u)
		}
	}
	return filtered, nil
}

// underPath reports whether the URL's path sits under the given prefix,
// respecting path segment boundaries: /docs matches /docs/intro but not
// /documentation.
func underPath(rawURL, prefix string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(parsed.Path, prefix)
}

// locateSitemaps finds sitemap URLs from robots.txt, falling back to
// /sitemap.xml when robots.txt names none.
func (s *SitemapSource) locateSitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	robotsURL := root.ResolveReference(&url.URL{Path: "/robots.txt"})
	sitemaps, err := s.sitemapsFromRobots(ctx, robotsURL.String())
	if err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"})
	exists, err := s.exists(ctx, fallback.String())
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if exists {
		return []string{fallback.String()}, nil
	}
	return nil, nil
}

// sitemapsFromRobots extracts Sitemap directives from robots.txt.
func (s *SitemapSource) sitemapsFromRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			if sm := strings.TrimSpace(line[len("sitemap:"):]); sm != "" {
				sitemaps = append(sitemaps, sm)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}
	return sitemaps, nil
}

// walkSitemap fetches and parses one sitemap, recursing into sitemap index
// entries. The seen set guards against cycles between index files.
func (s *SitemapSource) walkSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML")
	}

	if root.Tag == "sitemapindex" {
		var urls []string
		for _, sm := range root.SelectElements("sitemap") {
			loc := sm.SelectElement("loc")
			if loc == nil {
				continue
			}
			child := strings.TrimSpace(loc.Text())
			if child == "" {
				continue
			}
			found, err := s.walkSitemap(ctx, child, seen)
			if err != nil {
				return nil, err
			}
			urls = append(urls, found...)
		}
		return urls, nil
	}

	var urls []string
	for _, entry := range root.SelectElements("url") {
		loc := entry.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			urls = append(urls, u)
		}
	}
	return urls, nil
}

func (s *SitemapSource) get(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}
	return resp.Body, nil
}

func (s *SitemapSource) exists(ctx context.Context, targetURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}
