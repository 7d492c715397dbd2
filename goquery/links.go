// Package goquery provides CSS-selector based link discovery for crawling.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pageblocks"
)

// Links extracts crawlable link URLs from HTML in document order. Relative
// hrefs are resolved against baseURL, fragments are stripped, and the
// result is deduplicated. External links (different host than baseURL,
// subdomains included) and self-referential links are filtered out.
func Links(html, baseURL string) ([]string, error) {
	return LinksIn(html, baseURL, "a[href]")
}

// LinksIn is Links restricted to anchors matching the given CSS selector,
// e.g. "nav a[href]" to follow only navigation links.
func LinksIn(html, baseURL, selector string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, pageblocks.Errorf(pageblocks.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pageblocks.Errorf(pageblocks.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []string

	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		if skipScheme(href) {
			return
		}

		resolved := resolve(base, href)
		if resolved == "" {
			return
		}
		if !sameHost(base, resolved) {
			return
		}

		if !seen[resolved] {
			seen[resolved] = true
			links = append(links, resolved)
		}
	})

	return links, nil
}

// resolve resolves href against base and strips the fragment. Returns ""
// for unparseable hrefs and for links that point back at the base page
// itself (anchor-only links).
func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// sameHost uses exact host matching; subdomains count as different hosts.
func sameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

// skipScheme reports whether a href uses a scheme that cannot be crawled.
func skipScheme(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
