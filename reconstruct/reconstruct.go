// Package reconstruct turns raw extracted block sequences into clean,
// ordered content items ready for rendering. It infers what the markup
// could not say: reading order from geometry, heading levels from page-wide
// font statistics, and boldness from weight distribution. Everything here
// is heuristic by nature; the goal is clean output for the common shapes of
// real pages, not perfection.
package reconstruct

import (
	"strings"

	"github.com/fwojciec/pageblocks"
)

// ItemType identifies the variant of a reconstructed Item.
type ItemType string

// Item type constants.
const (
	ItemParagraph ItemType = "paragraph"
	ItemList      ItemType = "list"
	ItemTable     ItemType = "table"
	ItemImage     ItemType = "image"
	ItemLink      ItemType = "link"
)

// Item is one reconstructed content item.
type Item struct {
	Type ItemType `json:"type"`

	// Paragraph variant.
	Text    string `json:"text,omitempty"`
	Bold    bool   `json:"bold,omitempty"`
	Heading int    `json:"heading,omitempty"` // 0 = body text, 1-6 = heading depth
	Code    bool   `json:"code,omitempty"`

	// List variant.
	Items  []string `json:"items,omitempty"`
	Prefix string   `json:"prefix,omitempty"`

	// Table variant.
	Rows [][]string `json:"rows,omitempty"`

	// Image variant.
	Src string `json:"src,omitempty"`
	Alt string `json:"alt,omitempty"`

	// Link variant.
	Href string `json:"href,omitempty"`
}

// Default heuristic thresholds.
const (
	// DefaultBoldThreshold marks text bold when its weight exceeds the
	// page mean by this fraction.
	DefaultBoldThreshold = 0.35

	// DefaultEdgeFraction strips blocks in the extreme top and bottom
	// slices of the page, where persistent chrome lives.
	DefaultEdgeFraction = 0.02

	// DefaultSmallTextFraction drops text rendered at or below this
	// fraction of the mean font size: fine print, badges, attribution.
	DefaultSmallTextFraction = 0.65

	// DefaultMinWidth drops text blocks narrower than this many pixels,
	// which are almost always sidebar remnants.
	DefaultMinWidth = 50.0
)

// DefaultSkipPatterns returns boilerplate phrases whose presence disquali-
// fies a paragraph.
func DefaultSkipPatterns() []string {
	return []string{
		"from wikipedia",
		"not to be confused with",
		"this article is about",
		"for other uses",
		"see also:",
		"main article:",
		"jump to navigation",
		"jump to search",
		"retrieved from",
		"categories:",
		"hidden categories:",
		"view source",
		"edit this",
		"cookie policy",
		"privacy policy",
		"terms of use",
	}
}

// Reconstructor converts raw block sequences into content items.
type Reconstructor struct {
	boldThreshold     float64
	edgeFraction      float64
	smallTextFraction float64
	minWidth          float64
	yTolerance        float64
	skipPatterns      []string
}

// Option configures a Reconstructor.
type Option func(*Reconstructor)

// WithYTolerance sets the same-line vertical tolerance for reading order.
func WithYTolerance(tol float64) Option {
	return func(r *Reconstructor) { r.yTolerance = tol }
}

// WithSkipPatterns replaces the boilerplate phrase list.
func WithSkipPatterns(patterns []string) Option {
	return func(r *Reconstructor) { r.skipPatterns = patterns }
}

// New creates a Reconstructor with default thresholds.
func New(opts ...Option) *Reconstructor {
	r := &Reconstructor{
		boldThreshold:     DefaultBoldThreshold,
		edgeFraction:      DefaultEdgeFraction,
		smallTextFraction: DefaultSmallTextFraction,
		minWidth:          DefaultMinWidth,
		yTolerance:        DefaultYTolerance,
		skipPatterns:      DefaultSkipPatterns(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Metrics computes page-level font statistics over the text blocks.
func Metrics(blocks []pageblocks.Block) PageMetrics {
	var sizes, weights []float64
	for _, b := range blocks {
		if b.Type == pageblocks.BlockText {
			sizes = append(sizes, b.FontSize)
			weights = append(weights, b.FontWeight)
		}
	}
	return PageMetrics{FontSize: ComputeStats(sizes), FontWeight: ComputeStats(weights)}
}

// Items reorders the raw blocks into reading order and converts them into
// clean content items. The input slice is not modified.
func (r *Reconstructor) Items(blocks []pageblocks.Block) []Item {
	ordered := ReadingOrder(blocks, r.yTolerance)
	metrics := Metrics(ordered)

	var maxBottom float64
	for _, b := range ordered {
		maxBottom = max(maxBottom, b.BBox.Bottom())
	}
	headerY := maxBottom * r.edgeFraction
	footerY := maxBottom * (1 - r.edgeFraction)

	var items []Item
	seen := make(map[string]bool)
	normToIndex := make(map[string]int)

	for _, b := range ordered {
		if b.BBox.Y < headerY || b.BBox.Y > footerY {
			continue
		}

		switch b.Type {
		case pageblocks.BlockText:
			if b.BBox.Width < r.minWidth {
				continue
			}
			for _, item := range r.paragraphs(b, metrics) {
				items = r.appendDeduped(items, item, seen, normToIndex)
			}

		case pageblocks.BlockList:
			prefix := "-"
			if b.Ordered {
				prefix = "1."
			}
			lines := make([]string, 0, len(b.Items))
			for _, spans := range b.Items {
				if text := normalize(pageblocks.SpansText(spans)); text != "" {
					lines = append(lines, text)
				}
			}
			if len(lines) > 0 {
				items = append(items, Item{Type: ItemList, Items: lines, Prefix: prefix})
			}

		case pageblocks.BlockTable:
			items = append(items, Item{Type: ItemTable, Rows: b.Rows})

		case pageblocks.BlockImage:
			item := Item{Type: ItemImage, Src: b.Src}
			if b.Alt != nil {
				item.Alt = *b.Alt
			}
			items = append(items, item)

		case pageblocks.BlockLink:
			if text := normalize(pageblocks.SpansText(b.Spans)); text != "" {
				items = append(items, Item{Type: ItemLink, Text: text, Href: b.Href})
			}
		}
	}

	return filterLinks(items)
}

// paragraphs converts one raw text block into zero or more paragraph or
// list items using page-level metrics. Blank-line splits handle DOM
// elements that carry several logical paragraphs.
func (r *Reconstructor) paragraphs(b pageblocks.Block, metrics PageMetrics) []Item {
	text := strings.TrimSpace(b.Text)
	if text == "" {
		return nil
	}

	if isCode(b) {
		return []Item{{Type: ItemParagraph, Text: text, Code: true}}
	}

	if lines, prefix, ok := markedLines(text); ok {
		return []Item{{Type: ItemList, Items: lines, Prefix: prefix}}
	}

	var out []Item
	for _, para := range strings.Split(text, "\n\n") {
		cleaned := normalize(para)
		if cleaned == "" {
			continue
		}
		if metrics.FontSize.Mean > 0 && b.FontSize <= metrics.FontSize.Mean*r.smallTextFraction {
			continue
		}

		heading := b.HeadingLevel
		if heading == 0 {
			switch {
			case b.FontSize >= metrics.FontSize.Median*1.5:
				heading = 1
			case b.FontSize >= metrics.FontSize.Median*1.25:
				heading = 2
			case b.FontSize >= metrics.FontSize.Median*1.1 && b.FontWeight >= 600:
				heading = 3
			}
		}

		bold := b.FontWeight >= metrics.FontWeight.Mean*(1+r.boldThreshold)

		out = append(out, Item{Type: ItemParagraph, Text: cleaned, Bold: bold, Heading: heading})
	}
	return out
}

// appendDeduped appends a paragraph-family item with normalized-text
// deduplication. Headings are favored: a duplicate heading replaces an
// earlier identical paragraph, while a duplicate paragraph is dropped.
func (r *Reconstructor) appendDeduped(items []Item, item Item, seen map[string]bool, normToIndex map[string]int) []Item {
	if item.Type != ItemParagraph {
		items = append(items, item)
		return items
	}

	norm := strings.ToLower(normalize(item.Text))
	if norm == "" {
		return items
	}
	for _, pattern := range r.skipPatterns {
		if strings.Contains(norm, pattern) {
			return items
		}
	}

	dup := false
	for s := range seen {
		if strings.Contains(s, norm) || strings.Contains(norm, s) {
			dup = true
			break
		}
	}

	if dup {
		if item.Heading == 0 {
			return items
		}
		// A heading wins over an earlier identical paragraph.
		if idx, ok := normToIndex[norm]; ok && idx < len(items) && items[idx].Heading == 0 {
			items = append(items[:idx], items[idx+1:]...)
			for k, v := range normToIndex {
				if v > idx {
					normToIndex[k] = v - 1
				}
			}
		}
	}

	seen[norm] = true
	normToIndex[norm] = len(items)
	return append(items, item)
}

// isCode reports whether every span of the block is a code run.
func isCode(b pageblocks.Block) bool {
	if len(b.Spans) == 0 {
		return false
	}
	for _, s := range b.Spans {
		if !s.Formats.Has(pageblocks.FormatCode) {
			return false
		}
	}
	return true
}

// markedLines recognizes merged list text produced by the extraction
// engine's inline accumulator: every line starts with a "- " or "* "
// marker.
func markedLines(text string) (lines []string, prefix string, ok bool) {
	split := strings.Split(text, "\n")
	if len(split) < 2 {
		return nil, "", false
	}
	for i, line := range split {
		var marker string
		switch {
		case strings.HasPrefix(line, "- "):
			marker = "-"
		case strings.HasPrefix(line, "* "):
			marker = "*"
		default:
			return nil, "", false
		}
		if i == 0 {
			prefix = marker
		}
		lines = append(lines, normalize(line[2:]))
	}
	return lines, prefix, true
}

// normalize collapses all whitespace runs into single spaces.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
