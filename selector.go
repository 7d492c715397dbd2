package pageblocks

// Selector decides whether an element is a candidate for text extraction.
// Selector composition policy belongs to the caller: the extraction engine
// treats the supplied selectors as an opaque set and visits matching
// elements in document order.
type Selector func(*Element) bool

// TagSelector returns a Selector matching elements by lowercase tag name.
func TagSelector(tags ...string) Selector {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return func(e *Element) bool {
		_, ok := set[e.Tag]
		return ok
	}
}

// DefaultSelectors selects the element families that commonly carry body
// content on component-framework pages, where tag names alone cannot be
// trusted to mean anything.
func DefaultSelectors() []Selector {
	return []Selector{
		TagSelector(
			"p", "div", "li", "dt", "dd",
			"h1", "h2", "h3", "h4", "h5", "h6",
			"pre", "code", "section", "article", "main",
			"a", "blockquote",
		),
	}
}

// MatchAny combines selectors into a single predicate.
func MatchAny(selectors []Selector) func(*Element) bool {
	return func(e *Element) bool {
		for _, s := range selectors {
			if s(e) {
				return true
			}
		}
		return false
	}
}
