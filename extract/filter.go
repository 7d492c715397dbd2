package extract

import "github.com/fwojciec/pageblocks"

// Tags that form table structure. An ancestor match relaxes the word-count
// policy downstream rather than skipping the candidate.
var tableTags = tagSet("table", "thead", "tbody", "tfoot", "tr", "td", "th")

// chainInfo is the result of classifying a candidate's ancestor chain.
type chainInfo struct {
	// skip marks the candidate as ineligible content.
	skip bool

	// inTable is true when the candidate is part of a table structure.
	inTable bool
}

// classify walks the chain from the element up to (excluding) the document
// root. A skip tag or a non-content landmark role anywhere on the chain
// marks the whole chain as skipped. The candidate itself is additionally
// rejected when its resolved style hides it. Pure predicate, no side
// effects.
func (x *Extractor) classify(e *pageblocks.Element) chainInfo {
	var info chainInfo

	if hidden(e) {
		info.skip = true
		return info
	}

	for cur := e; cur != nil && cur.Parent() != nil; cur = cur.Parent() {
		if _, ok := x.skipTags[cur.Tag]; ok {
			info.skip = true
		}
		if _, ok := x.noiseRoles[cur.Role]; ok {
			info.skip = true
		}
		if _, ok := tableTags[cur.Tag]; ok {
			info.inTable = true
		}
	}

	return info
}

// hidden reports whether the element's resolved style removes it from
// rendering.
func hidden(e *pageblocks.Element) bool {
	if e.AriaHidden {
		return true
	}
	s := e.Style
	return s.Display == "none" || s.Visibility == "hidden" || s.Opacity == 0
}
