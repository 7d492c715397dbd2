package extract

import (
	"strings"

	"github.com/fwojciec/pageblocks"
)

// listMarkers maps list-item-family tags to the line marker used when their
// text is accumulated into a merged text block.
var listMarkers = map[string]string{
	"li": "- ",
	"dt": "* ",
	"dd": "* ",
}

// headingLevels maps heading tags to their depth.
var headingLevels = map[string]int{
	"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6,
}

// TextBlocks runs the text extraction pass. Candidates are the elements
// matching the caller-supplied selectors, visited in document order; when
// selectors is empty the default selector set is used. Consecutive
// list-item-family candidates are accumulated into a single merged block
// whose bbox is the geometric union of the item boxes.
//
// The only possible error is an EINVALID precondition violation for a
// document without a root; every per-candidate rejection is a silent skip.
func (x *Extractor) TextBlocks(doc *pageblocks.Document, selectors []pageblocks.Selector) ([]pageblocks.Block, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if len(selectors) == 0 {
		selectors = pageblocks.DefaultSelectors()
	}

	// Pass-scoped state, discarded on return.
	var tr tracker
	var acc listAccumulator

	for _, e := range doc.Elements(pageblocks.MatchAny(selectors)) {
		info := x.classify(e)
		if info.skip {
			continue
		}

		text := strings.TrimSpace(e.Text())
		if text == "" {
			continue
		}

		words := len(strings.Fields(text))
		if info.inTable {
			if words < x.tableMinWords {
				continue
			}
		} else if headingLevels[e.Tag] == 0 && words < x.minWords {
			continue
		}

		if !e.BBox.Positive() {
			continue
		}
		if x.isWrapper(e, text) {
			continue
		}
		if !tr.check(text) {
			continue
		}

		if marker, ok := listMarkers[e.Tag]; ok {
			tr.append(text, nil)
			acc.add(x, marker, text, e)
			continue
		}

		if !acc.empty() {
			flushed := acc.flush()
			tr.append(flushed.Text, &flushed)
		}

		block := pageblocks.Block{
			Type:         pageblocks.BlockText,
			BBox:         e.BBox,
			Text:         text,
			Spans:        x.Spans(e),
			FontSize:     e.Style.FontSize,
			FontWeight:   e.Style.FontWeight,
			FontFamily:   e.Style.FontFamily,
			HeadingLevel: headingLevels[e.Tag],
		}
		tr.append(text, &block)
	}

	if !acc.empty() {
		flushed := acc.flush()
		tr.append(flushed.Text, &flushed)
	}

	return tr.accepted(), nil
}

// isWrapper rejects non-leaf wrappers whose content is already represented
// by descendant blocks: the summed trimmed text of direct child elements
// exceeding the configured share of the element's own trimmed text means
// the element adds nothing of its own.
func (x *Extractor) isWrapper(e *pageblocks.Element, text string) bool {
	var childLen int
	for _, child := range e.Children() {
		childLen += len(strings.TrimSpace(child.Text()))
	}
	return float64(childLen) > x.wrapperRatio*float64(len(text))
}

// listAccumulator buffers consecutive list-item-family candidates during a
// text pass. The merged block inherits font metrics and heading level from
// the first accumulated item and grows its bbox by geometric union.
type listAccumulator struct {
	lines []string
	spans []pageblocks.Span
	bbox  pageblocks.BBox
	first *pageblocks.Element
}

func (a *listAccumulator) empty() bool {
	return len(a.lines) == 0
}

func (a *listAccumulator) add(x *Extractor, marker, text string, e *pageblocks.Element) {
	if a.first == nil {
		a.first = e
		a.bbox = e.BBox
	} else {
		a.bbox = a.bbox.Union(e.BBox)
	}
	a.lines = append(a.lines, marker+text)
	a.spans = append(a.spans, x.Spans(e)...)
}

// flush emits the merged block and clears the buffer.
func (a *listAccumulator) flush() pageblocks.Block {
	block := pageblocks.Block{
		Type:         pageblocks.BlockText,
		BBox:         a.bbox,
		Text:         strings.Join(a.lines, "\n"),
		Spans:        a.spans,
		FontSize:     a.first.Style.FontSize,
		FontWeight:   a.first.Style.FontWeight,
		FontFamily:   a.first.Style.FontFamily,
		HeadingLevel: headingLevels[a.first.Tag],
	}
	*a = listAccumulator{}
	return block
}
