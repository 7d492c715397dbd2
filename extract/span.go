package extract

import (
	"strings"

	"github.com/fwojciec/pageblocks"
)

// Ancestor tags that add inline formatting. Tags only ever add formats on
// top of what the computed style already implies, never remove them.
var (
	boldTags   = tagSet("b", "strong")
	italicTags = tagSet("i", "em")
	codeTags   = tagSet("code", "kbd", "samp")
)

// Spans walks descendant text nodes of root depth first and emits one span
// per non-empty text node, in document order. Each span carries the font
// metrics of the text node's immediate parent; its format set is seeded
// from that parent's computed style (weight >= 700 is bold, font-style
// italic or oblique is italic) and upgraded by any formatting tag on the
// chain from the parent up to, but excluding, root. Subtrees under skip
// tags are not entered.
func (x *Extractor) Spans(root *pageblocks.Element) []pageblocks.Span {
	var spans []pageblocks.Span
	x.walkSpans(root, root, &spans)
	return spans
}

func (x *Extractor) walkSpans(root, e *pageblocks.Element, spans *[]pageblocks.Span) {
	for _, n := range e.Nodes {
		if n.Element != nil {
			if _, ok := x.skipTags[n.Element.Tag]; ok {
				continue
			}
			x.walkSpans(root, n.Element, spans)
			continue
		}

		text := strings.TrimSpace(n.Text)
		if text == "" {
			continue
		}

		var formats pageblocks.Format
		if e.Style.FontWeight >= 700 {
			formats |= pageblocks.FormatBold
		}
		if e.Style.FontStyle == "italic" || e.Style.FontStyle == "oblique" {
			formats |= pageblocks.FormatItalic
		}
		for cur := e; cur != nil && cur != root; cur = cur.Parent() {
			if _, ok := boldTags[cur.Tag]; ok {
				formats |= pageblocks.FormatBold
			}
			if _, ok := italicTags[cur.Tag]; ok {
				formats |= pageblocks.FormatItalic
			}
			if _, ok := codeTags[cur.Tag]; ok {
				formats |= pageblocks.FormatCode
			}
		}

		*spans = append(*spans, pageblocks.Span{
			Text:       text,
			Formats:    formats,
			FontSize:   e.Style.FontSize,
			FontWeight: e.Style.FontWeight,
			FontFamily: e.Style.FontFamily,
		})
	}
}
