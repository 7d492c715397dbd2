package extract

import "github.com/fwojciec/pageblocks"

// Lists runs the structural list pass: one List block per <ul>/<ol> element
// with at least one direct <li> child yielding a nonempty span sequence.
// Only direct children count; nested lists produce their own blocks. The
// block's bbox is the list element's own box, not a union of item boxes;
// union bboxes belong to the inline accumulator in the text pass, which is
// the alternative list representation.
func (x *Extractor) Lists(doc *pageblocks.Document) ([]pageblocks.Block, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	var blocks []pageblocks.Block
	for _, list := range doc.Elements(func(e *pageblocks.Element) bool {
		return e.Tag == "ul" || e.Tag == "ol"
	}) {
		if !list.BBox.Positive() {
			continue
		}

		var items [][]pageblocks.Span
		for _, child := range list.Children() {
			if child.Tag != "li" {
				continue
			}
			spans := x.Spans(child)
			if len(spans) == 0 {
				continue
			}
			items = append(items, spans)
		}
		if len(items) == 0 {
			continue
		}

		blocks = append(blocks, pageblocks.Block{
			Type:    pageblocks.BlockList,
			BBox:    list.BBox,
			Ordered: list.Tag == "ol",
			Items:   items,
			Level:   0,
		})
	}

	return blocks, nil
}
