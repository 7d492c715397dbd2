package extract

import (
	"strings"

	"github.com/fwojciec/pageblocks"
)

// Links runs the link pass: one Link block per anchor whose href literally
// starts with "https://". Relative and non-https hrefs are dropped on
// purpose, not as an oversight: downstream reconstruction only wants
// absolute, secure destinations. The anchor must render nonempty text with
// positive-area geometry; its spans come from the span walker.
func (x *Extractor) Links(doc *pageblocks.Document) ([]pageblocks.Block, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	var blocks []pageblocks.Block
	for _, a := range doc.Elements(func(e *pageblocks.Element) bool {
		_, ok := e.Attr("href")
		return e.Tag == "a" && ok
	}) {
		href, _ := a.Attr("href")
		if !strings.HasPrefix(href, "https://") {
			continue
		}
		if strings.TrimSpace(a.Text()) == "" {
			continue
		}
		if !a.BBox.Positive() {
			continue
		}

		blocks = append(blocks, pageblocks.Block{
			Type:  pageblocks.BlockLink,
			BBox:  a.BBox,
			Href:  href,
			Spans: x.Spans(a),
		})
	}

	return blocks, nil
}
