package extract

import "github.com/fwojciec/pageblocks"

// Images runs the image pass: one Image block per <img> with a nonempty
// resolved source and positive-area geometry. Alt text is optional and nil
// when the attribute is absent.
func (x *Extractor) Images(doc *pageblocks.Document) ([]pageblocks.Block, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	var blocks []pageblocks.Block
	for _, img := range doc.Elements(func(e *pageblocks.Element) bool {
		return e.Tag == "img"
	}) {
		if !img.BBox.Positive() {
			continue
		}
		src, _ := img.Attr("src")
		if src == "" {
			continue
		}

		var alt *string
		if v, ok := img.Attr("alt"); ok {
			alt = &v
		}

		blocks = append(blocks, pageblocks.Block{
			Type: pageblocks.BlockImage,
			BBox: img.BBox,
			Src:  src,
			Alt:  alt,
		})
	}

	return blocks, nil
}
