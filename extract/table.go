package extract

import (
	"strings"

	"github.com/fwojciec/pageblocks"
)

// Tables runs the table pass: for every <table>, cell text is collected row
// by row in document order. Empty cell strings are retained so column
// alignment survives; a row is kept once it has at least one cell,
// regardless of emptiness. A table is emitted only when at least one row
// survived and its bbox has positive area.
func (x *Extractor) Tables(doc *pageblocks.Document) ([]pageblocks.Block, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	var blocks []pageblocks.Block
	for _, table := range doc.Elements(func(e *pageblocks.Element) bool {
		return e.Tag == "table"
	}) {
		if !table.BBox.Positive() {
			continue
		}

		var rows [][]string
		table.Walk(func(e *pageblocks.Element) bool {
			if e.Tag != "tr" {
				return true
			}
			var cells []string
			for _, cell := range e.Children() {
				if cell.Tag != "td" && cell.Tag != "th" {
					continue
				}
				cells = append(cells, strings.TrimSpace(cell.Text()))
			}
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
			return true
		})
		if len(rows) == 0 {
			continue
		}

		blocks = append(blocks, pageblocks.Block{
			Type: pageblocks.BlockTable,
			BBox: table.BBox,
			Rows: rows,
		})
	}

	return blocks, nil
}
