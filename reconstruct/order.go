package reconstruct

import (
	"sort"

	"github.com/fwojciec/pageblocks"
)

// DefaultYTolerance is the vertical tolerance in pixels within which two
// blocks count as sitting on the same visual line.
const DefaultYTolerance = 5.0

// ReadingOrder returns the blocks sorted into reading order: top to bottom,
// left to right within a line. Blocks whose y coordinates differ by at most
// yTol are grouped into one line and ordered by x. The input slice is not
// modified.
func ReadingOrder(blocks []pageblocks.Block, yTol float64) []pageblocks.Block {
	sorted := make([]pageblocks.Block, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].BBox.Y != sorted[j].BBox.Y {
			return sorted[i].BBox.Y < sorted[j].BBox.Y
		}
		return sorted[i].BBox.X < sorted[j].BBox.X
	})

	result := make([]pageblocks.Block, 0, len(sorted))
	var line []pageblocks.Block
	lastY := 0.0
	haveY := false

	flush := func() {
		sort.SliceStable(line, func(i, j int) bool {
			return line[i].BBox.X < line[j].BBox.X
		})
		result = append(result, line...)
		line = line[:0]
	}

	for _, b := range sorted {
		y := b.BBox.Y
		if !haveY || abs(y-lastY) <= yTol {
			line = append(line, b)
		} else {
			flush()
			line = append(line, b)
		}
		lastY = y
		haveY = true
	}
	flush()

	return result
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
