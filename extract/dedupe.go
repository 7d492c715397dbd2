package extract

import (
	"strings"

	"github.com/fwojciec/pageblocks"
)

// tracker implements containment-based duplicate suppression for one text
// extraction pass. It keeps two index-aligned ordered lists: accepted block
// entries and their text strings. When one accepted text is a substring of
// another, the textually larger one wins, with the winner decided by
// encounter order: a later large text supersedes earlier contained
// fragments, while an earlier large text blocks later fragments from ever
// being accepted. This order sensitivity is intentional and load-bearing.
//
// Entries may carry a nil block: list-item texts participate in suppression
// before their accumulated block exists.
type tracker struct {
	blocks []*pageblocks.Block
	texts  []string
}

// check offers a candidate text to the tracker. It returns false when an
// existing text already contains the candidate. Otherwise every existing
// entry contained in the candidate is removed and check returns true; the
// caller is then expected to append the candidate's entry once it emits.
// Removal runs in descending index order so remaining indices stay valid.
func (t *tracker) check(text string) bool {
	var subsumed []int
	for i, existing := range t.texts {
		if strings.Contains(existing, text) {
			return false
		}
		if strings.Contains(text, existing) {
			subsumed = append(subsumed, i)
		}
	}

	for i := len(subsumed) - 1; i >= 0; i-- {
		idx := subsumed[i]
		t.blocks = append(t.blocks[:idx], t.blocks[idx+1:]...)
		t.texts = append(t.texts[:idx], t.texts[idx+1:]...)
	}

	return true
}

// append records an accepted text with its emitted block, which is nil for
// accumulated list items that have no block of their own.
func (t *tracker) append(text string, block *pageblocks.Block) {
	t.blocks = append(t.blocks, block)
	t.texts = append(t.texts, text)
}

// accepted returns the surviving emitted blocks in acceptance order.
func (t *tracker) accepted() []pageblocks.Block {
	var out []pageblocks.Block
	for _, b := range t.blocks {
		if b != nil {
			out = append(out, *b)
		}
	}
	return out
}
