package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextBlocks_LateTextSupersedesMultipleFragments(t *testing.T) {
	t.Parallel()

	// Both earlier fragments are substrings of the final text; both must be
	// retroactively removed in one step.
	blocks := textBlocks(t, `<html><body>
<p>one two three four</p>
<p>five six seven eight</p>
<p>intro one two three four then five six seven eight outro</p>
</body></html>`)

	assert.Equal(t, []string{"intro one two three four then five six seven eight outro"}, texts(blocks))
}

func TestTextBlocks_RepeatedTextKeptOnce(t *testing.T) {
	t.Parallel()

	blocks := textBlocks(t, `<html><body>
<p>the very same sentence appears twice</p>
<p>the very same sentence appears twice</p>
</body></html>`)

	assert.Equal(t, []string{"the very same sentence appears twice"}, texts(blocks))
}

func TestTextBlocks_SupersededFragmentPositionFollowsWinner(t *testing.T) {
	t.Parallel()

	// Removing a superseded fragment must not disturb the order of
	// unrelated accepted blocks around it.
	blocks := textBlocks(t, `<html><body>
<p>unrelated opening paragraph stays first</p>
<p>alpha beta gamma delta</p>
<p>unrelated middle paragraph stays second</p>
<p>extended alpha beta gamma delta sentence wins</p>
</body></html>`)

	assert.Equal(t, []string{
		"unrelated opening paragraph stays first",
		"unrelated middle paragraph stays second",
		"extended alpha beta gamma delta sentence wins",
	}, texts(blocks))
}

func TestTextBlocks_ListItemTextBlocksLaterFragment(t *testing.T) {
	t.Parallel()

	// Accumulated list-item text participates in suppression even though
	// no individual block is emitted for it: the later paragraph repeating
	// an item is contained in the merged block's text.
	blocks := textBlocks(t, `<html><body>
<ul>
<li>a first accumulated entry</li>
<li>a second accumulated entry</li>
</ul>
<p>a first accumulated entry</p>
</body></html>`)

	assert.Equal(t, []string{"- a first accumulated entry\n- a second accumulated entry"}, texts(blocks))
}
