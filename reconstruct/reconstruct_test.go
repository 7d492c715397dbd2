package reconstruct_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/pageblocks"
	"github.com/fwojciec/pageblocks/reconstruct"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textBlock(text string, x, y, w, h, size, weight float64) pageblocks.Block {
	return pageblocks.Block{
		Type:       pageblocks.BlockText,
		Text:       text,
		BBox:       pageblocks.BBox{X: x, Y: y, Width: w, Height: h},
		FontSize:   size,
		FontWeight: weight,
	}
}

// body returns filler paragraphs that anchor the page metrics at a 16px
// regular-weight baseline.
func body(n int, y float64) []pageblocks.Block {
	var blocks []pageblocks.Block
	for i := 0; i < n; i++ {
		text := fmt.Sprintf("distinct body paragraph number %d", i)
		blocks = append(blocks, textBlock(text, 10, y+float64(i)*40, 600, 20, 16, 400))
	}
	return blocks
}

func paragraphs(items []reconstruct.Item) []reconstruct.Item {
	var out []reconstruct.Item
	for _, item := range items {
		if item.Type == reconstruct.ItemParagraph {
			out = append(out, item)
		}
	}
	return out
}

func TestReconstructor_Items_ReadingOrder(t *testing.T) {
	t.Parallel()

	blocks := []pageblocks.Block{
		textBlock("gamma", 10, 200, 600, 20, 16, 400),
		textBlock("beta", 300, 100, 300, 20, 16, 400),
		textBlock("alpha", 20, 102, 200, 20, 16, 400),
	}

	items := reconstruct.New().Items(blocks)
	require.Len(t, items, 3)
	assert.Equal(t, "alpha", items[0].Text)
	assert.Equal(t, "beta", items[1].Text)
	assert.Equal(t, "gamma", items[2].Text)
}

func TestReconstructor_Items_HeadingInference(t *testing.T) {
	t.Parallel()

	// Median size 16; 32 >= 1.5x, 20.5 >= 1.25x, 18 >= 1.1x with heavy weight.
	blocks := append(body(4, 300),
		textBlock("page title", 10, 100, 600, 40, 32, 700),
		textBlock("section heading", 10, 150, 600, 28, 20.5, 700),
		textBlock("minor heading", 10, 200, 600, 24, 18, 650),
	)

	items := paragraphs(reconstruct.New().Items(blocks))
	require.Len(t, items, 7)
	assert.Equal(t, 1, items[0].Heading)
	assert.Equal(t, 2, items[1].Heading)
	assert.Equal(t, 3, items[2].Heading)
	for _, item := range items[3:] {
		assert.Zero(t, item.Heading)
	}
}

func TestReconstructor_Items_SemanticHeadingWins(t *testing.T) {
	t.Parallel()

	// Same font as the body, but the markup said h2.
	h := textBlock("quiet heading", 10, 100, 600, 20, 16, 400)
	h.HeadingLevel = 2
	blocks := append(body(3, 200), h)

	items := paragraphs(reconstruct.New().Items(blocks))
	require.Len(t, items, 4)
	assert.Equal(t, 2, items[0].Heading)
}

func TestReconstructor_Items_BoldFromWeight(t *testing.T) {
	t.Parallel()

	blocks := append(body(3, 200),
		textBlock("a heavy callout", 10, 100, 600, 20, 16, 700),
	)

	items := paragraphs(reconstruct.New().Items(blocks))
	require.Len(t, items, 4)
	assert.True(t, items[0].Bold)
	assert.Zero(t, items[0].Heading)
	assert.False(t, items[1].Bold)
}

func TestReconstructor_Items_DropsSmallText(t *testing.T) {
	t.Parallel()

	blocks := append(body(3, 200),
		textBlock("photo credit fine print", 10, 100, 600, 12, 8, 400),
	)

	items := paragraphs(reconstruct.New().Items(blocks))
	require.Len(t, items, 3)
	for _, item := range items {
		assert.NotEqual(t, "photo credit fine print", item.Text)
	}
}

func TestReconstructor_Items_DropsNarrowBlocks(t *testing.T) {
	t.Parallel()

	blocks := append(body(3, 200),
		textBlock("sidebar remnant", 10, 100, 40, 20, 16, 400),
	)

	items := reconstruct.New().Items(blocks)
	assert.Len(t, items, 3)
}

func TestReconstructor_Items_StripsPageEdges(t *testing.T) {
	t.Parallel()

	blocks := append(body(3, 400),
		textBlock("site chrome at the very top", 10, 0, 600, 15, 16, 400),
		textBlock("footer links way down", 10, 995, 600, 5, 16, 400),
	)

	items := reconstruct.New().Items(blocks)
	require.Len(t, items, 3)
	for _, item := range items {
		assert.NotContains(t, item.Text, "chrome")
		assert.NotContains(t, item.Text, "footer")
	}
}

func TestReconstructor_Items_DeduplicatesByContainment(t *testing.T) {
	t.Parallel()

	blocks := append(body(3, 200),
		textBlock("climate change effects", 10, 100, 600, 20, 16, 400),
		textBlock("climate change", 10, 140, 600, 20, 16, 400),
	)

	items := reconstruct.New().Items(blocks)
	require.Len(t, items, 4)
	assert.Equal(t, "climate change effects", items[0].Text)
	for _, item := range items[1:] {
		assert.NotEqual(t, "climate change", item.Text)
	}
}

func TestReconstructor_Items_DuplicateHeadingReplacesParagraph(t *testing.T) {
	t.Parallel()

	h := textBlock("Introduction", 10, 140, 600, 20, 16, 400)
	h.HeadingLevel = 2
	blocks := append(body(3, 200),
		textBlock("Introduction", 10, 100, 600, 20, 16, 400),
		h,
	)

	items := reconstruct.New().Items(blocks)
	require.Len(t, items, 4)
	assert.Equal(t, "Introduction", items[0].Text)
	assert.Equal(t, 2, items[0].Heading)
	for _, item := range items[1:] {
		assert.Zero(t, item.Heading)
	}
}

func TestReconstructor_Items_SkipPatterns(t *testing.T) {
	t.Parallel()

	blocks := append(body(3, 200),
		textBlock("From Wikipedia, the free encyclopedia", 10, 100, 600, 20, 16, 400),
	)

	items := reconstruct.New().Items(blocks)
	assert.Len(t, items, 3)
}

func TestReconstructor_Items_SplitsOnBlankLines(t *testing.T) {
	t.Parallel()

	blocks := append(body(3, 200),
		textBlock("first logical paragraph here\n\nsecond logical paragraph here", 10, 100, 600, 60, 16, 400),
	)

	items := reconstruct.New().Items(blocks)
	require.Len(t, items, 5)
	assert.Equal(t, "first logical paragraph here", items[0].Text)
	assert.Equal(t, "second logical paragraph here", items[1].Text)
}

func TestReconstructor_Items_MarkedLinesBecomeList(t *testing.T) {
	t.Parallel()

	blocks := append(body(3, 200),
		textBlock("- Buy milk for the family\n- Buy eggs for the family", 10, 100, 600, 50, 16, 400),
	)

	items := reconstruct.New().Items(blocks)
	require.Len(t, items, 4)
	assert.Equal(t, reconstruct.ItemList, items[0].Type)
	assert.Equal(t, "-", items[0].Prefix)
	assert.Equal(t, []string{"Buy milk for the family", "Buy eggs for the family"}, items[0].Items)
}

func TestReconstructor_Items_CodeBlock(t *testing.T) {
	t.Parallel()

	code := textBlock("x := compute()", 10, 100, 600, 20, 14, 400)
	code.Spans = []pageblocks.Span{{Text: "x := compute()", Formats: pageblocks.FormatCode}}
	blocks := append(body(3, 200), code)

	items := reconstruct.New().Items(blocks)
	require.Len(t, items, 4)
	assert.True(t, items[0].Code)
	assert.Equal(t, "x := compute()", items[0].Text)
}

func TestReconstructor_Items_StructuralBlocks(t *testing.T) {
	t.Parallel()

	alt := "diagram"
	blocks := append(body(3, 400),
		pageblocks.Block{
			Type:    pageblocks.BlockList,
			BBox:    pageblocks.BBox{X: 10, Y: 100, Width: 400, Height: 60},
			Ordered: true,
			Items: [][]pageblocks.Span{
				{{Text: "first step"}},
				{{Text: "second step"}},
			},
		},
		pageblocks.Block{
			Type: pageblocks.BlockTable,
			BBox: pageblocks.BBox{X: 10, Y: 200, Width: 400, Height: 60},
			Rows: [][]string{{"name", "value"}, {"a", "1"}},
		},
		pageblocks.Block{
			Type: pageblocks.BlockImage,
			BBox: pageblocks.BBox{X: 10, Y: 280, Width: 200, Height: 100},
			Src:  "https://example.com/a.png",
			Alt:  &alt,
		},
	)

	items := reconstruct.New().Items(blocks)
	require.Len(t, items, 6)
	assert.Equal(t, reconstruct.ItemList, items[0].Type)
	assert.Equal(t, "1.", items[0].Prefix)
	assert.Equal(t, []string{"first step", "second step"}, items[0].Items)
	assert.Equal(t, reconstruct.ItemTable, items[1].Type)
	assert.Equal(t, [][]string{{"name", "value"}, {"a", "1"}}, items[1].Rows)
	assert.Equal(t, reconstruct.ItemImage, items[2].Type)
	assert.Equal(t, "https://example.com/a.png", items[2].Src)
	assert.Equal(t, "diagram", items[2].Alt)
}

func TestReconstructor_Items_FiltersLinks(t *testing.T) {
	t.Parallel()

	link := func(text, href string, y float64) pageblocks.Block {
		return pageblocks.Block{
			Type:  pageblocks.BlockLink,
			BBox:  pageblocks.BBox{X: 10, Y: y, Width: 200, Height: 20},
			Spans: []pageblocks.Span{{Text: text}},
			Href:  href,
		}
	}
	blocks := append(body(3, 300),
		link("Annual report 2025", "https://example.com/report", 100),
		link("Read more", "https://example.com/more", 130),
		link("Annual report 2025", "https://example.com/report", 160),
	)

	items := reconstruct.New().Items(blocks)
	require.Len(t, items, 4)
	assert.Equal(t, reconstruct.ItemLink, items[0].Type)
	assert.Equal(t, "Annual report 2025", items[0].Text)
	assert.Equal(t, "https://example.com/report", items[0].Href)
	for _, item := range items[1:] {
		assert.Equal(t, reconstruct.ItemParagraph, item.Type)
	}
}

func TestReconstructor_Items_FiltersLanguageLinks(t *testing.T) {
	t.Parallel()

	link := func(text, href string, y float64) pageblocks.Block {
		return pageblocks.Block{
			Type:  pageblocks.BlockLink,
			BBox:  pageblocks.BBox{X: 10, Y: y, Width: 200, Height: 20},
			Spans: []pageblocks.Span{{Text: text}},
			Href:  href,
		}
	}
	blocks := append(body(3, 300),
		link("Deutsch", "https://example.com/de/", 100),
		link("Overview", "https://example.com/en-us/docs", 120),
		link("日本語", "https://example.com/?lang=ja", 140),
		link("Getting started", "https://example.com/docs/start", 160),
	)

	items := reconstruct.New().Items(blocks)
	require.Len(t, items, 4)
	assert.Equal(t, reconstruct.ItemLink, items[0].Type)
	assert.Equal(t, "Getting started", items[0].Text)
	assert.Equal(t, "https://example.com/docs/start", items[0].Href)
	for _, item := range items[1:] {
		assert.Equal(t, reconstruct.ItemParagraph, item.Type)
	}
}
