package pageblocks_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/pageblocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBBox_Union(t *testing.T) {
	t.Parallel()

	a := pageblocks.BBox{X: 10, Y: 10, Width: 100, Height: 20}
	b := pageblocks.BBox{X: 10, Y: 40, Width: 80, Height: 20}

	got := a.Union(b)

	assert.Equal(t, pageblocks.BBox{X: 10, Y: 10, Width: 100, Height: 50}, got)
}

func TestBBox_Union_IsCommutative(t *testing.T) {
	t.Parallel()

	a := pageblocks.BBox{X: 0, Y: 5, Width: 30, Height: 10}
	b := pageblocks.BBox{X: 20, Y: 0, Width: 15, Height: 40}

	assert.Equal(t, a.Union(b), b.Union(a))
}

func TestBBox_Positive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		bbox pageblocks.BBox
		want bool
	}{
		{"positive area", pageblocks.BBox{X: 0, Y: 0, Width: 10, Height: 10}, true},
		{"zero width", pageblocks.BBox{X: 0, Y: 0, Width: 0, Height: 10}, false},
		{"zero height", pageblocks.BBox{X: 0, Y: 0, Width: 10, Height: 0}, false},
		{"negative width", pageblocks.BBox{X: 0, Y: 0, Width: -10, Height: 10}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.bbox.Positive())
		})
	}
}

func TestFormat_Names(t *testing.T) {
	t.Parallel()

	f := pageblocks.FormatBold | pageblocks.FormatCode

	assert.Equal(t, []string{"bold", "code"}, f.Names())
	assert.True(t, f.Has(pageblocks.FormatBold))
	assert.False(t, f.Has(pageblocks.FormatItalic))
}

func TestFormat_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	f := pageblocks.FormatBold | pageblocks.FormatItalic

	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `["bold","italic"]`, string(data))

	var got pageblocks.Format
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, f, got)
}

func TestFormat_UnmarshalJSON_IgnoresUnknownNames(t *testing.T) {
	t.Parallel()

	var got pageblocks.Format
	require.NoError(t, json.Unmarshal([]byte(`["bold","underline"]`), &got))
	assert.Equal(t, pageblocks.FormatBold, got)
}

func TestSpansText(t *testing.T) {
	t.Parallel()

	spans := []pageblocks.Span{
		{Text: "Hello "},
		{Text: "world", Formats: pageblocks.FormatBold},
	}

	assert.Equal(t, "Hello world", pageblocks.SpansText(spans))
}

func TestBlock_Validate(t *testing.T) {
	t.Parallel()

	box := pageblocks.BBox{X: 0, Y: 0, Width: 10, Height: 10}

	tests := []struct {
		name     string
		block    pageblocks.Block
		wantCode string
	}{
		{
			name:  "valid text block",
			block: pageblocks.Block{Type: pageblocks.BlockText, BBox: box, Text: "hello"},
		},
		{
			name:     "zero-area bbox",
			block:    pageblocks.Block{Type: pageblocks.BlockText, Text: "hello"},
			wantCode: pageblocks.EINVALID,
		},
		{
			name:     "text block without text",
			block:    pageblocks.Block{Type: pageblocks.BlockText, BBox: box},
			wantCode: pageblocks.EINVALID,
		},
		{
			name:     "list block without items",
			block:    pageblocks.Block{Type: pageblocks.BlockList, BBox: box},
			wantCode: pageblocks.EINVALID,
		},
		{
			name:     "table block without rows",
			block:    pageblocks.Block{Type: pageblocks.BlockTable, BBox: box},
			wantCode: pageblocks.EINVALID,
		},
		{
			name:     "image block without src",
			block:    pageblocks.Block{Type: pageblocks.BlockImage, BBox: box},
			wantCode: pageblocks.EINVALID,
		},
		{
			name:     "link block with http href",
			block:    pageblocks.Block{Type: pageblocks.BlockLink, BBox: box, Href: "http://example.com"},
			wantCode: pageblocks.EINVALID,
		},
		{
			name:  "link block with https href",
			block: pageblocks.Block{Type: pageblocks.BlockLink, BBox: box, Href: "https://example.com"},
		},
		{
			name:     "unknown type",
			block:    pageblocks.Block{Type: "mystery", BBox: box},
			wantCode: pageblocks.EINVALID,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.block.Validate()
			if tt.wantCode == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, pageblocks.ErrorCode(err))
			}
		})
	}
}
