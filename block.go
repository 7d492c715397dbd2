package pageblocks

import (
	"encoding/json"
	"strings"
)

// BlockType identifies the variant of a Block.
type BlockType string

// Block type constants.
const (
	BlockText  BlockType = "text"
	BlockList  BlockType = "list"
	BlockTable BlockType = "table"
	BlockImage BlockType = "image"
	BlockLink  BlockType = "link"
)

// BBox is an axis-aligned bounding box in viewport coordinates (CSS pixels).
type BBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Positive reports whether the box has strictly positive area.
func (b BBox) Positive() bool {
	return b.Width > 0 && b.Height > 0
}

// Union returns the smallest box containing both b and o.
func (b BBox) Union(o BBox) BBox {
	x0 := min(b.X, o.X)
	y0 := min(b.Y, o.Y)
	x1 := max(b.X+b.Width, o.X+o.Width)
	y1 := max(b.Y+b.Height, o.Y+o.Height)
	return BBox{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Bottom returns the y coordinate of the box's bottom edge.
func (b BBox) Bottom() float64 {
	return b.Y + b.Height
}

// Format is a set of inline formatting flags for a span of text.
type Format uint8

// Inline format flags.
const (
	FormatBold Format = 1 << iota
	FormatItalic
	FormatCode
)

// Has reports whether all flags in f are set.
func (f Format) Has(flag Format) bool {
	return f&flag == flag
}

// formatNames maps each flag to its serialized name, in declaration order.
var formatNames = []struct {
	flag Format
	name string
}{
	{FormatBold, "bold"},
	{FormatItalic, "italic"},
	{FormatCode, "code"},
}

// Names returns the set members as a sorted slice of strings.
func (f Format) Names() []string {
	names := make([]string, 0, len(formatNames))
	for _, fn := range formatNames {
		if f.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return names
}

// MarshalJSON serializes the set as a JSON array of flag names.
func (f Format) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Names())
}

// UnmarshalJSON parses a JSON array of flag names. Unknown names are ignored
// so that stored data from newer versions still round-trips.
func (f *Format) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*f = 0
	for _, name := range names {
		for _, fn := range formatNames {
			if fn.name == name {
				*f |= fn.flag
			}
		}
	}
	return nil
}

// Span is a run of rendered text carrying its own inline format set and font
// metrics. Spans within one block may differ in all of these.
type Span struct {
	Text       string  `json:"text"`
	Formats    Format  `json:"formats"`
	FontSize   float64 `json:"fontSize,omitempty"`
	FontWeight float64 `json:"fontWeight,omitempty"`
	FontFamily string  `json:"fontFamily,omitempty"`
}

// SpansText concatenates the text of all spans.
func SpansText(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Block is one classified unit of extracted content. It is a tagged union
// over five variants; Type selects which of the variant fields are
// meaningful. All variants carry viewport geometry.
type Block struct {
	Type BlockType `json:"type"`
	BBox BBox      `json:"bbox"`

	// Text variant.
	Text         string  `json:"text,omitempty"`
	Spans        []Span  `json:"spans,omitempty"`
	FontSize     float64 `json:"fontSize,omitempty"`
	FontWeight   float64 `json:"fontWeight,omitempty"`
	FontFamily   string  `json:"fontFamily,omitempty"`
	HeadingLevel int     `json:"headingLevel,omitempty"` // 0 = not a heading, 1-6 = h1-h6

	// List variant. Items holds one span sequence per list item.
	Ordered bool     `json:"ordered,omitempty"`
	Items   [][]Span `json:"items,omitempty"`
	Level   int      `json:"level,omitempty"`

	// Table variant. Empty cell strings are retained to preserve column
	// alignment.
	Rows [][]string `json:"rows,omitempty"`

	// Image variant.
	Src string  `json:"src,omitempty"`
	Alt *string `json:"alt,omitempty"`

	// Link variant.
	Href string `json:"href,omitempty"`
}

// Validate returns an error if the block violates its variant's invariants.
func (b *Block) Validate() error {
	if !b.BBox.Positive() {
		return Errorf(EINVALID, "block bbox must have positive area")
	}
	switch b.Type {
	case BlockText:
		if b.Text == "" {
			return Errorf(EINVALID, "text block requires text")
		}
	case BlockList:
		if len(b.Items) == 0 {
			return Errorf(EINVALID, "list block requires at least one item")
		}
	case BlockTable:
		if len(b.Rows) == 0 {
			return Errorf(EINVALID, "table block requires at least one row")
		}
	case BlockImage:
		if b.Src == "" {
			return Errorf(EINVALID, "image block requires a source URL")
		}
	case BlockLink:
		if !strings.HasPrefix(b.Href, "https://") {
			return Errorf(EINVALID, "link block requires an https:// href")
		}
	default:
		return Errorf(EINVALID, "unknown block type %q", b.Type)
	}
	return nil
}
