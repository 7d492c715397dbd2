// Package htmldoc builds Document snapshots from static HTML using a
// synthetic flow layout and user-agent style defaults. It provides an
// offline host for tests and fixtures: the extraction engine consumes
// Document snapshots and never parses HTML itself, so something has to
// stand in for a real rendering host when none is available.
//
// The synthetic layout is a simple vertical flow: every laid-out node
// advances a y cursor, block elements span the content width, and inline
// elements are sized from their text. Fixtures that need exact geometry or
// style can override any of it per element with data attributes:
//
//	data-bbox="x,y,w,h"
//	data-font-size, data-font-weight, data-font-style, data-font-family
//	data-display, data-visibility, data-opacity
//
// role and aria-hidden are read from their usual attributes.
package htmldoc

import (
	"strconv"
	"strings"

	"github.com/fwojciec/pageblocks"
	"golang.org/x/net/html"
)

// Synthetic layout constants.
const (
	pageX        = 8.0
	pageY        = 8.0
	contentWidth = 784.0
	charWidth    = 8.0
	charsPerLine = 100
)

// blockTags lays out on their own vertical run; everything else is inline.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"body": true, "dd": true, "div": true, "dl": true, "dt": true,
	"fieldset": true, "figure": true, "figcaption": true, "footer": true,
	"form": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "hr": true, "li": true,
	"main": true, "nav": true, "ol": true, "p": true, "pre": true,
	"section": true, "table": true, "tbody": true, "tfoot": true,
	"thead": true, "tr": true, "td": true, "th": true, "ul": true,
}

// tagStyle holds user-agent style defaults applied on top of inherited
// font metrics.
type tagStyle struct {
	fontSize   float64
	fontWeight float64
	fontStyle  string
}

var tagStyles = map[string]tagStyle{
	"h1":     {fontSize: 32, fontWeight: 700},
	"h2":     {fontSize: 24, fontWeight: 700},
	"h3":     {fontSize: 18.72, fontWeight: 700},
	"h4":     {fontSize: 16, fontWeight: 700},
	"h5":     {fontSize: 13.28, fontWeight: 700},
	"h6":     {fontSize: 10.72, fontWeight: 700},
	"b":      {fontWeight: 700},
	"strong": {fontWeight: 700},
	"th":     {fontWeight: 700},
	"i":      {fontStyle: "italic"},
	"em":     {fontStyle: "italic"},
}

// FromHTML parses src and returns a Document snapshot rooted at <body>,
// with synthetic layout resolved for every element. The page title comes
// from <title> when present.
func FromHTML(url, src string) (*pageblocks.Document, error) {
	node, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, pageblocks.Errorf(pageblocks.EINVALID, "failed to parse HTML: %v", err)
	}

	body := findElement(node, "body")
	if body == nil {
		return nil, pageblocks.Errorf(pageblocks.EINVALID, "document has no body")
	}

	l := &layouter{y: pageY}
	base := pageblocks.Style{
		Display:    "block",
		Visibility: "visible",
		Opacity:    1,
		FontSize:   16,
		FontWeight: 400,
		FontStyle:  "normal",
		FontFamily: "serif",
	}
	root := l.build(body, base, false)

	title := ""
	if t := findElement(node, "title"); t != nil && t.FirstChild != nil {
		title = strings.TrimSpace(t.FirstChild.Data)
	}

	return pageblocks.NewDocument(url, title, root), nil
}

// layouter tracks the flow cursor during a build.
type layouter struct {
	y float64
}

// build converts one HTML element node into a snapshot Element, laying out
// its subtree. hidden propagates display:none from ancestors: hidden
// subtrees keep their styles and structure but get zero geometry and do
// not advance the cursor.
func (l *layouter) build(n *html.Node, inherited pageblocks.Style, hidden bool) *pageblocks.Element {
	attrs := attrMap(n)

	style := resolveStyle(n.Data, attrs, inherited)
	if style.Display == "none" {
		hidden = true
	}

	e := &pageblocks.Element{
		Tag:        n.Data,
		Role:       attrs["role"],
		AriaHidden: attrs["aria-hidden"] == "true",
		Attrs:      attrs,
		Style:      style,
	}

	startY := l.y

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			e.Nodes = append(e.Nodes, pageblocks.Node{Text: c.Data})
			trimmed := strings.TrimSpace(c.Data)
			if trimmed == "" || hidden {
				continue
			}
			lines := (len(trimmed) + charsPerLine - 1) / charsPerLine
			l.y += float64(lines) * lineHeight(style.FontSize)
		case html.ElementNode:
			child := l.build(c, style, hidden)
			e.Nodes = append(e.Nodes, pageblocks.Node{Element: child})
		}
	}

	// Inline widths are sized from the subtree's rendered text.
	textLen := len(strings.TrimSpace(e.Text()))
	e.BBox = l.bboxFor(n.Data, attrs, startY, textLen, hidden)
	return e
}

func (l *layouter) bboxFor(tag string, attrs map[string]string, startY float64, textLen int, hidden bool) pageblocks.BBox {
	if v, ok := attrs["data-bbox"]; ok {
		if box, ok := parseBBox(v); ok {
			return box
		}
	}
	if hidden {
		return pageblocks.BBox{}
	}

	if tag == "img" {
		w := attrFloat(attrs, "width", 120)
		h := attrFloat(attrs, "height", 80)
		box := pageblocks.BBox{X: pageX, Y: l.y, Width: w, Height: h}
		l.y += h
		return box
	}

	box := pageblocks.BBox{X: pageX, Y: startY, Height: l.y - startY}
	if blockTags[tag] {
		box.Width = contentWidth
	} else {
		box.Width = min(float64(textLen)*charWidth, contentWidth)
	}
	return box
}

func lineHeight(fontSize float64) float64 {
	return max(24, fontSize*1.5)
}

// resolveStyle layers tag defaults and data attribute overrides on top of
// the inherited style.
func resolveStyle(tag string, attrs map[string]string, inherited pageblocks.Style) pageblocks.Style {
	style := inherited
	style.Visibility = "visible"
	style.Opacity = 1
	if blockTags[tag] {
		style.Display = "block"
	} else {
		style.Display = "inline"
	}

	if ts, ok := tagStyles[tag]; ok {
		if ts.fontSize != 0 {
			style.FontSize = ts.fontSize
		}
		if ts.fontWeight != 0 {
			style.FontWeight = ts.fontWeight
		}
		if ts.fontStyle != "" {
			style.FontStyle = ts.fontStyle
		}
	}

	if v, ok := attrs["data-display"]; ok {
		style.Display = v
	}
	if v, ok := attrs["data-visibility"]; ok {
		style.Visibility = v
	}
	if v, ok := attrs["data-opacity"]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			style.Opacity = f
		}
	}
	if v, ok := attrs["data-font-size"]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			style.FontSize = f
		}
	}
	if v, ok := attrs["data-font-weight"]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			style.FontWeight = f
		}
	}
	if v, ok := attrs["data-font-style"]; ok {
		style.FontStyle = v
	}
	if v, ok := attrs["data-font-family"]; ok {
		style.FontFamily = v
	}

	return style
}

func attrMap(n *html.Node) map[string]string {
	if len(n.Attr) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		attrs[a.Key] = a.Val
	}
	return attrs
}

func attrFloat(attrs map[string]string, key string, fallback float64) float64 {
	if v, ok := attrs[key]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func parseBBox(v string) (pageblocks.BBox, bool) {
	parts := strings.Split(v, ",")
	if len(parts) != 4 {
		return pageblocks.BBox{}, false
	}
	var nums [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return pageblocks.BBox{}, false
		}
		nums[i] = f
	}
	return pageblocks.BBox{X: nums[0], Y: nums[1], Width: nums[2], Height: nums[3]}, true
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
