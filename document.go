package pageblocks

import (
	"context"
	"strings"
)

// Style holds the resolved computed style of an element at snapshot time.
type Style struct {
	Display    string  `json:"display"`
	Visibility string  `json:"visibility"`
	Opacity    float64 `json:"opacity"`
	FontSize   float64 `json:"fontSize"`
	FontWeight float64 `json:"fontWeight"`
	FontStyle  string  `json:"fontStyle"`
	FontFamily string  `json:"fontFamily"`
}

// Node is one node in an element's child list. Exactly one of Element or
// Text is meaningful: Element is set for element nodes, otherwise the node
// is a text node carrying Text. The two-field struct (rather than an
// interface) keeps snapshots directly JSON-decodable.
type Node struct {
	Element *Element `json:"el,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// Element is one element in a settled document snapshot. Geometry and style
// are resolved against current layout by the host that produced the
// snapshot; this package never computes layout itself.
type Element struct {
	Tag        string            `json:"tag"`  // lowercase tag name
	Role       string            `json:"role"` // accessibility role, "" if none
	AriaHidden bool              `json:"ariaHidden,omitempty"`
	Attrs      map[string]string `json:"attrs,omitempty"`
	Style      Style             `json:"style"`
	BBox       BBox              `json:"bbox"`
	Nodes      []Node            `json:"nodes,omitempty"`

	parent *Element
}

// Parent returns the element's parent, or nil for the document root.
func (e *Element) Parent() *Element {
	return e.parent
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

// Text returns the element's rendered text content: the concatenation of all
// descendant text nodes in document order.
func (e *Element) Text() string {
	var sb strings.Builder
	e.writeText(&sb)
	return sb.String()
}

func (e *Element) writeText(sb *strings.Builder) {
	for _, n := range e.Nodes {
		if n.Element != nil {
			n.Element.writeText(sb)
		} else {
			sb.WriteString(n.Text)
		}
	}
}

// Children returns the element's direct child elements in document order.
func (e *Element) Children() []*Element {
	var children []*Element
	for _, n := range e.Nodes {
		if n.Element != nil {
			children = append(children, n.Element)
		}
	}
	return children
}

// Walk visits e and every descendant element in document order (depth
// first). Returning false from fn stops the walk.
func (e *Element) Walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, n := range e.Nodes {
		if n.Element != nil {
			if !n.Element.Walk(fn) {
				return false
			}
		}
	}
	return true
}

// Document is a settled, rendered document snapshot. It is an immutable
// value: extraction passes read it but never modify it, so repeated passes
// over one Document are independent and deterministic.
type Document struct {
	URL   string   `json:"url"`
	Title string   `json:"title,omitempty"`
	Root  *Element `json:"root"`
}

// NewDocument builds a Document around the given root element and links
// parent pointers throughout the tree. Hosts must call this (or Connect)
// after assembling or decoding an element tree.
func NewDocument(url, title string, root *Element) *Document {
	d := &Document{URL: url, Title: title, Root: root}
	d.Connect()
	return d
}

// Connect (re)links parent pointers for the whole tree. Safe to call on a
// freshly decoded snapshot.
func (d *Document) Connect() {
	if d.Root == nil {
		return
	}
	connect(d.Root, nil)
}

func connect(e *Element, parent *Element) {
	e.parent = parent
	for _, n := range e.Nodes {
		if n.Element != nil {
			connect(n.Element, e)
		}
	}
}

// Validate returns an error if the document cannot be used as an extraction
// source. A missing root is the sole fatal precondition: every other defect
// in a snapshot degrades to silently skipped candidates.
func (d *Document) Validate() error {
	if d.Root == nil {
		return Errorf(EINVALID, "document has no root element")
	}
	return nil
}

// Elements returns every element matching the predicate, in document order.
func (d *Document) Elements(match func(*Element) bool) []*Element {
	if d.Root == nil {
		return nil
	}
	var out []*Element
	d.Root.Walk(func(e *Element) bool {
		if match(e) {
			out = append(out, e)
		}
		return true
	})
	return out
}

// Snapshotter captures settled document snapshots from rendered pages.
// Implementations drive a rendering host (such as a headless browser) and
// must only return once layout-affecting mutation has finished.
type Snapshotter interface {
	// Snapshot navigates to the URL, waits for the page to settle, and
	// returns a snapshot of the rendered document.
	// The context controls timeout and cancellation.
	Snapshot(ctx context.Context, url string) (*Document, error)

	// Close releases rendering host resources.
	// Must be called when the Snapshotter is no longer needed.
	Close() error
}

// URLSource discovers page URLs from a site.
// Implementations hide the complexity of sitemap vs recursive discovery.
type URLSource interface {
	Discover(ctx context.Context, sourceURL string) ([]string, error)
}
