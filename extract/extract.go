// Package extract implements the render-tree block extraction and
// classification engine. It walks settled document snapshots and produces
// deduplicated, typed block sequences with the geometric and stylistic
// metadata downstream reconstruction needs.
//
// The engine substitutes visual and structural heuristics for semantic tag
// information: class-soup markup from component frameworks makes tag names
// meaningless, so eligibility is decided by ancestor-chain classification,
// computed style, geometry, and text containment instead.
//
// Every rejection is a silent skip. Absence of a block is the expected
// outcome for noisy markup, not an error; the only error any pass returns
// is an EINVALID precondition violation for an unusable document.
package extract

import (
	"github.com/fwojciec/pageblocks"
)

// Default policy values.
const (
	// DefaultMinWords is the minimum word count for non-heading text
	// candidates outside tables.
	DefaultMinWords = 4

	// DefaultTableMinWords is the minimum word count for candidates inside
	// table structures, where short fragments are almost always cell noise
	// better represented by the table pass.
	DefaultTableMinWords = 20

	// DefaultWrapperRatio rejects a candidate as a non-leaf wrapper when
	// its direct child elements account for more than this share of its
	// own text.
	DefaultWrapperRatio = 0.85
)

// DefaultSkipTags returns the tags whose subtrees never contain eligible
// content: scripting, styling, embedded media, form controls, and
// interactive widgets.
func DefaultSkipTags() map[string]struct{} {
	return tagSet(
		"script", "style", "noscript", "template",
		"iframe", "object", "embed", "video", "audio", "canvas", "svg",
		"input", "textarea", "select", "option", "button", "label", "form",
		"dialog", "menu",
	)
}

// DefaultNoiseRoles returns the accessibility roles marking non-content
// landmarks.
func DefaultNoiseRoles() map[string]struct{} {
	return tagSet(
		"navigation", "banner", "contentinfo", "complementary",
		"dialog", "alertdialog", "tooltip", "status", "alert",
		"toolbar", "menu", "menubar", "search",
	)
}

func tagSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// Extractor runs extraction passes over settled document snapshots. Each
// pass is an independent, single-threaded traversal; accumulator and
// suppression state is scoped to one pass, so an Extractor is safe to reuse
// across snapshots and yields identical output for identical input.
type Extractor struct {
	skipTags      map[string]struct{}
	noiseRoles    map[string]struct{}
	minWords      int
	tableMinWords int
	wrapperRatio  float64
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithSkipTags replaces the skip-tag set.
func WithSkipTags(tags map[string]struct{}) Option {
	return func(x *Extractor) { x.skipTags = tags }
}

// WithNoiseRoles replaces the non-content landmark role set.
func WithNoiseRoles(roles map[string]struct{}) Option {
	return func(x *Extractor) { x.noiseRoles = roles }
}

// WithMinWords sets the minimum word count for non-heading candidates.
func WithMinWords(n int) Option {
	return func(x *Extractor) { x.minWords = n }
}

// WithTableMinWords sets the minimum word count for candidates inside
// table structures.
func WithTableMinWords(n int) Option {
	return func(x *Extractor) { x.tableMinWords = n }
}

// WithWrapperRatio sets the direct-child text share above which a
// candidate is rejected as a wrapper.
func WithWrapperRatio(ratio float64) Option {
	return func(x *Extractor) { x.wrapperRatio = ratio }
}

// New creates a new Extractor with default policy.
func New(opts ...Option) *Extractor {
	x := &Extractor{
		skipTags:      DefaultSkipTags(),
		noiseRoles:    DefaultNoiseRoles(),
		minWords:      DefaultMinWords,
		tableMinWords: DefaultTableMinWords,
		wrapperRatio:  DefaultWrapperRatio,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// All runs every pass over the document and concatenates the results:
// text blocks first, then lists, tables, images, and links. The passes are
// independent; callers that want only some of them should invoke the
// individual methods instead.
func (x *Extractor) All(doc *pageblocks.Document, selectors []pageblocks.Selector) ([]pageblocks.Block, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	var blocks []pageblocks.Block

	text, err := x.TextBlocks(doc, selectors)
	if err != nil {
		return nil, err
	}
	blocks = append(blocks, text...)

	for _, pass := range []func(*pageblocks.Document) ([]pageblocks.Block, error){
		x.Lists, x.Tables, x.Images, x.Links,
	} {
		more, err := pass(doc)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, more...)
	}

	return blocks, nil
}
