// Package pageblocks recovers clean, structured content blocks (headings,
// paragraphs, lists, tables, images, links) from fully rendered web pages
// whose markup carries no reliable semantic structure. Instead of trusting
// tag names it substitutes visual and structural heuristics: ancestor-based
// noise filtering, containment-based deduplication, list-item accumulation
// with bounding-box merging, and inline-format recovery via ancestor-chain
// inspection.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, sqlite/, goquery/). The core
// extraction engine lives in extract/ and downstream reconstruction in
// reconstruct/.
package pageblocks
