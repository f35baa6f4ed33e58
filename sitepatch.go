// Package sitepatch regenerates content sections of a static website from
// legacy page backups. It extracts headings, paragraphs and lists from a
// backup page, renders them as normalized section blocks and splices the
// result between two anchors of a target page.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, html/, ahocorasick/).
package sitepatch
