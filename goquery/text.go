package goquery

import (
	"html"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// bulletMarkers are the leading characters that turn a paragraph into a
// list entry.
const bulletMarkers = "-•→"

// cleanText unescapes leftover entities, collapses whitespace (strings.Fields
// treats non-breaking spaces as space) and normalizes to NFC. Backup pages carry
// double-escaped entities such as "&amp;nbsp;", so one more unescape pass
// runs after the parser's.
func cleanText(s string) string {
	s = html.UnescapeString(s)
	s = strings.Join(strings.Fields(s), " ")
	return norm.NFC.String(s)
}

// textLength counts characters, not bytes.
func textLength(s string) int {
	return utf8.RuneCountInString(s)
}

// stripBullet reports whether text starts with a bullet marker and returns
// it with all leading markers and spaces removed.
func stripBullet(text string) (string, bool) {
	r, _ := utf8.DecodeRuneInString(text)
	if !strings.ContainsRune(bulletMarkers, r) {
		return text, false
	}
	return strings.TrimSpace(strings.TrimLeft(text, bulletMarkers+" ")), true
}
