// Package html splices generated content into HTML documents at anchors
// located with the golang.org/x/net/html tokenizer. Only the region between
// the anchors changes; every other byte of the document is kept verbatim.
package html

import (
	"strings"

	"github.com/jacinteriors/sitepatch"
	"golang.org/x/net/html"
)

// Ensure Patcher implements sitepatch.Patcher at compile time.
var _ sitepatch.Patcher = (*Patcher)(nil)

// Patcher implements sitepatch.Patcher.
type Patcher struct{}

// NewPatcher creates a new Patcher.
func NewPatcher() *Patcher {
	return &Patcher{}
}

// Patch replaces everything between start and end with replacement.
// The output is doc up to start, a newline, the replacement, a blank line,
// then doc from end. Indentation in front of the end anchor is kept.
func (p *Patcher) Patch(doc string, start, end sitepatch.Anchor, replacement string) (string, error) {
	if err := sitepatch.ValidateRange(start, end); err != nil {
		return "", err
	}

	toks := tokenize(doc)

	s, ok := locate(toks, start, 0)
	if !ok {
		return "", sitepatch.Errorf(sitepatch.EANCHOR, "start anchor %s not found", start)
	}
	e, ok := locate(toks, end, s)
	if !ok {
		return "", sitepatch.Errorf(sitepatch.EANCHOR, "end anchor %s not found after start anchor", end)
	}
	e = lineIndentStart(doc, s, e)

	var b strings.Builder
	b.Grow(s + len(replacement) + len(doc) - e + 3)
	b.WriteString(doc[:s])
	b.WriteString("\n")
	b.WriteString(replacement)
	b.WriteString("\n\n")
	b.WriteString(doc[e:])
	return b.String(), nil
}

// token is a tokenizer token with its byte range in the document.
type token struct {
	typ     html.TokenType
	name    string
	classes []string
	comment string
	start   int
	end     int
}

// tokenize splits doc into tokens. Raw token lengths are contiguous, so
// offsets index directly into doc.
func tokenize(doc string) []token {
	z := html.NewTokenizer(strings.NewReader(doc))

	var toks []token
	offset := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return toks
		}
		n := len(z.Raw())
		tok := token{typ: tt, start: offset, end: offset + n}
		offset += n

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, hasAttr := z.TagName()
			tok.name = string(name)
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				if string(key) == "class" {
					tok.classes = strings.Fields(string(val))
				}
			}
		case html.CommentToken:
			tok.comment = strings.TrimSpace(string(z.Text()))
		}
		toks = append(toks, tok)
	}
}

// locate returns the byte offset of the first anchor match at or after from.
func locate(toks []token, a sitepatch.Anchor, from int) (int, bool) {
	tag := strings.ToLower(a.Tag)
	want := a.Classes()

	for i, tok := range toks {
		if tok.start < from {
			continue
		}

		if a.Marker != "" {
			if tok.typ == html.CommentToken && tok.comment == a.Marker {
				if a.Position == sitepatch.AnchorBefore {
					return tok.start, true
				}
				return tok.end, true
			}
			continue
		}

		if tok.typ != html.StartTagToken && tok.typ != html.SelfClosingTagToken {
			continue
		}
		if tok.name != tag || !hasClasses(tok.classes, want) {
			continue
		}
		if a.Position == sitepatch.AnchorBefore {
			return tok.start, true
		}
		if tok.typ == html.SelfClosingTagToken || voidElements[tok.name] {
			return tok.end, true
		}
		return closeOffset(toks, i)
	}
	return 0, false
}

// closeOffset returns the offset past the end tag matching toks[i].
func closeOffset(toks []token, i int) (int, bool) {
	name := toks[i].name
	depth := 1
	for _, tok := range toks[i+1:] {
		if tok.name != name {
			continue
		}
		switch tok.typ {
		case html.StartTagToken:
			depth++
		case html.EndTagToken:
			depth--
			if depth == 0 {
				return tok.end, true
			}
		}
	}
	return 0, false
}

func hasClasses(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// lineIndentStart moves e back over spaces and tabs when they are all that
// precede it on its line, never past floor.
func lineIndentStart(doc string, floor, e int) int {
	i := e
	for i > floor && (doc[i-1] == ' ' || doc[i-1] == '\t') {
		i--
	}
	if i > floor && doc[i-1] == '\n' {
		return i
	}
	return e
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}
