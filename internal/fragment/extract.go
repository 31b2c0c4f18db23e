package fragment

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// skippedElements are elements whose text content is never visible page
// text and must not be translated.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"iframe":   true,
}

// FromHTML extracts the visible text nodes of an HTML document as an
// ordered fragment list. Whitespace-only text nodes are skipped; the
// returned fragments keep the node order of the document.
func FromHTML(r io.Reader) ([]TextFragment, error) {
	tokenizer := html.NewTokenizer(r)

	var fragments []TextFragment
	skipDepth := 0

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if err := tokenizer.Err(); err != io.EOF {
				return nil, fmt.Errorf("failed to parse HTML: %w", err)
			}
			return fragments, nil

		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if skippedElements[string(name)] {
				skipDepth++
			}

		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if skippedElements[string(name)] && skipDepth > 0 {
				skipDepth--
			}

		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			text := string(tokenizer.Text())
			if strings.TrimSpace(text) == "" {
				continue
			}
			fragments = append(fragments, New(len(fragments), text))
		}
	}
}
