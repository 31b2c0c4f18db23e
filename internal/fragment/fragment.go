package fragment

import (
	"strings"
)

// trailingPunctuation lists the sentence-ending characters that are
// detected on a fragment and reattached after translation.
const trailingPunctuation = ".!?,:;"

// TextFragment is one atomic span of original text. It is immutable once
// captured; Index defines the redistribution order.
type TextFragment struct {
	Index              int
	RawText            string
	LeadingWhitespace  string
	TrailingWhitespace string
	// TrailingPunct is the sentence-ending character of RawText, or 0
	// when the fragment does not end in punctuation.
	TrailingPunct byte
}

// WordCount returns the number of whitespace-delimited words in the
// fragment's raw text.
func (f TextFragment) WordCount() int {
	return len(strings.Fields(f.RawText))
}

// New captures a single fragment from raw text. Leading and trailing
// whitespace are split off into their own fields so they can be restored
// verbatim around the rewritten text.
func New(index int, raw string) TextFragment {
	trimmed := strings.TrimLeft(raw, " \t\n\r")
	leading := raw[:len(raw)-len(trimmed)]

	core := strings.TrimRight(trimmed, " \t\n\r")
	trailing := trimmed[len(core):]

	f := TextFragment{
		Index:              index,
		RawText:            core,
		LeadingWhitespace:  leading,
		TrailingWhitespace: trailing,
	}

	if len(core) > 0 && strings.IndexByte(trailingPunctuation, core[len(core)-1]) >= 0 {
		f.TrailingPunct = core[len(core)-1]
	}

	return f
}

// Capture builds an ordered fragment list from raw text spans, e.g. the
// text nodes delivered by a content-extraction collaborator.
func Capture(texts []string) []TextFragment {
	if len(texts) == 0 {
		return nil
	}

	fragments := make([]TextFragment, 0, len(texts))
	for i, text := range texts {
		fragments = append(fragments, New(i, text))
	}
	return fragments
}

// Single treats an entire content string as one fragment. Used when the
// caller does not supply fragment boundaries.
func Single(content string) []TextFragment {
	return []TextFragment{New(0, content)}
}

// JoinRawText concatenates the raw texts of all fragments with single
// spaces. This is the source text handed to the chunk splitter.
func JoinRawText(fragments []TextFragment) string {
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if f.RawText != "" {
			parts = append(parts, f.RawText)
		}
	}
	return strings.Join(parts, " ")
}
