package align

import (
	"math"
	"strings"

	"codeberg.org/snonux/pagelingo/internal/fragment"
)

// RewriteInstruction tells the presentation layer to replace the text
// of one fragment. Fragments without an instruction stay unchanged.
type RewriteInstruction struct {
	FragmentIndex int    `json:"fragment_index"`
	NewText       string `json:"new_text"`
}

// Align maps translatedBlob back onto the original fragments. Each
// fragment receives a share of the translated words proportional to its
// original word count; the last fragment with any allocation absorbs
// all remaining words so no translated content is dropped. Fragments
// contributing zero words receive no instruction. Align is a pure
// function: identical inputs yield identical output.
func Align(fragments []fragment.TextFragment, translatedBlob string) []RewriteInstruction {
	translated := strings.Fields(translatedBlob)
	if len(translated) == 0 {
		return nil
	}

	originalTotal := 0
	for _, f := range fragments {
		originalTotal += f.WordCount()
	}
	if originalTotal == 0 {
		return nil
	}

	ratio := float64(len(translated)) / float64(originalTotal)

	// First pass: allocate word spans per fragment.
	type span struct {
		fragmentIndex int // position in the fragments slice
		start, end    int // half-open range into translated
	}
	var spans []span
	wordIndex := 0

	for i, f := range fragments {
		n := f.WordCount()
		if n == 0 || wordIndex >= len(translated) {
			continue
		}
		expected := int(math.Ceil(float64(n) * ratio))
		take := expected
		if remaining := len(translated) - wordIndex; take > remaining {
			take = remaining
		}
		if take == 0 {
			continue
		}
		spans = append(spans, span{fragmentIndex: i, start: wordIndex, end: wordIndex + take})
		wordIndex += take
	}

	if len(spans) == 0 {
		return nil
	}

	// Catch-all: the last fragment with an allocation consumes whatever
	// is left beyond the proportional distribution.
	if wordIndex < len(translated) {
		spans[len(spans)-1].end = len(translated)
	}

	// Second pass: render instructions, reattaching the original
	// trailing punctuation and surrounding whitespace per fragment.
	instructions := make([]RewriteInstruction, 0, len(spans))
	for _, s := range spans {
		f := fragments[s.fragmentIndex]
		text := strings.Join(translated[s.start:s.end], " ")

		if f.TrailingPunct != 0 && !strings.HasSuffix(text, string(f.TrailingPunct)) {
			text += string(f.TrailingPunct)
		}

		instructions = append(instructions, RewriteInstruction{
			FragmentIndex: f.Index,
			NewText:       f.LeadingWhitespace + text + f.TrailingWhitespace,
		})
	}

	return instructions
}

// Apply renders the rewritten document text: each fragment's new text
// where an instruction exists, the original text otherwise. This is
// what the CLI prints; a browser collaborator would instead apply the
// instructions to its own text nodes.
func Apply(fragments []fragment.TextFragment, instructions []RewriteInstruction) string {
	byIndex := make(map[int]string, len(instructions))
	for _, instr := range instructions {
		byIndex[instr.FragmentIndex] = instr.NewText
	}

	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if text, ok := byIndex[f.Index]; ok {
			parts = append(parts, strings.TrimSpace(text))
			continue
		}
		if f.RawText != "" {
			parts = append(parts, f.RawText)
		}
	}

	return strings.Join(parts, " ")
}
