package chunk

import (
	"strings"

	"codeberg.org/snonux/pagelingo/internal/fragment"
)

// DefaultMaxChars is the default upper bound on chunk length in
// characters. It matches the limit the translation providers accept
// comfortably in one call.
const DefaultMaxChars = 1000

// Chunk is a provider-sized slice of concatenated page text.
// StartFragment and EndFragment are the indices of the first and last
// source fragment contributing words to the chunk.
type Chunk struct {
	ID            int
	Text          string
	StartFragment int
	EndFragment   int
}

// Split splits text into chunks of at most maxChars characters,
// breaking on sentence boundaries where possible and on word boundaries
// otherwise. A single word longer than maxChars becomes its own
// oversized chunk rather than being truncated. Empty input yields no
// chunks. The chunk texts are whitespace-normalized; joined back with
// single spaces they reproduce the normalized input.
func Split(text string, maxChars int) []Chunk {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []Chunk
	var current []string
	currentLen := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, Chunk{
			ID:   len(chunks),
			Text: strings.Join(current, " "),
		})
		current = nil
		currentLen = 0
	}

	add := func(piece string) {
		joined := currentLen + 1 + len(piece)
		if currentLen == 0 {
			current = append(current, piece)
			currentLen = len(piece)
		} else if joined <= maxChars {
			current = append(current, piece)
			currentLen = joined
		} else {
			flush()
			current = append(current, piece)
			currentLen = len(piece)
		}
	}

	for _, sentence := range sentences {
		if len(sentence) <= maxChars {
			add(sentence)
			continue
		}
		// Sentence alone exceeds the limit: fall back to word groups.
		for _, group := range splitWords(sentence, maxChars) {
			add(group)
		}
	}
	flush()

	return chunks
}

// SplitFragments concatenates the fragments' raw texts and splits the
// result, recording which fragment range each chunk covers.
func SplitFragments(fragments []fragment.TextFragment, maxChars int) []Chunk {
	chunks := Split(fragment.JoinRawText(fragments), maxChars)
	if len(chunks) == 0 {
		return chunks
	}

	// Map every word position in the concatenated text to the fragment
	// that owns it, then walk the chunks' word counts through that map.
	var owner []int
	for i, f := range fragments {
		for range strings.Fields(f.RawText) {
			owner = append(owner, i)
		}
	}

	pos := 0
	for i := range chunks {
		words := len(strings.Fields(chunks[i].Text))
		if words == 0 || pos >= len(owner) {
			continue
		}
		last := pos + words - 1
		if last >= len(owner) {
			last = len(owner) - 1
		}
		chunks[i].StartFragment = owner[pos]
		chunks[i].EndFragment = owner[last]
		pos += words
	}

	return chunks
}

// splitSentences splits text into whitespace-normalized sentences. A
// sentence ends at a word whose last character is '.', '!' or '?'.
func splitSentences(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var sentences []string
	var current []string

	for _, word := range words {
		current = append(current, word)
		if endsSentence(word) {
			sentences = append(sentences, strings.Join(current, " "))
			current = nil
		}
	}
	if len(current) > 0 {
		sentences = append(sentences, strings.Join(current, " "))
	}

	return sentences
}

func endsSentence(word string) bool {
	last := word[len(word)-1]
	return last == '.' || last == '!' || last == '?'
}

// splitWords greedily groups the words of an oversized sentence into
// runs of at most maxChars. A word longer than maxChars is returned as
// its own group; it is never split.
func splitWords(sentence string, maxChars int) []string {
	var groups []string
	var current []string
	currentLen := 0

	for _, word := range strings.Fields(sentence) {
		joined := currentLen + 1 + len(word)
		switch {
		case currentLen == 0:
			current = append(current, word)
			currentLen = len(word)
		case joined <= maxChars:
			current = append(current, word)
			currentLen = joined
		default:
			groups = append(groups, strings.Join(current, " "))
			current = []string{word}
			currentLen = len(word)
		}
	}
	if len(current) > 0 {
		groups = append(groups, strings.Join(current, " "))
	}

	return groups
}
