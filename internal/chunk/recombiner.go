package chunk

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"codeberg.org/snonux/pagelingo/internal/provider"
)

// ErrIncompleteResults means a chunk translation is missing from the
// result set. Recombination requires every chunk; this error indicates
// an internal invariant violation upstream.
var ErrIncompleteResults = errors.New("incomplete translation results")

// Recombine concatenates translated chunk texts in original chunk-id
// order, joined by single spaces. Every chunk id from the split must be
// present exactly once or ErrIncompleteResults is returned.
func Recombine(results []provider.Result) (string, error) {
	if len(results) == 0 {
		return "", nil
	}

	ordered := make([]provider.Result, len(results))
	copy(ordered, results)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].ChunkID < ordered[j].ChunkID
	})

	parts := make([]string, 0, len(ordered))
	for i, result := range ordered {
		if result.ChunkID != i {
			return "", fmt.Errorf("%w: missing result for chunk %d", ErrIncompleteResults, i)
		}
		// Trimming each part collapses accidental doubled whitespace at
		// the join boundary.
		if text := strings.TrimSpace(result.TranslatedText); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, " "), nil
}
