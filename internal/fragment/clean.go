package fragment

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	urlRe        = regexp.MustCompile(`http[s]?://[^\s]+`)
	emailRe      = regexp.MustCompile(`\S+@\S+\.\S+`)
	dotsRe       = regexp.MustCompile(`[.]{2,}`)
	bangsRe      = regexp.MustCompile(`[!]{2,}`)
	questionsRe  = regexp.MustCompile(`[?]{2,}`)
)

// CleanText normalizes page content before translation: collapses runs
// of whitespace, strips URLs and email addresses, and reduces repeated
// sentence punctuation to a single character.
func CleanText(text string) string {
	text = urlRe.ReplaceAllString(text, "")
	text = emailRe.ReplaceAllString(text, "")
	text = dotsRe.ReplaceAllString(text, ".")
	text = bangsRe.ReplaceAllString(text, "!")
	text = questionsRe.ReplaceAllString(text, "?")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
