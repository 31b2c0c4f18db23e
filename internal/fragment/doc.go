// Package fragment captures the atomic units of source text that a
// translation must preserve. Each fragment corresponds to one text node
// of the original document; fragment order defines the order in which
// translated words are redistributed back onto the page.
package fragment
