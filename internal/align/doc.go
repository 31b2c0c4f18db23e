// Package align redistributes a translated text blob back onto the
// original fragment boundaries using word-count-proportional allocation.
// The output is a list of rewrite instructions the presentation layer
// applies to its text nodes; the package itself never touches a DOM.
package align
