// Package chunk splits page text into provider-safe segments and
// recombines the translated segments back into one blob. Splitting
// prefers sentence boundaries, falls back to word boundaries, and never
// breaks inside a word; recombination restores the original chunk order
// regardless of translation completion order.
package chunk
