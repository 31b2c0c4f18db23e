// Package translate contains the top-level translation orchestrator. It
// validates the request, splits the page text into chunks, fans the
// chunks out to the provider dispatcher with bounded parallelism, joins
// the results in original order and redistributes the translated text
// across the original fragment boundaries. This package serves as the
// main coordinator between all other components.
package translate
