// Package autocomplete implements the interactive lifecycle of a suggestion
// input: debounced querying against a search provider, stale-response
// suppression via a monotonic request token, suggestion rendering through a
// pluggable view, and selection write-back into the bound input.
//
// A Controller owns exactly one input. All event handlers are serialized by an
// internal mutex; asynchronous provider lookups re-enter only through the
// token check, so the result of the most recent search is the only one that
// ever reaches the view, regardless of network completion order.
package autocomplete
