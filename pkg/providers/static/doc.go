// Package static provides an embedded list of Canadian places and a
// network-free suggestion provider over it. It backs demos and tests, and
// serves as the fallback provider when no geocoding credential is configured.
//
// The backing data is loaded from data/ca_places.txt, one tab-separated
// "City<TAB>Province" entry per line.
package static
