// Package location wires debounced location autocomplete onto form inputs.
// BindAll scans a document for marked inputs, builds a controller per input,
// and resolves the search provider from the marker value: "places" uses the
// credentialed Mapbox client, "geocode" (or an empty value) uses the keyless
// Nominatim client. A small net/http handler exposes the same search as a
// JSON endpoint for pages that proxy lookups through the server.
package location
