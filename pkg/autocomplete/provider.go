package autocomplete

import "context"

// Provider supplies suggestions for a query. Implementations return results
// in relevance order; the controller trusts that ordering as-is. Errors are
// absorbed by the caller and degrade to zero results, so providers should
// return them rather than retry internally.
type Provider interface {
	Search(ctx context.Context, query string) ([]Suggestion, error)
}

// ProviderFunc adapts a plain function to the Provider interface.
type ProviderFunc func(ctx context.Context, query string) ([]Suggestion, error)

func (fn ProviderFunc) Search(ctx context.Context, query string) ([]Suggestion, error) {
	return fn(ctx, query)
}

// Input is the minimal surface the controller needs from its bound element.
// SetValue is a programmatic write; implementations must not re-fire change
// handling for it (the controller additionally guards against re-entry).
type Input interface {
	Value() string
	SetValue(value string)
}

// View is the suggestion panel surface. ShowRows replaces the panel content
// wholesale and makes it visible; Hide empties and hides it. Both may be
// called redundantly. Implementations must not call back into the Controller
// from either method.
type View interface {
	ShowRows(rows []Suggestion)
	Hide()
}

// NullView discards all rendering. It stands in when a caller only needs the
// controller's state machine, or when a variant is bound without a panel.
type NullView struct{}

func (NullView) ShowRows([]Suggestion) {}

func (NullView) Hide() {}
