package static

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
)

const defaultLimit = 8

// Provider serves suggestions from an in-memory place list.
type Provider struct {
	places []Place
	limit  int
	log    zerolog.Logger
}

type Option func(*Provider)

// WithPlaces replaces the embedded default list.
func WithPlaces(places []Place) Option {
	return func(p *Provider) {
		if p == nil {
			return
		}
		p.places = append([]Place{}, places...)
	}
}

// WithLimit caps results per search.
func WithLimit(limit int) Option {
	return func(p *Provider) {
		if p == nil {
			return
		}
		p.limit = limit
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(p *Provider) {
		if p == nil {
			return
		}
		p.log = logger
	}
}

// New builds a provider over the embedded default list unless WithPlaces
// overrides it.
func New(fns ...Option) (*Provider, error) {
	p := &Provider{limit: defaultLimit, log: zerolog.Nop()}
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(p)
	}
	if p.limit <= 0 {
		p.limit = defaultLimit
	}
	if p.places == nil {
		places, err := DefaultPlaces()
		if err != nil {
			return nil, err
		}
		p.places = places
	}
	return p, nil
}

func (p *Provider) Search(_ context.Context, query string) ([]autocomplete.Suggestion, error) {
	if p == nil {
		return nil, nil
	}
	matches := Search(p.places, query, p.limit)
	p.log.Debug().Str("query", query).Int("result_count", len(matches)).Msg("place lookup complete")
	if len(matches) == 0 {
		return nil, nil
	}

	out := make([]autocomplete.Suggestion, 0, len(matches))
	for _, place := range matches {
		out = append(out, autocomplete.Suggestion{
			Label: place.Label(),
			Address: autocomplete.Address{
				Locality: place.City,
				Region:   place.Region,
				Country:  "Canada",
			},
			Raw: place,
		})
	}
	return out, nil
}
