package location

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
	"github.com/goliatone/go-autocomplete/pkg/dom"
	"github.com/goliatone/go-autocomplete/pkg/providers/mapbox"
	"github.com/goliatone/go-autocomplete/pkg/providers/nominatim"
)

// Binding holds the controllers produced by a BindAll pass.
type Binding struct {
	controllers []*autocomplete.Controller
	byElement   map[dom.Element]*autocomplete.Controller
}

// Controllers returns the bound controllers in document order.
func (b *Binding) Controllers() []*autocomplete.Controller {
	if b == nil {
		return nil
	}
	return append([]*autocomplete.Controller{}, b.controllers...)
}

// Controller returns the controller bound to el, if any.
func (b *Binding) Controller(el dom.Element) (*autocomplete.Controller, bool) {
	if b == nil || el == nil {
		return nil, false
	}
	ctrl, ok := b.byElement[el]
	return ctrl, ok
}

func (b *Binding) Len() int {
	if b == nil {
		return 0
	}
	return len(b.controllers)
}

// BindAll scans doc for inputs carrying the marker attribute and attaches a
// controller to each. Already-bound inputs are skipped, so repeated passes
// over the same document are safe. Places-variant inputs without a credential
// are skipped silently. Per-element failures are aggregated and do not stop
// the pass; the returned Binding covers every input that did bind.
func BindAll(doc dom.Document, fns ...OptionFn) (*Binding, error) {
	if doc == nil {
		return nil, fmt.Errorf("location: missing document")
	}
	opts := NewOptions(fns...)
	log := opts.Logger.With().Str("component", "location_binder").Logger()

	binding := &Binding{byElement: map[dom.Element]*autocomplete.Controller{}}
	var errs *multierror.Error

	for _, el := range doc.FindAll(opts.MarkerAttr) {
		if el == nil {
			continue
		}
		if _, bound := el.Attr(opts.BoundAttr); bound {
			continue
		}

		variant, err := elementVariant(el, opts.MarkerAttr)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}

		provider, err := opts.providerFor(variant)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		if provider == nil {
			log.Debug().Str("variant", string(variant)).Msg("skipping input without credential")
			continue
		}

		var view autocomplete.View
		if opts.Views != nil {
			view = opts.Views(el)
		}

		ctrl, err := autocomplete.NewController(el, view, provider,
			autocomplete.WithDelay(opts.Delay),
			autocomplete.WithBlurGrace(opts.BlurGrace),
			autocomplete.WithLimit(opts.Limit),
			autocomplete.WithTargets(siblingTargets(doc, el, opts)...),
			autocomplete.WithLogger(opts.Logger),
		)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("location: bind input: %w", err))
			continue
		}

		el.SetAttr(opts.BoundAttr, "true")
		binding.controllers = append(binding.controllers, ctrl)
		binding.byElement[el] = ctrl
	}

	log.Debug().Int("bound", binding.Len()).Msg("bind pass complete")
	return binding, errs.ErrorOrNil()
}

func elementVariant(el dom.Element, markerAttr string) (Variant, error) {
	raw, _ := el.Attr(markerAttr)
	switch Variant(strings.TrimSpace(raw)) {
	case VariantPlaces:
		return VariantPlaces, nil
	case VariantGeocode, "":
		return VariantGeocode, nil
	default:
		return "", fmt.Errorf("location: unknown variant %q", raw)
	}
}

// providerFor resolves the search provider for a variant. A nil provider with
// a nil error means the input should be skipped.
func (o Options) providerFor(variant Variant) (autocomplete.Provider, error) {
	switch variant {
	case VariantPlaces:
		if o.PlacesProvider != nil {
			return o.PlacesProvider, nil
		}
		if strings.TrimSpace(o.AccessToken) == "" {
			return nil, nil
		}
		return mapbox.New(o.AccessToken,
			mapbox.WithLimit(o.Limit),
			mapbox.WithLogger(o.Logger),
		)
	case VariantGeocode:
		if o.GeocodeProvider != nil {
			return o.GeocodeProvider, nil
		}
		return nominatim.New(
			nominatim.WithLimit(o.Limit),
			nominatim.WithLogger(o.Logger),
		), nil
	default:
		return nil, fmt.Errorf("location: unknown variant %q", variant)
	}
}

// siblingTargets resolves the city/region write-back fields named by the
// input's sibling attributes. Names that do not resolve are skipped.
func siblingTargets(doc dom.Document, el dom.Element, opts Options) []autocomplete.Target {
	var targets []autocomplete.Target
	if name, ok := el.Attr(opts.CityAttr); ok {
		if field, found := doc.Lookup(strings.TrimSpace(name)); found {
			targets = append(targets, autocomplete.Target{
				Field:     field,
				Component: autocomplete.ComponentLocality,
			})
		}
	}
	if name, ok := el.Attr(opts.RegionAttr); ok {
		if field, found := doc.Lookup(strings.TrimSpace(name)); found {
			targets = append(targets, autocomplete.Target{
				Field:     field,
				Component: autocomplete.ComponentRegion,
			})
		}
	}
	return targets
}
