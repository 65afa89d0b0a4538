package location

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
	"github.com/goliatone/go-autocomplete/pkg/dom"
)

// Variant selects the provider family for a bound input. The marker
// attribute's value carries it; an empty value means VariantGeocode.
type Variant string

const (
	VariantPlaces  Variant = "places"
	VariantGeocode Variant = "geocode"
)

type GuardFunc func(r *http.Request) error

// ViewFactory builds the view a bound input renders suggestions into.
type ViewFactory func(el dom.Element) autocomplete.View

type Options struct {
	MarkerAttr string
	BoundAttr  string
	CityAttr   string
	RegionAttr string

	Delay       time.Duration
	BlurGrace   time.Duration
	Limit       int
	AccessToken string

	PlacesProvider  autocomplete.Provider
	GeocodeProvider autocomplete.Provider
	Views           ViewFactory
	Logger          zerolog.Logger

	RoutePath    string
	SearchParam  string
	LimitParam   string
	DefaultLimit int
	MaxLimit     int
	Guard        GuardFunc
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		MarkerAttr: "data-location-autocomplete",
		BoundAttr:  "data-location-bound",
		CityAttr:   "data-location-city",
		RegionAttr: "data-location-region",

		Delay:     200 * time.Millisecond,
		BlurGrace: 150 * time.Millisecond,
		Limit:     8,

		Logger: zerolog.Nop(),

		RoutePath:    "/api/locations",
		SearchParam:  "q",
		LimitParam:   "limit",
		DefaultLimit: 8,
		MaxLimit:     25,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.MarkerAttr == "" {
		opts.MarkerAttr = "data-location-autocomplete"
	}
	if opts.BoundAttr == "" {
		opts.BoundAttr = "data-location-bound"
	}
	if opts.Delay <= 0 {
		opts.Delay = 200 * time.Millisecond
	}
	if opts.BlurGrace <= 0 {
		opts.BlurGrace = 150 * time.Millisecond
	}
	if opts.Limit <= 0 {
		opts.Limit = 8
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/locations"
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 8
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 25
	}
	return opts
}

func WithMarkerAttr(attr string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MarkerAttr = attr
	}
}

func WithBoundAttr(attr string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.BoundAttr = attr
	}
}

func WithSiblingAttrs(cityAttr, regionAttr string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CityAttr = cityAttr
		o.RegionAttr = regionAttr
	}
}

func WithDelay(delay time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Delay = delay
	}
}

func WithBlurGrace(grace time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.BlurGrace = grace
	}
}

func WithLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Limit = limit
	}
}

// WithAccessToken supplies the credential for the places variant. Without it
// (and without an explicit places provider), places-marked inputs are skipped.
func WithAccessToken(token string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.AccessToken = token
	}
}

func WithPlacesProvider(provider autocomplete.Provider) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.PlacesProvider = provider
	}
}

func WithGeocodeProvider(provider autocomplete.Provider) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.GeocodeProvider = provider
	}
}

func WithViews(factory ViewFactory) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Views = factory
	}
}

func WithLogger(logger zerolog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LimitParam = name
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func clampLimit(limit int, opts Options) int {
	if limit <= 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
