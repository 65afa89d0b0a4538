package location

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Row is one suggestion as the endpoint serializes it.
type Row struct {
	Label  string `json:"label"`
	City   string `json:"city"`
	Region string `json:"region"`
}

type rowsResponse struct {
	Data []Row `json:"data"`
}

// Handler builds a net/http handler with default options plus any overrides.
// It is an alias of NewHandler to match the recommended component API surface.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a net/http handler from a pre-constructed Options
// value. Callers are expected to pass an Options value produced by NewOptions
// (or equivalent) so defaults/clamps are applied.
//
// The handler proxies lookups through the server-side provider: the places
// provider when one is configured (explicitly or via access token), otherwise
// the geocode provider. Provider failures serialize as an empty data array.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	log := opts.Logger.With().Str("component", "location_handler").Logger()

	provider, err := opts.serverProvider()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if guardErr := opts.Guard(r); guardErr != nil {
				writeGuardError(w, guardErr)
				return
			}
		}

		if err != nil || provider == nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		query := strings.TrimSpace(r.URL.Query().Get(opts.SearchParam))
		limit := clampLimit(parseInt(r.URL.Query().Get(opts.LimitParam)), opts)

		rows := []Row{}
		if query != "" && limit > 0 {
			results, searchErr := provider.Search(r.Context(), query)
			if searchErr != nil {
				log.Debug().Err(searchErr).Str("query", query).Msg("provider lookup failed")
			}
			if len(results) > limit {
				results = results[:limit]
			}
			for _, s := range results {
				rows = append(rows, Row{
					Label:  s.Label,
					City:   s.Address.Locality,
					Region: s.Address.Region,
				})
			}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}

		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(true)
		_ = enc.Encode(rowsResponse{Data: rows})
	})
}

// serverProvider resolves the provider the JSON endpoint queries. The places
// family wins when configured; otherwise geocode, which never needs a
// credential.
func (o Options) serverProvider() (autocomplete.Provider, error) {
	if o.PlacesProvider != nil || strings.TrimSpace(o.AccessToken) != "" {
		return o.providerFor(VariantPlaces)
	}
	return o.providerFor(VariantGeocode)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
