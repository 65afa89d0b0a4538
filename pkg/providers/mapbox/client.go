// Package mapbox implements the places-autocomplete provider backed by the
// Mapbox forward geocoding API. It is the credentialed variant: construction
// fails without an access token, and the binder skips places-marked inputs
// when no token is configured.
package mapbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
)

const (
	defaultBaseURL = "https://api.mapbox.com"
	defaultLimit   = 8
	defaultCountry = "ca"
	defaultTypes   = "place,locality,address"
)

// Client queries the Mapbox geocoding endpoint and maps features onto
// suggestions in the order the API ranked them.
type Client struct {
	baseURL    string
	token      string
	limit      int
	country    string
	types      string
	httpClient *http.Client
	log        zerolog.Logger
}

type Option func(*Client)

func WithBaseURL(base string) Option {
	return func(c *Client) {
		if c == nil {
			return
		}
		c.baseURL = strings.TrimRight(strings.TrimSpace(base), "/")
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if c == nil || client == nil {
			return
		}
		c.httpClient = client
	}
}

func WithLimit(limit int) Option {
	return func(c *Client) {
		if c == nil {
			return
		}
		c.limit = limit
	}
}

// WithCountry restricts results to an ISO 3166 alpha-2 country code. Empty
// removes the restriction.
func WithCountry(code string) Option {
	return func(c *Client) {
		if c == nil {
			return
		}
		c.country = strings.ToLower(strings.TrimSpace(code))
	}
}

// WithTypes overrides the feature types requested from the API.
func WithTypes(types string) Option {
	return func(c *Client) {
		if c == nil {
			return
		}
		c.types = strings.TrimSpace(types)
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		if c == nil {
			return
		}
		c.log = logger
	}
}

// New creates a client for the given access token.
func New(token string, fns ...Option) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("mapbox: missing access token")
	}

	c := &Client{
		baseURL: defaultBaseURL,
		token:   strings.TrimSpace(token),
		limit:   defaultLimit,
		country: defaultCountry,
		types:   defaultTypes,
		log:     zerolog.Nop(),
	}
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(c)
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.limit <= 0 {
		c.limit = defaultLimit
	}
	if c.httpClient == nil {
		client := cleanhttp.DefaultPooledClient()
		client.Timeout = 10 * time.Second
		c.httpClient = client
	}
	c.log = c.log.With().Str("component", "mapbox_client").Logger()
	return c, nil
}

// Feature is one raw geocoding result; it is carried on Suggestion.Raw for
// callers that need more than the decomposed address.
type Feature struct {
	ID        string    `json:"id"`
	PlaceType []string  `json:"place_type"`
	Text      string    `json:"text"`
	PlaceName string    `json:"place_name"`
	Context   []Context `json:"context"`
}

type Context struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	ShortCode string `json:"short_code"`
}

type featureCollection struct {
	Features []Feature `json:"features"`
}

func (c *Client) Search(ctx context.Context, query string) ([]autocomplete.Suggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json", c.baseURL, url.PathEscape(query))
	params := url.Values{}
	params.Set("access_token", c.token)
	params.Set("autocomplete", "true")
	params.Set("limit", strconv.Itoa(c.limit))
	if c.country != "" {
		params.Set("country", c.country)
	}
	if c.types != "" {
		params.Set("types", c.types)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("mapbox: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mapbox: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mapbox: geocoding returned status %d", resp.StatusCode)
	}

	var collection featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&collection); err != nil {
		return nil, fmt.Errorf("mapbox: decode response: %w", err)
	}

	c.log.Debug().
		Str("query", query).
		Int("feature_count", len(collection.Features)).
		Msg("geocoding lookup complete")

	out := make([]autocomplete.Suggestion, 0, len(collection.Features))
	for _, feature := range collection.Features {
		out = append(out, autocomplete.Suggestion{
			Label:   feature.PlaceName,
			Address: featureAddress(feature),
			Raw:     feature,
		})
	}
	return out, nil
}

func featureAddress(feature Feature) autocomplete.Address {
	var addr autocomplete.Address
	for _, placeType := range feature.PlaceType {
		if placeType == "place" || placeType == "locality" {
			addr.Locality = feature.Text
			break
		}
	}
	for _, ctx := range feature.Context {
		switch {
		case strings.HasPrefix(ctx.ID, "place.") || strings.HasPrefix(ctx.ID, "locality."):
			if addr.Locality == "" {
				addr.Locality = ctx.Text
			}
		case strings.HasPrefix(ctx.ID, "region."):
			addr.Region = ctx.Text
		case strings.HasPrefix(ctx.ID, "country."):
			addr.Country = ctx.Text
		case strings.HasPrefix(ctx.ID, "postcode."):
			addr.PostalCode = ctx.Text
		}
	}
	return addr
}
