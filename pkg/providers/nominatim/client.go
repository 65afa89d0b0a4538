// Package nominatim implements the raw geocoding provider variant on top of
// the OpenStreetMap Nominatim search API. No credential is required; the
// service's usage policy asks for an identifying User-Agent, which the client
// always sends.
package nominatim

import (
	"context"
	"encoding/json"
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
	defaultBaseURL   = "https://nominatim.openstreetmap.org"
	defaultLimit     = 8
	defaultUserAgent = "go-autocomplete/1.0"
)

// Client queries the Nominatim /search endpoint and maps results onto
// suggestions in the order the service ranked them.
type Client struct {
	baseURL     string
	limit       int
	countryCode string
	userAgent   string
	httpClient  *http.Client
	log         zerolog.Logger
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

// WithCountryCodes restricts results, comma-separated ISO alpha-2 codes.
func WithCountryCodes(codes string) Option {
	return func(c *Client) {
		if c == nil {
			return
		}
		c.countryCode = strings.ToLower(strings.TrimSpace(codes))
	}
}

// WithUserAgent overrides the identifying User-Agent header.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		if c == nil {
			return
		}
		if trimmed := strings.TrimSpace(agent); trimmed != "" {
			c.userAgent = trimmed
		}
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

func New(fns ...Option) *Client {
	c := &Client{
		baseURL:   defaultBaseURL,
		limit:     defaultLimit,
		userAgent: defaultUserAgent,
		log:       zerolog.Nop(),
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
	c.log = c.log.With().Str("component", "nominatim_client").Logger()
	return c
}

// Result is one raw search result; it is carried on Suggestion.Raw.
type Result struct {
	PlaceID     int64          `json:"place_id"`
	DisplayName string         `json:"display_name"`
	Class       string         `json:"class"`
	Type        string         `json:"type"`
	Address     *ResultAddress `json:"address,omitempty"`
}

type ResultAddress struct {
	City     string `json:"city"`
	Town     string `json:"town"`
	Village  string `json:"village"`
	State    string `json:"state"`
	Country  string `json:"country"`
	Postcode string `json:"postcode"`
}

func (c *Client) Search(ctx context.Context, query string) ([]autocomplete.Suggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("addressdetails", "1")
	params.Set("limit", strconv.Itoa(c.limit))
	if c.countryCode != "" {
		params.Set("countrycodes", c.countryCode)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("nominatim: create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim: search returned status %d", resp.StatusCode)
	}

	var results []Result
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("nominatim: decode response: %w", err)
	}

	c.log.Debug().
		Str("query", query).
		Int("result_count", len(results)).
		Msg("geocoding lookup complete")

	out := make([]autocomplete.Suggestion, 0, len(results))
	for _, result := range results {
		out = append(out, autocomplete.Suggestion{
			Label:   result.DisplayName,
			Address: resultAddress(result.Address),
			Raw:     result,
		})
	}
	return out, nil
}

func resultAddress(addr *ResultAddress) autocomplete.Address {
	if addr == nil {
		return autocomplete.Address{}
	}
	locality := addr.City
	if locality == "" {
		locality = addr.Town
	}
	if locality == "" {
		locality = addr.Village
	}
	return autocomplete.Address{
		Locality:   locality,
		Region:     addr.State,
		Country:    addr.Country,
		PostalCode: addr.Postcode,
	}
}
