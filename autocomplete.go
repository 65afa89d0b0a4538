// Package autocomplete re-exports the core autocomplete API from the root
// module so callers can depend on a single import for the common path: build
// a provider, bind a controller, feed it input events.
package autocomplete

import (
	"time"

	"github.com/rs/zerolog"

	core "github.com/goliatone/go-autocomplete/pkg/autocomplete"
)

// Suggestion is one ranked search result.
type Suggestion = core.Suggestion

// Address carries the structured components of a suggestion.
type Address = core.Address

// Component names one address component for write-back targeting.
type Component = core.Component

// Target pairs a form field with the address component written into it.
type Target = core.Target

// Provider executes a location search.
type Provider = core.Provider

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc = core.ProviderFunc

// Input is the minimal form-field surface the controller drives.
type Input = core.Input

// View receives suggestion rows to render.
type View = core.View

// Controller owns the debounce, sequencing, and selection state for one input.
type Controller = core.Controller

// Options configures a controller.
type Options = core.Options

// OptionFn mutates Options.
type OptionFn = core.OptionFn

const (
	ComponentLocality   = core.ComponentLocality
	ComponentRegion     = core.ComponentRegion
	ComponentCountry    = core.ComponentCountry
	ComponentPostalCode = core.ComponentPostalCode
)

// NewController builds a controller for input backed by provider. A nil view
// renders nowhere but keeps the state machine observable through accessors.
func NewController(input Input, view View, provider Provider, fns ...OptionFn) (*Controller, error) {
	return core.NewController(input, view, provider, fns...)
}

func WithDelay(delay time.Duration) OptionFn { return core.WithDelay(delay) }

func WithBlurGrace(grace time.Duration) OptionFn { return core.WithBlurGrace(grace) }

func WithLimit(limit int) OptionFn { return core.WithLimit(limit) }

func WithSearchTimeout(timeout time.Duration) OptionFn { return core.WithSearchTimeout(timeout) }

func WithTargets(targets ...Target) OptionFn { return core.WithTargets(targets...) }

func WithLogger(logger zerolog.Logger) OptionFn { return core.WithLogger(logger) }
