package location

import (
	"net/http"

	"github.com/goliatone/go-autocomplete/pkg/dom"
)

// Component is a small, extraction-friendly wrapper around the binder, the
// suggestions handler, and routing helpers, sharing one configuration.
type Component struct {
	opts Options
}

// New constructs a new component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	opts := NewOptions(fns...)
	return &Component{opts: opts}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// BindAll attaches controllers to every marked input in doc.
func (c *Component) BindAll(doc dom.Document) (*Binding, error) {
	if c == nil {
		return BindAll(doc)
	}
	return BindAll(doc, func(o *Options) { *o = c.opts })
}

// Handler returns a net/http handler for location queries.
func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler()
	}
	return HandlerWithOptions(c.opts)
}

// RegisterRoutes registers the component handler under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	return RegisterRoutesWithOptions(mux, basePath, c.opts)
}
