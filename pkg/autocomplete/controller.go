package autocomplete

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// State describes where a controller sits in its lifecycle.
type State int

const (
	// StateIdle: panel closed, no pending timer.
	StateIdle State = iota
	// StatePending: debounce timer running.
	StatePending
	// StateSearching: a provider request is in flight under the current token.
	StateSearching
	// StateOpen: panel visible with at least one row.
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateSearching:
		return "searching"
	case StateOpen:
		return "open"
	}
	return "unknown"
}

// Controller drives one input's autocomplete lifecycle. Construct it with
// NewController and deliver events through HandleInput, Escape, Blur and
// Select. Methods are safe for concurrent use; handlers run to completion
// under an internal mutex, standing in for the single-threaded UI loop.
type Controller struct {
	input    Input
	view     View
	provider Provider
	opts     Options
	log      zerolog.Logger

	mu    sync.Mutex
	state State
	// open is true iff the panel is visible with at least one rendered row.
	// It outlives a transition back to Pending/Searching: the old rows stay
	// visible (and selectable) until the next result or an explicit close.
	open      bool
	rows      []Suggestion
	lastQuery string

	// token identifies the most recent dispatched search; responses carrying
	// an older token are dropped unconditionally.
	token uint64
	// timerGen invalidates scheduled debounce firings that Stop raced past.
	timerGen  uint64
	timer     *time.Timer
	blurGen   uint64
	blurTimer *time.Timer

	// dismissed suppresses rendering of an in-flight response after an
	// explicit escape or a blur-driven close, even on a token match.
	dismissed bool
	// writing guards against the programmatic write-back re-entering
	// HandleInput as a change event.
	writing bool
}

// NewController wires an input, a view and a provider into a controller. A
// nil view degrades to NullView.
func NewController(input Input, view View, provider Provider, fns ...OptionFn) (*Controller, error) {
	if input == nil {
		return nil, errors.New("autocomplete: missing input")
	}
	if provider == nil {
		return nil, errors.New("autocomplete: missing provider")
	}
	if view == nil {
		view = NullView{}
	}
	opts := NewOptions(fns...)
	return &Controller{
		input:    input,
		view:     view,
		provider: provider,
		opts:     opts,
		log:      opts.Logger,
		state:    StateIdle,
	}, nil
}

// State reports the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Open reports whether the suggestion panel is currently visible.
func (c *Controller) Open() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Rows returns a copy of the currently rendered suggestions.
func (c *Controller) Rows() []Suggestion {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Suggestion(nil), c.rows...)
}

// HandleInput processes a change of the input's text. An empty trimmed query
// closes the panel immediately and cancels any pending search; anything else
// (re)starts the debounce timer. New input means the field is active again,
// so a blur close still pending its grace period is cancelled.
func (c *Controller) HandleInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writing {
		return
	}
	c.cancelBlurTimerLocked()
	c.cancelTimerLocked()
	query := strings.TrimSpace(text)
	c.lastQuery = query
	if query == "" {
		c.token++ // an in-flight response for the old query is now stale
		c.closeLocked()
		return
	}
	c.dismissed = false
	c.state = StatePending
	gen := c.timerGen
	c.timer = time.AfterFunc(c.opts.Delay, func() { c.fire(gen) })
}

// Escape dismisses the panel. An in-flight search is left to resolve but its
// response is suppressed; only new input can reopen the panel.
func (c *Controller) Escape() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelTimerLocked()
	c.dismissed = true
	c.closeLocked()
}

// Blur schedules a close after the grace period. The delay leaves a
// pointer-down selection on a panel row time to land first; Select cancels
// the scheduled close.
func (c *Controller) Blur() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelBlurTimerLocked()
	gen := c.blurGen
	c.blurTimer = time.AfterFunc(c.opts.BlurGrace, func() { c.closeFromBlur(gen) })
}

// Select applies the row at index: the suggestion label is written into the
// input, configured sibling targets receive their address components, and the
// panel closes. The write-back never re-triggers a search.
func (c *Controller) Select(index int) {
	c.mu.Lock()
	c.cancelBlurTimerLocked()
	if !c.open || index < 0 || index >= len(c.rows) {
		c.mu.Unlock()
		return
	}
	chosen := c.rows[index]
	targets := c.opts.Targets
	c.writing = true
	c.mu.Unlock()

	c.input.SetValue(chosen.Label)
	for _, target := range targets {
		if target.Field == nil {
			continue
		}
		if value, ok := chosen.Address.component(target.Component); ok {
			target.Field.SetValue(value)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.writing = false
	c.lastQuery = chosen.Label
	c.cancelTimerLocked()
	c.token++
	c.closeLocked()
}

// fire runs when the debounce timer elapses: it issues the provider search
// under a freshly bumped token and applies the outcome if still current.
func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	if gen != c.timerGen {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.token++
	token := c.token
	query := c.lastQuery
	c.state = StateSearching
	timeout := c.opts.SearchTimeout
	c.mu.Unlock()

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	rows, err := c.provider.Search(ctx, query)
	if err != nil {
		c.log.Debug().Err(err).Str("query", query).Msg("suggestion search failed")
		rows = nil
	}
	c.apply(token, rows)
}

func (c *Controller) apply(token uint64, rows []Suggestion) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.token {
		return
	}
	if c.dismissed {
		if c.state == StateSearching {
			c.state = StateIdle
		}
		return
	}
	if len(rows) == 0 {
		c.closeLocked()
		return
	}
	if len(rows) > c.opts.Limit {
		rows = rows[:c.opts.Limit]
	}
	c.rows = append([]Suggestion(nil), rows...)
	c.state = StateOpen
	c.open = true
	c.view.ShowRows(append([]Suggestion(nil), c.rows...))
}

func (c *Controller) closeFromBlur(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.blurGen {
		return
	}
	c.blurTimer = nil
	c.cancelTimerLocked()
	c.dismissed = true
	c.closeLocked()
}

func (c *Controller) closeLocked() {
	c.rows = nil
	c.open = false
	c.state = StateIdle
	c.view.Hide()
}

func (c *Controller) cancelTimerLocked() {
	c.timerGen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) cancelBlurTimerLocked() {
	c.blurGen++
	if c.blurTimer != nil {
		c.blurTimer.Stop()
		c.blurTimer = nil
	}
}
