package autocomplete

import (
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultDelay         = 200 * time.Millisecond
	defaultBlurGrace     = 150 * time.Millisecond
	defaultLimit         = 8
	defaultSearchTimeout = 10 * time.Second
)

type Options struct {
	// Delay is the debounce quiescent period between the last keystroke and
	// the dispatched search.
	Delay time.Duration
	// BlurGrace is how long a blur waits before closing the panel, leaving
	// room for a pointer-down row selection to win.
	BlurGrace time.Duration
	// Limit caps the number of rendered rows. Zero or negative means the
	// default.
	Limit int
	// SearchTimeout bounds each provider call. Zero disables the timeout and
	// leaves hung requests to be superseded by the next query.
	SearchTimeout time.Duration

	Targets []Target
	Logger  zerolog.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		Delay:         defaultDelay,
		BlurGrace:     defaultBlurGrace,
		Limit:         defaultLimit,
		SearchTimeout: defaultSearchTimeout,
		Logger:        zerolog.Nop(),
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
	if opts.Delay <= 0 {
		opts.Delay = defaultDelay
	}
	if opts.BlurGrace <= 0 {
		opts.BlurGrace = defaultBlurGrace
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultLimit
	}
	if opts.SearchTimeout < 0 {
		opts.SearchTimeout = 0
	}
	if opts.Targets != nil {
		opts.Targets = append([]Target{}, opts.Targets...)
	}
	return opts
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

func WithSearchTimeout(timeout time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchTimeout = timeout
	}
}

func WithTargets(targets ...Target) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Targets = append([]Target{}, targets...)
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
