package autocomplete

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

const testDelay = 30 * time.Millisecond

type fakeInput struct {
	mu     sync.Mutex
	value  string
	writes []string

	// refire simulates a platform where a programmatic value assignment
	// re-dispatches the change event into the controller.
	refire *Controller
}

func (f *fakeInput) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

func (f *fakeInput) SetValue(value string) {
	f.mu.Lock()
	f.value = value
	f.writes = append(f.writes, value)
	ctrl := f.refire
	f.mu.Unlock()
	if ctrl != nil {
		ctrl.HandleInput(value)
	}
}

type fakeView struct {
	mu    sync.Mutex
	rows  []Suggestion
	shows int
	hides int
}

func (v *fakeView) ShowRows(rows []Suggestion) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rows = append([]Suggestion(nil), rows...)
	v.shows++
}

func (v *fakeView) Hide() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rows = nil
	v.hides++
}

func (v *fakeView) snapshot() (rows []Suggestion, shows int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]Suggestion(nil), v.rows...), v.shows
}

type fakeProvider struct {
	mu      sync.Mutex
	queries []string
	rows    []Suggestion
	err     error
}

func (p *fakeProvider) Search(_ context.Context, query string) ([]Suggestion, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queries = append(p.queries, query)
	return append([]Suggestion(nil), p.rows...), p.err
}

func (p *fakeProvider) calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.queries...)
}

type gatedResult struct {
	rows []Suggestion
	err  error
}

type gatedCall struct {
	query   string
	release chan gatedResult
}

// gatedProvider blocks every Search until the test releases it, making
// response-ordering scenarios deterministic.
type gatedProvider struct {
	mu    sync.Mutex
	calls []*gatedCall
}

func (p *gatedProvider) Search(_ context.Context, query string) ([]Suggestion, error) {
	call := &gatedCall{query: query, release: make(chan gatedResult, 1)}
	p.mu.Lock()
	p.calls = append(p.calls, call)
	p.mu.Unlock()
	result := <-call.release
	return result.rows, result.err
}

func (p *gatedProvider) waitCall(t *testing.T, n int) *gatedCall {
	t.Helper()
	var call *gatedCall
	waitFor(t, "provider call", func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		if len(p.calls) < n {
			return false
		}
		call = p.calls[n-1]
		return true
	})
	return call
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func suggestions(labels ...string) []Suggestion {
	out := make([]Suggestion, 0, len(labels))
	for _, label := range labels {
		out = append(out, Suggestion{Label: label})
	}
	return out
}

func TestNewController_Validation(t *testing.T) {
	if _, err := NewController(nil, nil, &fakeProvider{}); err == nil {
		t.Fatal("expected error for missing input")
	}
	if _, err := NewController(&fakeInput{}, nil, nil); err == nil {
		t.Fatal("expected error for missing provider")
	}
	ctrl, err := NewController(&fakeInput{}, nil, &fakeProvider{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ctrl.State() != StateIdle {
		t.Fatalf("expected idle state, got %v", ctrl.State())
	}
}

func TestController_DebounceCoalescesBurst(t *testing.T) {
	provider := &fakeProvider{rows: suggestions("123 Main St, City A")}
	view := &fakeView{}
	ctrl, err := NewController(&fakeInput{}, view, provider, WithDelay(testDelay))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	ctrl.HandleInput("1")
	ctrl.HandleInput("12")
	ctrl.HandleInput("123 Main")

	waitFor(t, "search dispatch", func() bool { return len(provider.calls()) == 1 })
	if got := provider.calls(); got[0] != "123 Main" {
		t.Fatalf("expected final burst query, got %q", got[0])
	}

	time.Sleep(4 * testDelay)
	if got := provider.calls(); len(got) != 1 {
		t.Fatalf("expected exactly one search, got %d: %#v", len(got), got)
	}
}

func TestController_StaleResponseDropped(t *testing.T) {
	provider := &gatedProvider{}
	view := &fakeView{}
	ctrl, err := NewController(&fakeInput{}, view, provider, WithDelay(testDelay))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	ctrl.HandleInput("old query")
	first := provider.waitCall(t, 1)

	ctrl.HandleInput("new query")
	second := provider.waitCall(t, 2)

	// B resolves before A: B's rows must render.
	second.release <- gatedResult{rows: suggestions("New Town, ON")}
	waitFor(t, "panel open", ctrl.Open)

	// A resolves late: its rows must be discarded unconditionally.
	first.release <- gatedResult{rows: suggestions("Old Town, BC")}
	time.Sleep(4 * testDelay)

	rows, shows := view.snapshot()
	if shows != 1 {
		t.Fatalf("expected a single render, got %d", shows)
	}
	if len(rows) != 1 || rows[0].Label != "New Town, ON" {
		t.Fatalf("expected newest results, got %#v", rows)
	}
}

func TestController_EmptyQueryClosesAndCancels(t *testing.T) {
	provider := &fakeProvider{rows: suggestions("Toronto, ON")}
	view := &fakeView{}
	ctrl, err := NewController(&fakeInput{}, view, provider, WithDelay(testDelay))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	ctrl.HandleInput("Toronto")
	ctrl.HandleInput("   ")

	if got := ctrl.State(); got != StateIdle {
		t.Fatalf("expected idle after clearing, got %v", got)
	}
	time.Sleep(4 * testDelay)
	if got := provider.calls(); len(got) != 0 {
		t.Fatalf("expected no search after clearing, got %#v", got)
	}
}

func TestController_SelectionWritesBackWithoutRetrigger(t *testing.T) {
	rows := []Suggestion{
		{Label: "123 Main St, City A", Address: Address{Locality: "City A", Region: "ON"}},
		{Label: "123 Main Ave, City B", Address: Address{Locality: "City B", Region: "BC"}},
	}
	provider := &fakeProvider{rows: rows}
	view := &fakeView{}
	input := &fakeInput{}
	city := &fakeInput{}
	region := &fakeInput{}
	ctrl, err := NewController(input, view, provider,
		WithDelay(testDelay),
		WithTargets(
			Target{Field: city, Component: ComponentLocality},
			Target{Field: region, Component: ComponentRegion},
		),
	)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	input.refire = ctrl

	ctrl.HandleInput("123 Main")
	waitFor(t, "panel open", ctrl.Open)

	got, _ := view.snapshot()
	if len(got) != 2 || got[0].Label != rows[0].Label || got[1].Label != rows[1].Label {
		t.Fatalf("expected provider order preserved, got %#v", got)
	}

	ctrl.Select(1)

	if input.Value() != "123 Main Ave, City B" {
		t.Fatalf("unexpected input value %q", input.Value())
	}
	if city.Value() != "City B" || region.Value() != "BC" {
		t.Fatalf("unexpected sibling values city=%q region=%q", city.Value(), region.Value())
	}
	if ctrl.Open() {
		t.Fatal("expected panel closed after selection")
	}

	// The write-back re-fired a change event; it must not dispatch a search.
	time.Sleep(4 * testDelay)
	if got := provider.calls(); len(got) != 1 {
		t.Fatalf("expected selection not to re-trigger search, got %#v", got)
	}
}

func TestController_MissingComponentLeavesFieldUntouched(t *testing.T) {
	provider := &fakeProvider{rows: []Suggestion{
		{Label: "Somewhere", Address: Address{Locality: "Somewhere"}},
	}}
	region := &fakeInput{value: "keep me"}
	ctrl, err := NewController(&fakeInput{}, nil, provider,
		WithDelay(testDelay),
		WithTargets(Target{Field: region, Component: ComponentRegion}),
	)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	ctrl.HandleInput("Some")
	waitFor(t, "panel open", ctrl.Open)
	ctrl.Select(0)

	if region.Value() != "keep me" {
		t.Fatalf("expected region untouched, got %q", region.Value())
	}
}

func TestController_EmptyResultsStayIdle(t *testing.T) {
	provider := &fakeProvider{}
	view := &fakeView{}
	ctrl, err := NewController(&fakeInput{}, view, provider, WithDelay(testDelay))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	ctrl.HandleInput("zzzzz")
	waitFor(t, "search dispatch", func() bool { return len(provider.calls()) == 1 })
	waitFor(t, "return to idle", func() bool { return ctrl.State() == StateIdle })

	if _, shows := view.snapshot(); shows != 0 {
		t.Fatal("expected panel to stay hidden for empty results")
	}
}

func TestController_ProviderErrorClosesQuietly(t *testing.T) {
	provider := &fakeProvider{err: errors.New("connection refused")}
	view := &fakeView{}
	ctrl, err := NewController(&fakeInput{}, view, provider, WithDelay(testDelay))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	ctrl.HandleInput("Main")
	waitFor(t, "search dispatch", func() bool { return len(provider.calls()) == 1 })
	waitFor(t, "return to idle", func() bool { return ctrl.State() == StateIdle })

	if _, shows := view.snapshot(); shows != 0 {
		t.Fatal("expected panel hidden after provider failure")
	}
}

func TestController_EscapeSuppressesInFlightResponse(t *testing.T) {
	provider := &gatedProvider{}
	view := &fakeView{}
	ctrl, err := NewController(&fakeInput{}, view, provider, WithDelay(testDelay))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	ctrl.HandleInput("Halifax")
	call := provider.waitCall(t, 1)

	ctrl.Escape()
	call.release <- gatedResult{rows: suggestions("Halifax, NS")}
	time.Sleep(4 * testDelay)

	if _, shows := view.snapshot(); shows != 0 {
		t.Fatal("expected dismissed panel not to resurrect")
	}
	if got := ctrl.State(); got != StateIdle {
		t.Fatalf("expected idle after escape, got %v", got)
	}
}

func TestController_BlurGraceYieldsToSelection(t *testing.T) {
	provider := &fakeProvider{rows: suggestions("Winnipeg, MB")}
	view := &fakeView{}
	input := &fakeInput{}
	ctrl, err := NewController(input, view, provider,
		WithDelay(testDelay), WithBlurGrace(100*time.Millisecond))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	ctrl.HandleInput("Winn")
	waitFor(t, "panel open", ctrl.Open)

	// Pointer-down lands inside the blur grace window; the selection wins.
	ctrl.Blur()
	time.Sleep(50 * time.Millisecond)
	ctrl.Select(0)

	if input.Value() != "Winnipeg, MB" {
		t.Fatalf("expected selection honored before blur close, got %q", input.Value())
	}
	if ctrl.Open() {
		t.Fatal("expected panel closed")
	}
}

func TestController_InputDuringBlurGraceStillSearches(t *testing.T) {
	provider := &fakeProvider{rows: suggestions("Calgary, AB")}
	view := &fakeView{}
	ctrl, err := NewController(&fakeInput{}, view, provider,
		WithDelay(testDelay), WithBlurGrace(80*time.Millisecond))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	// A keystroke inside the grace window reactivates the field: the pending
	// blur close must not cancel the newly scheduled search or suppress its
	// response.
	ctrl.Blur()
	time.Sleep(20 * time.Millisecond)
	ctrl.HandleInput("Calg")

	waitFor(t, "panel open", ctrl.Open)

	// Past the original grace deadline the panel must still be open.
	time.Sleep(150 * time.Millisecond)
	if !ctrl.Open() {
		t.Fatal("expected panel to survive the stale blur deadline")
	}
	if got := provider.calls(); len(got) != 1 || got[0] != "Calg" {
		t.Fatalf("expected one search for the new input, got %#v", got)
	}
}

func TestController_BlurClosesAfterGrace(t *testing.T) {
	provider := &fakeProvider{rows: suggestions("Calgary, AB")}
	view := &fakeView{}
	ctrl, err := NewController(&fakeInput{}, view, provider,
		WithDelay(testDelay), WithBlurGrace(20*time.Millisecond))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	ctrl.HandleInput("Cal")
	waitFor(t, "panel open", ctrl.Open)

	ctrl.Blur()
	waitFor(t, "blur close", func() bool { return ctrl.State() == StateIdle })

	if rows, _ := view.snapshot(); len(rows) != 0 {
		t.Fatalf("expected cleared panel after blur, got %#v", rows)
	}
}

func TestController_LimitClampsRenderedRows(t *testing.T) {
	provider := &fakeProvider{rows: suggestions("a", "b", "c", "d", "e")}
	view := &fakeView{}
	ctrl, err := NewController(&fakeInput{}, view, provider,
		WithDelay(testDelay), WithLimit(3))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	ctrl.HandleInput("query")
	waitFor(t, "panel open", ctrl.Open)

	rows, _ := view.snapshot()
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
}
