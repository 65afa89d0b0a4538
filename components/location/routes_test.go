package location

import (
	"net/http"
	"testing"
)

type fakeMux struct {
	patterns []string
	handlers []http.Handler
}

func (m *fakeMux) Handle(pattern string, handler http.Handler) {
	m.patterns = append(m.patterns, pattern)
	m.handlers = append(m.handlers, handler)
}

func TestMountPath_JoinsBaseAndRoute(t *testing.T) {
	cases := []struct {
		base string
		fns  []OptionFn
		want string
	}{
		{base: "", want: "/api/locations"},
		{base: "/", want: "/api/locations"},
		{base: "/admin", want: "/admin/api/locations"},
		{base: "admin/", want: "/admin/api/locations"},
		{base: "/admin", fns: []OptionFn{WithRoutePath("lookup")}, want: "/admin/lookup"},
	}
	for _, tc := range cases {
		if got := MountPath(tc.base, tc.fns...); got != tc.want {
			t.Fatalf("MountPath(%q) = %q, want %q", tc.base, got, tc.want)
		}
	}
}

func TestRegisterRoutes_RequiresMux(t *testing.T) {
	if _, err := RegisterRoutes(nil, ""); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}

func TestRegisterRoutes_MountsHandler(t *testing.T) {
	mux := &fakeMux{}
	pattern, err := RegisterRoutes(mux, "/v1", WithGeocodeProvider(fixtureProvider()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pattern != "/v1/api/locations" {
		t.Fatalf("unexpected pattern: %q", pattern)
	}
	if len(mux.patterns) != 1 || mux.patterns[0] != pattern {
		t.Fatalf("expected handler registered at %q, got %#v", pattern, mux.patterns)
	}
	if mux.handlers[0] == nil {
		t.Fatalf("expected non-nil handler")
	}
}

func TestComponent_RegisterRoutesUsesOptions(t *testing.T) {
	comp := New(WithRoutePath("/suggest"), WithGeocodeProvider(fixtureProvider()))
	mux := &fakeMux{}
	pattern, err := comp.RegisterRoutes(mux, "/jobs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pattern != "/jobs/suggest" {
		t.Fatalf("unexpected pattern: %q", pattern)
	}
}
