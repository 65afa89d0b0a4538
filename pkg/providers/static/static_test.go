package static

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadPlaces_DedupesSortsAndIgnoresComments(t *testing.T) {
	input := strings.NewReader(`
# Comment
Toronto	ON
Halifax	NS
Toronto	ON

Barrie	ON
`)

	places, err := LoadPlaces(input)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []Place{
		{City: "Barrie", Region: "ON"},
		{City: "Halifax", Region: "NS"},
		{City: "Toronto", Region: "ON"},
	}
	if diff := cmp.Diff(want, places); diff != "" {
		t.Fatalf("unexpected places (-want +got):\n%s", diff)
	}
}

func TestDefaultPlaces_ContainsCommonEntries(t *testing.T) {
	places, err := DefaultPlaces()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(places) < 100 {
		t.Fatalf("expected a reasonably sized list, got %d", len(places))
	}

	for _, expected := range []string{"Toronto, ON", "Vancouver, BC", "Halifax, NS"} {
		if !containsLabel(places, expected) {
			t.Fatalf("expected place %q to be present", expected)
		}
	}
}

func TestSearch_CaseInsensitiveContains(t *testing.T) {
	places := []Place{
		{City: "Toronto", Region: "ON"},
		{City: "Victoria", Region: "BC"},
	}

	results := Search(places, "vIcToR", 10)
	if len(results) != 1 || results[0].Label() != "Victoria, BC" {
		t.Fatalf("unexpected results: %#v", results)
	}
}

func TestSearch_PrefixBeforeContains(t *testing.T) {
	places := []Place{
		{City: "North Bay", Region: "ON"},
		{City: "Bay Roberts", Region: "NL"},
		{City: "Baysville", Region: "ON"},
	}

	results := Search(places, "bay", 10)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d: %#v", len(results), results)
	}
	if results[0].City != "Bay Roberts" || results[1].City != "Baysville" {
		t.Fatalf("expected prefix matches first, got %#v", results)
	}
	if results[2].City != "North Bay" {
		t.Fatalf("expected contains match last, got %#v", results)
	}
}

func TestSearch_LimitAndEmptyQuery(t *testing.T) {
	places := []Place{
		{City: "Barrie", Region: "ON"},
		{City: "Brandon", Region: "MB"},
		{City: "Brooks", Region: "AB"},
	}

	if results := Search(places, "b", 2); len(results) != 2 {
		t.Fatalf("expected limit applied, got %#v", results)
	}
	if results := Search(places, "   ", 10); results != nil {
		t.Fatalf("expected nil for empty query, got %#v", results)
	}
	if results := Search(places, "b", 0); results != nil {
		t.Fatalf("expected nil for zero limit, got %#v", results)
	}
}

func TestProvider_SearchMapsSuggestions(t *testing.T) {
	provider, err := New(WithPlaces([]Place{{City: "Guelph", Region: "ON"}}))
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	got, err := provider.Search(context.Background(), "gue")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(got))
	}
	s := got[0]
	if s.Label != "Guelph, ON" || s.Address.Locality != "Guelph" || s.Address.Region != "ON" {
		t.Fatalf("unexpected suggestion: %#v", s)
	}
	if _, ok := s.Raw.(Place); !ok {
		t.Fatalf("expected raw place record, got %T", s.Raw)
	}
}

func containsLabel(places []Place, label string) bool {
	for _, place := range places {
		if place.Label() == label {
			return true
		}
	}
	return false
}
