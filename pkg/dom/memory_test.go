package dom

import "testing"

func TestMemoryDocument_FindAllPreservesOrder(t *testing.T) {
	first := NewElement(map[string]string{"data-x": "a", "name": "first"})
	second := NewElement(map[string]string{"name": "second"})
	third := NewElement(map[string]string{"data-x": "", "name": "third"})
	doc := NewDocument().Append(first, second, third)

	found := doc.FindAll("data-x")
	if len(found) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(found))
	}
	if found[0] != first || found[1] != third {
		t.Fatalf("expected document order, got %#v", found)
	}
}

func TestMemoryDocument_LookupByName(t *testing.T) {
	el := NewElement(map[string]string{"name": "city"})
	doc := NewDocument().Append(el)

	got, ok := doc.Lookup("city")
	if !ok || got != el {
		t.Fatalf("expected lookup hit, got %v %v", got, ok)
	}
	if _, ok := doc.Lookup("missing"); ok {
		t.Fatal("expected lookup miss")
	}
}

func TestMemoryElement_AttrsAndValue(t *testing.T) {
	el := NewElement(nil)
	if _, ok := el.Attr("data-bound"); ok {
		t.Fatal("expected attribute to be absent")
	}
	el.SetAttr("data-bound", "1")
	if got, ok := el.Attr("data-bound"); !ok || got != "1" {
		t.Fatalf("unexpected attr %q %v", got, ok)
	}
	el.SetValue("Toronto, ON")
	if el.Value() != "Toronto, ON" {
		t.Fatalf("unexpected value %q", el.Value())
	}
}
