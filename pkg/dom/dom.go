// Package dom is the minimal document surface the binder and controllers
// operate on. It abstracts the handful of host-page operations the component
// needs (attribute marking, value read/write, element discovery) so binding
// and controller behavior can be exercised without a real page.
package dom

// Element is a single form input on the host page.
type Element interface {
	// Attr returns the named attribute and whether it is present.
	Attr(name string) (string, bool)
	// SetAttr sets or replaces the named attribute.
	SetAttr(name, value string)
	Value() string
	SetValue(value string)
}

// Document is the binder's search root. FindAll returns elements carrying the
// given attribute in document order; Lookup resolves an element by its name
// attribute, used for sibling write-back targets.
type Document interface {
	FindAll(attr string) []Element
	Lookup(name string) (Element, bool)
}
