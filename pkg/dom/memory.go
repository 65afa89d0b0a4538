package dom

// MemoryDocument is an in-memory Document for demos and tests. Like the page
// DOM it stands in for, it is owned by a single event loop and is not safe
// for concurrent mutation.
type MemoryDocument struct {
	elements []*MemoryElement
}

// NewDocument returns an empty in-memory document.
func NewDocument() *MemoryDocument {
	return &MemoryDocument{}
}

// Append adds elements to the document in order.
func (d *MemoryDocument) Append(elements ...*MemoryElement) *MemoryDocument {
	for _, el := range elements {
		if el == nil {
			continue
		}
		d.elements = append(d.elements, el)
	}
	return d
}

func (d *MemoryDocument) FindAll(attr string) []Element {
	if d == nil || attr == "" {
		return nil
	}
	var out []Element
	for _, el := range d.elements {
		if _, ok := el.Attr(attr); ok {
			out = append(out, el)
		}
	}
	return out
}

func (d *MemoryDocument) Lookup(name string) (Element, bool) {
	if d == nil || name == "" {
		return nil, false
	}
	for _, el := range d.elements {
		if got, ok := el.Attr("name"); ok && got == name {
			return el, true
		}
	}
	return nil, false
}

// MemoryElement is the in-memory Element implementation.
type MemoryElement struct {
	attrs map[string]string
	value string
}

// NewElement builds an element with the given attributes.
func NewElement(attrs map[string]string) *MemoryElement {
	el := &MemoryElement{attrs: make(map[string]string, len(attrs))}
	for name, value := range attrs {
		el.attrs[name] = value
	}
	return el
}

func (e *MemoryElement) Attr(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	value, ok := e.attrs[name]
	return value, ok
}

func (e *MemoryElement) SetAttr(name, value string) {
	if e == nil || name == "" {
		return
	}
	if e.attrs == nil {
		e.attrs = map[string]string{}
	}
	e.attrs[name] = value
}

func (e *MemoryElement) Value() string {
	if e == nil {
		return ""
	}
	return e.value
}

func (e *MemoryElement) SetValue(value string) {
	if e == nil {
		return
	}
	e.value = value
}
