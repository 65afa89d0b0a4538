package autocomplete

// Address carries the structured components a provider may return alongside a
// suggestion label. Empty fields mean the provider did not resolve that
// component.
type Address struct {
	Locality   string
	Region     string
	Country    string
	PostalCode string
}

// Suggestion is one candidate result for the current query. Label is the
// human-readable text shown in the panel and written back on selection; Raw
// preserves the provider-specific record for callers that need more than the
// decomposed address.
type Suggestion struct {
	Label   string
	Address Address
	Raw     any
}

// Component names one structured address component for sibling write-back.
type Component string

const (
	ComponentLocality   Component = "locality"
	ComponentRegion     Component = "region"
	ComponentCountry    Component = "country"
	ComponentPostalCode Component = "postal_code"
)

// Target routes one address component of a selected suggestion into a sibling
// field. Fields whose component the provider did not return are left
// untouched.
type Target struct {
	Field     Input
	Component Component
}

func (a Address) component(kind Component) (string, bool) {
	var value string
	switch kind {
	case ComponentLocality:
		value = a.Locality
	case ComponentRegion:
		value = a.Region
	case ComponentCountry:
		value = a.Country
	case ComponentPostalCode:
		value = a.PostalCode
	}
	if value == "" {
		return "", false
	}
	return value, true
}
