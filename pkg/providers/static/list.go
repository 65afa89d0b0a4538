package static

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

//go:embed data/ca_places.txt
var dataFS embed.FS

const defaultListPath = "data/ca_places.txt"

// Place is one entry of the embedded list.
type Place struct {
	City   string
	Region string
}

// Label is the display form written back into bound inputs.
func (p Place) Label() string {
	if p.Region == "" {
		return p.City
	}
	return p.City + ", " + p.Region
}

var (
	defaultOnce   sync.Once
	defaultPlaces []Place
	defaultErr    error
)

func DefaultPlaces() ([]Place, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultListPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		places, err := LoadPlaces(f)
		if err != nil {
			defaultErr = err
			return
		}
		defaultPlaces = places
	})

	if defaultErr != nil {
		return nil, defaultErr
	}
	return append([]Place{}, defaultPlaces...), nil
}

// LoadPlaces reads tab-separated "City<TAB>Region" lines, skipping blanks,
// comments and duplicates, and returns the entries sorted by label.
func LoadPlaces(r io.Reader) ([]Place, error) {
	if r == nil {
		return nil, fmt.Errorf("static: missing reader")
	}

	scanner := bufio.NewScanner(r)
	places := make([]Place, 0, 256)
	seen := map[string]struct{}{}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		city, region, _ := strings.Cut(line, "\t")
		place := Place{City: strings.TrimSpace(city), Region: strings.TrimSpace(region)}
		if place.City == "" {
			continue
		}
		label := place.Label()
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		places = append(places, place)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.Slice(places, func(i, j int) bool { return places[i].Label() < places[j].Label() })
	return places, nil
}
