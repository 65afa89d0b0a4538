package static

import (
	"sort"
	"strings"
)

// Search filters places by a case-insensitive substring match on the label,
// ranking prefix matches first. A non-positive limit returns nothing.
func Search(places []Place, query string, limit int) []Place {
	if limit <= 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	q := strings.ToLower(query)
	matches := make([]matchedPlace, 0, 32)
	for _, place := range places {
		lowerLabel := strings.ToLower(place.Label())
		if !strings.Contains(lowerLabel, q) {
			continue
		}
		matches = append(matches, matchedPlace{
			place:    place,
			isPrefix: strings.HasPrefix(lowerLabel, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].place.Label() < matches[j].place.Label()
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]Place, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.place)
	}
	return out
}

type matchedPlace struct {
	place    Place
	isPrefix bool
}
