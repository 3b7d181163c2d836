package catalog

import (
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestions caps the number of keys returned by Suggest.
const maxSuggestions = 3

// Suggest returns the platform keys closest to an unknown key, nearest first.
// Ties keep catalog order. A key that differs only in case is always the
// first suggestion.
func (c *Catalog) Suggest(key string) []string {
	if c == nil || key == "" {
		return nil
	}

	type candidate struct {
		key      string
		distance int
	}

	needle := strings.ToLower(key)
	limit := max(2, len(needle)/3)

	var candidates []candidate
	for _, p := range c.Platforms {
		if p.Key == key {
			continue
		}
		d := levenshtein.ComputeDistance(needle, strings.ToLower(p.Key))
		if d <= limit {
			candidates = append(candidates, candidate{key: p.Key, distance: d})
		}
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		return a.distance - b.distance
	})

	out := make([]string, 0, min(len(candidates), maxSuggestions))
	for _, cand := range candidates {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, cand.key)
	}
	return out
}
