package catalog

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/mmcdole/zenkai/internal/domain"
)

// fold returns s case-folded for caseless comparison
func fold(s string) string {
	return cases.Fold().String(s)
}

// containsFolded reports whether s contains needle, which must already be folded
func containsFolded(s, needle string) bool {
	return strings.Contains(fold(s), needle)
}

// Filter returns the items whose searchable text contains term, ignoring
// case. Planets match on name or description; everything else on name.
// An empty term returns items unchanged.
func Filter(items []domain.Item, term string) []domain.Item {
	if term == "" {
		return items
	}

	needle := fold(term)
	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if matches(item, needle) {
			out = append(out, item)
		}
	}
	return out
}

func matches(item domain.Item, needle string) bool {
	if containsFolded(item.GetName(), needle) {
		return true
	}
	if p, ok := item.(*domain.Planet); ok {
		return containsFolded(p.Description, needle)
	}
	return false
}
