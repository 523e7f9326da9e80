package catalog

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/zenkai/internal/domain"
)

// rankResults orders search results by how closely their names match query
func rankResults(items []domain.Item, query string) []domain.Item {
	if len(items) == 0 {
		return items
	}

	query = strings.ToLower(query)

	type rankedItem struct {
		item  domain.Item
		score int
	}

	ranked := make([]rankedItem, 0, len(items))
	for _, item := range items {
		name := strings.ToLower(item.GetName())
		ranked = append(ranked, rankedItem{item: item, score: calculateMatchScore(name, query)})
	}

	// Sort by score (lower is better); ties keep server order
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score < ranked[j].score
	})

	results := make([]domain.Item, len(ranked))
	for i, r := range ranked {
		results[i] = r.item
	}
	return results
}

// calculateMatchScore calculates a match score for ranking.
// Lower score = better match
func calculateMatchScore(name, query string) int {
	if name == query {
		return 0
	}
	if strings.HasPrefix(name, query) {
		return 10
	}
	if strings.Contains(name, query) {
		return 50
	}
	return 100 + fuzzy.LevenshteinDistance(query, name)
}
