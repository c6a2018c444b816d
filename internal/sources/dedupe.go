package sources

import (
	"sort"

	"github.com/fanwatch/publication-insights/internal/models"
)

// Deduplicate keeps one publication per number: the one with strictly more
// comments wins, ties keep the record seen first. The result is sorted by number.
func Deduplicate(publications []models.Publication) []models.Publication {
	best := make(map[int]int, len(publications)) // number -> index in unique
	unique := make([]models.Publication, 0, len(publications))

	for _, pub := range publications {
		idx, seen := best[pub.Number]
		if !seen {
			best[pub.Number] = len(unique)
			unique = append(unique, pub)
			continue
		}
		if len(pub.Comments) > len(unique[idx].Comments) {
			unique[idx] = pub
		}
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Number < unique[j].Number
	})

	return unique
}
