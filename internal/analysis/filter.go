package analysis

import (
	"strconv"
	"strings"
	"time"

	"github.com/fanwatch/publication-insights/internal/models"
)

// Filter narrows the publications an aggregation runs over.
// Bounds are inclusive; a publication must carry every tag listed.
type Filter struct {
	Start *time.Time
	End   *time.Time
	Tags  []string
	// Dated drops publications whose date could not be parsed
	Dated bool
}

// Matches reports whether pub passes the filter
func (f Filter) Matches(pub models.Publication) bool {
	if f.Dated && pub.DateUnknown {
		return false
	}
	if f.Start != nil && pub.Date.Before(*f.Start) {
		return false
	}
	if f.End != nil && pub.Date.After(*f.End) {
		return false
	}
	return pub.HasTags(f.Tags)
}

// Apply returns the publications that pass the filter, in input order
func (f Filter) Apply(publications []models.Publication) []models.Publication {
	filtered := make([]models.Publication, 0, len(publications))
	for _, pub := range publications {
		if f.Matches(pub) {
			filtered = append(filtered, pub)
		}
	}
	return filtered
}

// Search returns up to limit publications whose description contains query
// (case-insensitive) or whose number contains it as a decimal string.
// A non-positive limit means no limit.
func Search(publications []models.Publication, query string, limit int) []models.Publication {
	needle := strings.ToLower(strings.TrimSpace(query))
	results := []models.Publication{}
	if needle == "" {
		return results
	}

	for _, pub := range publications {
		if limit > 0 && len(results) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(pub.Description), needle) ||
			strings.Contains(strconv.Itoa(pub.Number), needle) {
			results = append(results, pub)
		}
	}

	return results
}

// FindByNumber returns the publication with the given number
func FindByNumber(publications []models.Publication, number int) (models.Publication, bool) {
	for _, pub := range publications {
		if pub.Number == number {
			return pub, true
		}
	}
	return models.Publication{}, false
}
