package analysis

import (
	"sort"

	"github.com/fanwatch/publication-insights/internal/models"
)

// TopThreats returns up to limit publications that mention threats, the ones with
// the most threat text units first and ties by publication number.
func TopThreats(analyzed []models.AnalyzedPublication, limit int) []models.PublicationSummary {
	var threats []models.PublicationSummary
	for _, result := range analyzed {
		summary := result.Summary()
		if summary.MainTopic == models.TopicThreatsAndRisks || summary.ThreatTexts > 0 {
			threats = append(threats, summary)
		}
	}

	sort.SliceStable(threats, func(i, j int) bool {
		if threats[i].ThreatTexts == threats[j].ThreatTexts {
			return threats[i].Number < threats[j].Number
		}
		return threats[i].ThreatTexts > threats[j].ThreatTexts
	})

	if limit > 0 && len(threats) > limit {
		threats = threats[:limit]
	}
	return threats
}
