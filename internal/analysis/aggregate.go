package analysis

import (
	"github.com/fanwatch/publication-insights/internal/models"
)

// Aggregator produces dashboard statistics over a filtered set of publications
type Aggregator struct {
	analyzer *Analyzer
}

// NewAggregator creates an aggregator; a nil analyzer uses the default tables
func NewAggregator(analyzer *Analyzer) *Aggregator {
	if analyzer == nil {
		analyzer = NewAnalyzer()
	}
	return &Aggregator{analyzer: analyzer}
}

// Aggregate filters, analyzes and summarizes the publications
func (g *Aggregator) Aggregate(publications []models.Publication, filter Filter) models.DashboardStats {
	stats, _ := g.Run(publications, filter)
	return stats
}

// Run is Aggregate that also returns the per-publication analyses
func (g *Aggregator) Run(publications []models.Publication, filter Filter) (models.DashboardStats, []models.AnalyzedPublication) {
	selected := filter.Apply(publications)
	if len(selected) == 0 {
		return emptyStats(filter), []models.AnalyzedPublication{}
	}

	analyzed := g.analyzer.AnalyzeAll(selected)
	return Summarize(analyzed), analyzed
}

// Summarize folds analyzed publications into dashboard statistics.
// Distributions and the negative percentage cover every text unit, not only the
// main category of each publication.
func Summarize(analyzed []models.AnalyzedPublication) models.DashboardStats {
	stats := models.DashboardStats{
		TotalPublications:     len(analyzed),
		SentimentDistribution: make(map[models.Sentiment]int),
		EmotionDistribution:   make(map[models.Emotion]int),
		TopicDistribution:     make(map[models.Topic]int),
	}

	totalTexts := 0
	for _, result := range analyzed {
		pub := result.Publication
		stats.TotalComments += len(pub.Comments) + pub.ReplyCount()

		if result.MainTopic == models.TopicThreatsAndRisks {
			stats.ThreatPublications++
		}

		for _, text := range result.Texts {
			totalTexts++
			stats.SentimentDistribution[text.Sentiment]++
			stats.EmotionDistribution[text.Emotion]++
			stats.TopicDistribution[text.Topic]++
			if text.Topic == models.TopicThreatsAndRisks {
				stats.ThreatTexts++
			}
		}

		if pub.Date.IsZero() {
			continue
		}
		if stats.DateRange == nil {
			stats.DateRange = &models.DateRange{Start: pub.Date, End: pub.Date}
			continue
		}
		if pub.Date.Before(stats.DateRange.Start) {
			stats.DateRange.Start = pub.Date
		}
		if pub.Date.After(stats.DateRange.End) {
			stats.DateRange.End = pub.Date
		}
	}

	stats.ThreatCount = stats.ThreatPublications + stats.ThreatTexts
	if totalTexts > 0 {
		negative := stats.SentimentDistribution[models.SentimentNegative]
		stats.NegativeSentimentPercent = float64(negative) / float64(totalTexts) * 100
	}

	return stats
}

func emptyStats(filter Filter) models.DashboardStats {
	stats := models.DashboardStats{
		SentimentDistribution: make(map[models.Sentiment]int),
		EmotionDistribution:   make(map[models.Emotion]int),
		TopicDistribution:     make(map[models.Topic]int),
	}
	if filter.Start != nil && filter.End != nil {
		stats.DateRange = &models.DateRange{Start: *filter.Start, End: *filter.End}
	}
	return stats
}
