// Package analysis classifies publications and aggregates the results into
// dashboard statistics.
package analysis

import (
	"time"

	"github.com/fanwatch/publication-insights/internal/classifier"
	"github.com/fanwatch/publication-insights/internal/models"
)

// Analyzer runs the three lexical classifiers over every text unit of a publication
type Analyzer struct {
	sentiment *classifier.KeywordClassifier[models.Sentiment]
	emotion   *classifier.KeywordClassifier[models.Emotion]
	topic     *classifier.KeywordClassifier[models.Topic]
	now       func() time.Time
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithClock overrides the clock used for AnalyzedAt timestamps
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		a.now = now
	}
}

// WithClassifiers replaces the default keyword tables
func WithClassifiers(
	sentiment *classifier.KeywordClassifier[models.Sentiment],
	emotion *classifier.KeywordClassifier[models.Emotion],
	topic *classifier.KeywordClassifier[models.Topic],
) Option {
	return func(a *Analyzer) {
		a.sentiment = sentiment
		a.emotion = emotion
		a.topic = topic
	}
}

// NewAnalyzer creates an analyzer using the built-in keyword tables
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		sentiment: classifier.NewSentimentClassifier(),
		emotion:   classifier.NewEmotionClassifier(),
		topic:     classifier.NewTopicClassifier(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze classifies the description, every comment and every reply, then
// reduces each axis to its dominant category.
func (a *Analyzer) Analyze(pub models.Publication) models.AnalyzedPublication {
	analyzedAt := a.now()
	units := pub.TextUnits()

	sentiments := a.sentiment.ClassifyBatch(units)
	emotions := a.emotion.ClassifyBatch(units)
	topics := a.topic.ClassifyBatch(units)

	texts := make([]models.AnalyzedText, len(units))
	for i, unit := range units {
		texts[i] = models.AnalyzedText{
			SourceText: unit,
			Sentiment:  sentiments[i],
			Emotion:    emotions[i],
			Topic:      topics[i],
			AnalyzedAt: analyzedAt,
		}
	}

	return models.AnalyzedPublication{
		Publication:   pub,
		MainSentiment: dominant(sentiments, a.sentiment.Priority(), a.sentiment.Fallback()),
		MainEmotion:   dominant(emotions, a.emotion.Priority(), a.emotion.Fallback()),
		MainTopic:     dominant(topics, a.topic.Priority(), a.topic.Fallback()),
		Texts:         texts,
		AnalyzedAt:    analyzedAt,
	}
}

// AnalyzeAll analyzes each publication independently, preserving order
func (a *Analyzer) AnalyzeAll(publications []models.Publication) []models.AnalyzedPublication {
	analyzed := make([]models.AnalyzedPublication, len(publications))
	for i, pub := range publications {
		analyzed[i] = a.Analyze(pub)
	}
	return analyzed
}
