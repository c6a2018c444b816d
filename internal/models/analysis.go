package models

import "time"

// AnalyzedText is the classification of a single text unit
type AnalyzedText struct {
	SourceText string    `json:"source_text"`
	Sentiment  Sentiment `json:"sentiment"`
	Emotion    Emotion   `json:"emotion"`
	Topic      Topic     `json:"topic"`
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// AnalyzedPublication holds the per-axis main categories of a publication
// together with the classification of every text unit it contains.
type AnalyzedPublication struct {
	Publication   Publication    `json:"publication"`
	MainSentiment Sentiment      `json:"main_sentiment"`
	MainEmotion   Emotion        `json:"main_emotion"`
	MainTopic     Topic          `json:"main_topic"`
	Texts         []AnalyzedText `json:"texts"`
	AnalyzedAt    time.Time      `json:"analyzed_at"`
}

// ThreatTexts counts the text units classified as threats and risks
func (a AnalyzedPublication) ThreatTexts() int {
	count := 0
	for _, text := range a.Texts {
		if text.Topic == TopicThreatsAndRisks {
			count++
		}
	}
	return count
}

// Summary condenses the analysis for reports and alerts
func (a AnalyzedPublication) Summary() PublicationSummary {
	return PublicationSummary{
		Number:        a.Publication.Number,
		URL:           a.Publication.URL,
		Description:   a.Publication.Description,
		Date:          a.Publication.Date,
		MainSentiment: a.MainSentiment,
		MainEmotion:   a.MainEmotion,
		MainTopic:     a.MainTopic,
		ThreatTexts:   a.ThreatTexts(),
	}
}

// DateRange is an inclusive time window
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DashboardStats aggregates the analysis of a set of publications.
// ThreatCount is ThreatPublications + ThreatTexts: a publication whose main topic
// is a threat counts once, and so does every threat text unit inside it.
type DashboardStats struct {
	TotalPublications        int               `json:"total_publications"`
	TotalComments            int               `json:"total_comments"` // comments plus replies
	ThreatCount              int               `json:"threat_count"`
	ThreatPublications       int               `json:"threat_publications"`
	ThreatTexts              int               `json:"threat_texts"`
	NegativeSentimentPercent float64           `json:"negative_sentiment_percent"`
	SentimentDistribution    map[Sentiment]int `json:"sentiment_distribution"`
	EmotionDistribution      map[Emotion]int   `json:"emotion_distribution"`
	TopicDistribution        map[Topic]int     `json:"topic_distribution"`
	DateRange                *DateRange        `json:"date_range"`
}
