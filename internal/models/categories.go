package models

// Sentiment is the polarity of a text unit
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Emotion is the dominant emotion of a text unit
type Emotion string

const (
	EmotionJoy         Emotion = "joy"
	EmotionAnger       Emotion = "anger"
	EmotionFrustration Emotion = "frustration"
	EmotionAnxiety     Emotion = "anxiety"
	EmotionGeneral     Emotion = "general"
)

// Topic is the subject a text unit is about
type Topic string

const (
	TopicThreatsAndRisks       Topic = "threats_and_risks"
	TopicSportsRivalry         Topic = "sports_rivalry"
	TopicPoliceSecurity        Topic = "police_security"
	TopicSupportAndUnity       Topic = "support_and_unity"
	TopicEventsOrganization    Topic = "events_organization"
	TopicPoliticsAndManagement Topic = "politics_and_management"
	TopicGeneral               Topic = "general"
)

// AllSentiments returns every sentiment in declaration order
func AllSentiments() []Sentiment {
	return []Sentiment{SentimentPositive, SentimentNegative, SentimentNeutral}
}

// AllEmotions returns every emotion in declaration order
func AllEmotions() []Emotion {
	return []Emotion{EmotionJoy, EmotionAnger, EmotionFrustration, EmotionAnxiety, EmotionGeneral}
}

// AllTopics returns every topic in declaration order
func AllTopics() []Topic {
	return []Topic{
		TopicThreatsAndRisks,
		TopicSportsRivalry,
		TopicPoliceSecurity,
		TopicSupportAndUnity,
		TopicEventsOrganization,
		TopicPoliticsAndManagement,
		TopicGeneral,
	}
}
