package classifier

import (
	"testing"

	"github.com/fanwatch/publication-insights/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_EmptyTextReturnsFallback(t *testing.T) {
	assert.Equal(t, models.SentimentNeutral, NewSentimentClassifier().Classify(""))
	assert.Equal(t, models.EmotionGeneral, NewEmotionClassifier().Classify(""))
	assert.Equal(t, models.TopicGeneral, NewTopicClassifier().Classify(""))
}

func TestSentimentClassifier(t *testing.T) {
	classifier := NewSentimentClassifier()

	tests := []struct {
		name     string
		text     string
		expected models.Sentiment
	}{
		{name: "Positive keyword", text: "Parabéns ao time", expected: models.SentimentPositive},
		{name: "Negative keyword", text: "Que VERGONHA", expected: models.SentimentNegative},
		{name: "Negative wins over positive", text: "parabéns, mas que vergonha", expected: models.SentimentNegative},
		{name: "Positive first in text still loses", text: "gostei nada, time pequeno", expected: models.SentimentNegative},
		{name: "Emoji keyword", text: "🦅🦅🦅", expected: models.SentimentPositive},
		{name: "No keyword", text: "bom dia a todos", expected: models.SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifier.Classify(tt.text))
		})
	}
}

func TestEmotionClassifier(t *testing.T) {
	classifier := NewEmotionClassifier()

	tests := []struct {
		name     string
		text     string
		expected models.Emotion
	}{
		{name: "Joy", text: "muito legal", expected: models.EmotionJoy},
		{name: "Joy before anger", text: "legal, mas que vergonha", expected: models.EmotionJoy},
		{name: "Anger", text: "ridículo demais", expected: models.EmotionAnger},
		{name: "Frustration", text: "que raiva desse jogo", expected: models.EmotionFrustration},
		{name: "Anxiety", text: "cadê o ônibus?", expected: models.EmotionAnxiety},
		{name: "General", text: "bom dia a todos", expected: models.EmotionGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifier.Classify(tt.text))
		})
	}
}

func TestTopicClassifier(t *testing.T) {
	classifier := NewTopicClassifier()

	tests := []struct {
		name     string
		text     string
		expected models.Topic
	}{
		{name: "Threat before police", text: "vai ter briga com a polícia", expected: models.TopicThreatsAndRisks},
		{name: "Police", text: "a polícia chegou", expected: models.TopicPoliceSecurity},
		{name: "Rivalry", text: "os porko correram", expected: models.TopicSportsRivalry},
		{name: "Politics", text: "a diretoria precisa pagar", expected: models.TopicPoliticsAndManagement},
		{name: "Events", text: "o ingresso do jogo", expected: models.TopicEventsOrganization},
		{name: "Support", text: "somos a fiel torcida", expected: models.TopicSupportAndUnity},
		{name: "Case insensitive", text: "EMBOSCADA", expected: models.TopicThreatsAndRisks},
		{name: "General", text: "bom dia a todos", expected: models.TopicGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifier.Classify(tt.text))
		})
	}
}

func TestClassifyBatch_PreservesOrderAndLength(t *testing.T) {
	classifier := NewSentimentClassifier()
	texts := []string{"que vergonha", "", "parabéns", "bom dia a todos"}

	results := classifier.ClassifyBatch(texts)

	require.Len(t, results, len(texts))
	assert.Equal(t, []models.Sentiment{
		models.SentimentNegative,
		models.SentimentNeutral,
		models.SentimentPositive,
		models.SentimentNeutral,
	}, results)
	assert.Empty(t, classifier.ClassifyBatch(nil))
}

func TestNewKeywordClassifier_CopiesRules(t *testing.T) {
	rules := []Rule[string]{
		{Category: "alpha", Keywords: []string{"ALPHA"}},
		{Category: "beta", Keywords: []string{"beta"}},
	}
	classifier := NewKeywordClassifier(rules, "none")

	rules[0].Keywords[0] = "beta"
	rules[0].Category = "mutated"

	assert.Equal(t, "alpha", classifier.Classify("alpha release"))
	assert.Equal(t, "beta", classifier.Classify("beta release"))
	assert.Equal(t, "none", classifier.Classify("gamma"))
	assert.Equal(t, []string{"alpha", "beta"}, classifier.Priority())
	assert.Equal(t, "none", classifier.Fallback())
}

func TestTopicClassifier_Priority(t *testing.T) {
	assert.Equal(t, []models.Topic{
		models.TopicThreatsAndRisks,
		models.TopicPoliceSecurity,
		models.TopicSportsRivalry,
		models.TopicPoliticsAndManagement,
		models.TopicEventsOrganization,
		models.TopicSupportAndUnity,
	}, NewTopicClassifier().Priority())
}
