package analysis

import (
	"testing"
	"time"

	"github.com/fanwatch/publication-insights/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// matchDay has a description about the game, a politics complaint, a supportive
// reply and a threat.
func matchDay() models.Publication {
	return models.Publication{
		Number:      10,
		Description: "Jogo hoje no estádio",
		Date:        time.Date(2024, 5, 29, 0, 0, 0, 0, time.UTC),
		Tags:        []string{"corinthians", "jogo"},
		Comments: []models.Comment{
			{
				Username: "ana",
				Text:     "que vergonha",
				Replies:  []models.Reply{{Username: "bia", Text: "parabéns fiel"}},
			},
			{Username: "caio", Text: "vai ter briga"},
		},
	}
}

func quietDay() models.Publication {
	return models.Publication{
		Number:      4,
		Description: "bom dia a todos",
		Date:        time.Date(2024, 4, 23, 0, 0, 0, 0, time.UTC),
		Tags:        []string{"corinthians"},
	}
}

func TestDominant(t *testing.T) {
	priority := []models.Sentiment{models.SentimentNegative, models.SentimentPositive}

	tests := []struct {
		name     string
		values   []models.Sentiment
		expected models.Sentiment
	}{
		{name: "Empty", values: nil, expected: models.SentimentNeutral},
		{name: "Strict majority neutral", values: []models.Sentiment{"neutral", "neutral", "negative"}, expected: models.SentimentNeutral},
		{name: "Strict majority positive", values: []models.Sentiment{"positive", "positive", "negative"}, expected: models.SentimentPositive},
		{name: "Tie prefers non-neutral", values: []models.Sentiment{"neutral", "positive"}, expected: models.SentimentPositive},
		{name: "Tie between polar categories uses priority", values: []models.Sentiment{"positive", "negative"}, expected: models.SentimentNegative},
		{name: "Three-way tie", values: []models.Sentiment{"neutral", "positive", "negative"}, expected: models.SentimentNegative},
		{name: "Tie with neutral at the top", values: []models.Sentiment{"positive", "positive", "neutral", "neutral", "negative"}, expected: models.SentimentPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, dominant(tt.values, priority, models.SentimentNeutral))
		})
	}
}

func TestDominant_UnknownCategoriesRankByFirstAppearance(t *testing.T) {
	assert.Equal(t, "b", dominant([]string{"b", "a", "none"}, nil, "none"))
	assert.Equal(t, "x", dominant([]string{"y", "x", "x", "y", "z"}, []string{"x"}, "none"))
}

func TestAnalyze(t *testing.T) {
	analyzer := NewAnalyzer(WithClock(fixedClock))

	result := analyzer.Analyze(matchDay())

	require.Len(t, result.Texts, 4)
	assert.Equal(t, []string{"Jogo hoje no estádio", "que vergonha", "parabéns fiel", "vai ter briga"},
		[]string{result.Texts[0].SourceText, result.Texts[1].SourceText, result.Texts[2].SourceText, result.Texts[3].SourceText})

	assert.Equal(t, models.SentimentNeutral, result.Texts[0].Sentiment)
	assert.Equal(t, models.TopicEventsOrganization, result.Texts[0].Topic)
	assert.Equal(t, models.TopicPoliticsAndManagement, result.Texts[1].Topic)
	assert.Equal(t, models.TopicSupportAndUnity, result.Texts[2].Topic)
	assert.Equal(t, models.EmotionJoy, result.Texts[2].Emotion)
	assert.Equal(t, models.TopicThreatsAndRisks, result.Texts[3].Topic)

	assert.Equal(t, models.SentimentNegative, result.MainSentiment)
	assert.Equal(t, models.EmotionAnger, result.MainEmotion)
	// four topics tied at one: threats come first in priority
	assert.Equal(t, models.TopicThreatsAndRisks, result.MainTopic)
	assert.Equal(t, fixedNow, result.AnalyzedAt)
	assert.Equal(t, 1, result.ThreatTexts())
}

func TestAnalyze_ThreatDescriptionWithoutComments(t *testing.T) {
	result := NewAnalyzer().Analyze(models.Publication{Number: 1, Description: "Emboscada depois do jogo"})

	assert.Equal(t, models.TopicThreatsAndRisks, result.MainTopic)
	require.Len(t, result.Texts, 1)
}

func TestAnalyze_EmptyPublication(t *testing.T) {
	result := NewAnalyzer().Analyze(models.Publication{})

	require.Len(t, result.Texts, 1)
	assert.Equal(t, models.SentimentNeutral, result.MainSentiment)
	assert.Equal(t, models.EmotionGeneral, result.MainEmotion)
	assert.Equal(t, models.TopicGeneral, result.MainTopic)
}

func TestAnalyze_Idempotent(t *testing.T) {
	analyzer := NewAnalyzer()
	pub := matchDay()

	first := analyzer.Analyze(pub)
	second := analyzer.Analyze(pub)

	assert.Equal(t, first.MainSentiment, second.MainSentiment)
	assert.Equal(t, first.MainEmotion, second.MainEmotion)
	assert.Equal(t, first.MainTopic, second.MainTopic)
	assert.Equal(t, matchDay(), pub)
}

func TestAggregate(t *testing.T) {
	aggregator := NewAggregator(NewAnalyzer(WithClock(fixedClock)))

	stats := aggregator.Aggregate([]models.Publication{matchDay(), quietDay()}, Filter{})

	assert.Equal(t, 2, stats.TotalPublications)
	assert.Equal(t, 3, stats.TotalComments)
	assert.Equal(t, 1, stats.ThreatPublications)
	assert.Equal(t, 1, stats.ThreatTexts)
	assert.Equal(t, 2, stats.ThreatCount)
	assert.InDelta(t, 40.0, stats.NegativeSentimentPercent, 0.0001)

	assert.Equal(t, map[models.Sentiment]int{
		models.SentimentNeutral:  2,
		models.SentimentNegative: 2,
		models.SentimentPositive: 1,
	}, stats.SentimentDistribution)
	assert.Equal(t, map[models.Emotion]int{
		models.EmotionGeneral: 2,
		models.EmotionAnger:   2,
		models.EmotionJoy:     1,
	}, stats.EmotionDistribution)
	assert.Equal(t, 1, stats.TopicDistribution[models.TopicGeneral])
	assert.Equal(t, 1, stats.TopicDistribution[models.TopicThreatsAndRisks])

	require.NotNil(t, stats.DateRange)
	assert.Equal(t, quietDay().Date, stats.DateRange.Start)
	assert.Equal(t, matchDay().Date, stats.DateRange.End)
}

func TestAggregate_DistributionsCoverEveryTextUnit(t *testing.T) {
	stats := NewAggregator(nil).Aggregate([]models.Publication{matchDay(), quietDay()}, Filter{})

	sum := func(values []int) int {
		total := 0
		for _, v := range values {
			total += v
		}
		return total
	}
	var sentiments, emotions, topics []int
	for _, v := range stats.SentimentDistribution {
		sentiments = append(sentiments, v)
	}
	for _, v := range stats.EmotionDistribution {
		emotions = append(emotions, v)
	}
	for _, v := range stats.TopicDistribution {
		topics = append(topics, v)
	}

	assert.Equal(t, 5, sum(sentiments))
	assert.Equal(t, sum(sentiments), sum(emotions))
	assert.Equal(t, sum(sentiments), sum(topics))
}

func TestAggregate_Empty(t *testing.T) {
	stats := NewAggregator(nil).Aggregate(nil, Filter{})

	assert.Equal(t, 0, stats.TotalPublications)
	assert.Equal(t, 0, stats.TotalComments)
	assert.Equal(t, 0, stats.ThreatCount)
	assert.Equal(t, 0.0, stats.NegativeSentimentPercent)
	assert.Empty(t, stats.SentimentDistribution)
	assert.Empty(t, stats.EmotionDistribution)
	assert.Empty(t, stats.TopicDistribution)
	assert.Nil(t, stats.DateRange)
}

func TestAggregate_EmptyEchoesFilterRange(t *testing.T) {
	start := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2030, 2, 1, 0, 0, 0, 0, time.UTC)

	stats := NewAggregator(nil).Aggregate([]models.Publication{matchDay()}, Filter{Start: &start, End: &end})

	assert.Equal(t, 0, stats.TotalPublications)
	require.NotNil(t, stats.DateRange)
	assert.Equal(t, start, stats.DateRange.Start)
	assert.Equal(t, end, stats.DateRange.End)

	onlyStart := NewAggregator(nil).Aggregate(nil, Filter{Start: &start})
	assert.Nil(t, onlyStart.DateRange)
}

func TestAggregate_ZeroDatesAreIgnored(t *testing.T) {
	undated := quietDay()
	undated.Date = time.Time{}

	stats := NewAggregator(nil).Aggregate([]models.Publication{undated}, Filter{})

	assert.Equal(t, 1, stats.TotalPublications)
	assert.Nil(t, stats.DateRange)
}

func TestFilter(t *testing.T) {
	publications := []models.Publication{matchDay(), quietDay()}
	may := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	lastDayOfMay := time.Date(2024, 5, 29, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		filter   Filter
		expected []int
	}{
		{name: "No filter", filter: Filter{}, expected: []int{10, 4}},
		{name: "Start bound", filter: Filter{Start: &may}, expected: []int{10}},
		{name: "End bound is inclusive", filter: Filter{End: &lastDayOfMay}, expected: []int{10, 4}},
		{name: "Single tag", filter: Filter{Tags: []string{"corinthians"}}, expected: []int{10, 4}},
		{name: "All tags required", filter: Filter{Tags: []string{"corinthians", "jogo"}}, expected: []int{10}},
		{name: "Unknown tag", filter: Filter{Tags: []string{"palmeiras"}}, expected: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			numbers := []int{}
			for _, pub := range tt.filter.Apply(publications) {
				numbers = append(numbers, pub.Number)
			}
			assert.Equal(t, tt.expected, numbers)
		})
	}
}

func TestFilter_DatedDropsUnknownDates(t *testing.T) {
	undated := quietDay()
	undated.DateUnknown = true
	publications := []models.Publication{matchDay(), undated}

	assert.Len(t, Filter{}.Apply(publications), 2)

	dated := Filter{Dated: true}.Apply(publications)
	require.Len(t, dated, 1)
	assert.Equal(t, 10, dated[0].Number)
}

func TestSearch(t *testing.T) {
	publications := []models.Publication{matchDay(), quietDay(), {Number: 104, Description: "outro"}}

	assert.Len(t, Search(publications, "ESTÁDIO", 0), 1)
	assert.Len(t, Search(publications, "10", 0), 2)
	assert.Len(t, Search(publications, "10", 1), 1)
	assert.Empty(t, Search(publications, "   ", 0))
	assert.Empty(t, Search(publications, "palmeiras", 0))
}

func TestFindByNumber(t *testing.T) {
	publications := []models.Publication{matchDay(), quietDay()}

	pub, ok := FindByNumber(publications, 4)
	require.True(t, ok)
	assert.Equal(t, "bom dia a todos", pub.Description)

	_, ok = FindByNumber(publications, 99)
	assert.False(t, ok)
}

func TestTopThreats(t *testing.T) {
	analyzer := NewAnalyzer()
	heavy := models.Publication{
		Number:      30,
		Description: "guerra",
		Comments:    []models.Comment{{Text: "emboscada"}, {Text: "tumulto"}},
	}
	analyzed := analyzer.AnalyzeAll([]models.Publication{quietDay(), matchDay(), heavy})

	threats := TopThreats(analyzed, 0)

	require.Len(t, threats, 2)
	assert.Equal(t, 30, threats[0].Number)
	assert.Equal(t, 3, threats[0].ThreatTexts)
	assert.Equal(t, 10, threats[1].Number)
	assert.Len(t, TopThreats(analyzed, 1), 1)
}
