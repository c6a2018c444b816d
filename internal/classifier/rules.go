package classifier

import "github.com/fanwatch/publication-insights/internal/models"

// Keyword tables for the Corinthians fan community the scraper follows.
// Order matters: rules are listed in priority order.

// SentimentRules checks negative keywords before positive ones
func SentimentRules() []Rule[models.Sentiment] {
	return []Rule[models.Sentiment]{
		{
			Category: models.SentimentNegative,
			Keywords: []string{
				"correram", "vergonha", "ridículo", "lixo", "pior", "odeio",
				"tomaram", "lamentável", "piada", "fdp", "time pequeno", "some",
				"fraco", "covardes", "merda", "vtnc", "humilhação", "acabou",
				"fora", "pipoqueiro", "incompetente", "desgraça", "violência",
				"briga", "morte", "ferido", "tumulto", "confusão", "invasão",
				"guerra", "perdemos", "lixos",
			},
		},
		{
			Category: models.SentimentPositive,
			Keywords: []string{
				"gostei", "legal", "tmj", "parabéns", "kkkkk", "unidos", "sempre",
				"dominamos", "vai corinthians", "🦅", "👊🏼", "⚫⚪", "respeito",
				"obrigado", "show", "top", "massa", "boa", "isso", "vamoo",
				"lindo", "família", "melhor", "meu amor", "é nós", "parabens",
				"orgulho", "gigante", "raça", "campeão", "vencer", "ganhamos",
			},
		},
	}
}

// EmotionRules lists emotions in priority order: joy, anger, frustration, anxiety
func EmotionRules() []Rule[models.Emotion] {
	return []Rule[models.Emotion]{
		{
			Category: models.EmotionJoy,
			Keywords: []string{
				"gostei", "legal", "tmj", "parabéns", "kkkkk", "unidos", "sempre",
				"dominamos", "vai corinthians", "🦅", "👊🏼", "⚫⚪", "respeito",
				"obrigado", "show", "top", "massa", "boa", "isso", "vamoo",
				"lindo", "família", "melhor", "meu amor", "é nós", "parabens",
				"orgulho", "gigante", "raça", "campeão", "vencer",
			},
		},
		{
			Category: models.EmotionAnger,
			Keywords: []string{
				"correram", "vergonha", "ridículo", "lixo", "pior", "odeio",
				"tomaram", "lamentável", "piada", "fdp", "time pequeno", "some",
				"fraco", "covardes", "merda", "vtnc", "humilhação", "acabou",
				"fora", "pipoqueiro", "incompetente", "desgraça", "violência",
				"briga", "morte", "ferido", "tumulto", "confusão", "bomba",
				"polícia", "invasão", "guerra",
			},
		},
		{
			Category: models.EmotionFrustration,
			Keywords: []string{
				"decepção", "absurdo", "paciência", "desisto", "difícil",
				"complicado", "não aguento mais", "de novo", "sempre a mesma coisa",
				"que raiva",
			},
		},
		{
			Category: models.EmotionAnxiety,
			Keywords: []string{
				"esperando", "ansioso", "cadê", "demora", "logo", "será que",
				"medo", "temer", "cuidado",
			},
		},
	}
}

// TopicRules lists topics from most to least specific
func TopicRules() []Rule[models.Topic] {
	return []Rule[models.Topic]{
		{
			Category: models.TopicThreatsAndRisks,
			Keywords: []string{
				"guerra", "ataque", "bater", "briga", "luta", "vingança",
				"morte", "ferido", "tumulto", "confusão", "invasão",
				"emboscada", "vai morrer", "matar", "mct", "bct", "gdf", "pista",
			},
		},
		{
			Category: models.TopicPoliceSecurity,
			Keywords: []string{
				"polícia", "segurança", "violência", "roubo", "bomba",
				"choque", "pm", "viatura",
			},
		},
		{
			Category: models.TopicSportsRivalry,
			Keywords: []string{
				"correram", "mancha", "porko", "palmeiras", "sem mundial",
				"freguês", "trikas", "bambis",
			},
		},
		{
			Category: models.TopicPoliticsAndManagement,
			Keywords: []string{
				"política", "corrupção", "vergonha", "governo", "pagar",
				"diretoria", "augusto melo", "presidente", "fora", "eleição",
			},
		},
		{
			Category: models.TopicEventsOrganization,
			Keywords: []string{
				"jogo", "grupo", "evento", "final", "campeonato", "paulista",
				"estádio", "caravana", "ingresso", "bandeira",
			},
		},
		{
			Category: models.TopicSupportAndUnity,
			Keywords: []string{
				"unidos", "sempre", "irmão", "tmj", "apoio", "torcida",
				"respeito", "corinthians", "gaviões", "fiel", "orgulho",
			},
		},
	}
}

// NewSentimentClassifier builds the sentiment classifier; unmatched text is neutral
func NewSentimentClassifier() *KeywordClassifier[models.Sentiment] {
	return NewKeywordClassifier(SentimentRules(), models.SentimentNeutral)
}

// NewEmotionClassifier builds the emotion classifier; unmatched text is general
func NewEmotionClassifier() *KeywordClassifier[models.Emotion] {
	return NewKeywordClassifier(EmotionRules(), models.EmotionGeneral)
}

// NewTopicClassifier builds the topic classifier; unmatched text is general
func NewTopicClassifier() *KeywordClassifier[models.Topic] {
	return NewKeywordClassifier(TopicRules(), models.TopicGeneral)
}
