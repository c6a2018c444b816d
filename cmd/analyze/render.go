package main

import (
	"fmt"
	"io"

	"github.com/fanwatch/publication-insights/internal/models"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const descriptionWidth = 60

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	return t
}

func renderDashboard(w io.Writer, report *models.Report) {
	stats := report.Stats

	summary := newTable(w, "Dashboard")
	summary.AppendRow(table.Row{"Publications", stats.TotalPublications})
	summary.AppendRow(table.Row{"Comments and replies", stats.TotalComments})
	summary.AppendRow(table.Row{"Threat count", fmt.Sprintf("%d (%d publications, %d texts)",
		stats.ThreatCount, stats.ThreatPublications, stats.ThreatTexts)})
	summary.AppendRow(table.Row{"Negative sentiment", fmt.Sprintf("%.1f%%", stats.NegativeSentimentPercent)})
	summary.AppendRow(table.Row{"Date range", dateRange(stats.DateRange)})
	summary.Render()

	distribution := newTable(w, "Distribution")
	distribution.AppendHeader(table.Row{"Axis", "Category", "Texts"})
	for _, sentiment := range models.AllSentiments() {
		distribution.AppendRow(table.Row{"sentiment", sentiment, stats.SentimentDistribution[sentiment]})
	}
	distribution.AppendSeparator()
	for _, emotion := range models.AllEmotions() {
		distribution.AppendRow(table.Row{"emotion", emotion, stats.EmotionDistribution[emotion]})
	}
	distribution.AppendSeparator()
	for _, topic := range models.AllTopics() {
		distribution.AppendRow(table.Row{"topic", topic, stats.TopicDistribution[topic]})
	}
	distribution.Render()

	if len(report.TopThreats) == 0 {
		return
	}

	threats := newTable(w, "Top threats")
	threats.AppendHeader(table.Row{"#", "Date", "Threat texts", "Description"})
	for _, threat := range report.TopThreats {
		threats.AppendRow(table.Row{
			threat.Number,
			threat.Date.Format(dateLayout),
			threat.ThreatTexts,
			text.Trim(threat.Description, descriptionWidth),
		})
	}
	threats.Render()
}

func renderPublications(w io.Writer, analyzed []models.AnalyzedPublication) {
	t := newTable(w, fmt.Sprintf("%d publications", len(analyzed)))
	t.AppendHeader(table.Row{"#", "Date", "Comments", "Sentiment", "Emotion", "Topic", "Description"})
	for _, result := range analyzed {
		pub := result.Publication
		t.AppendRow(table.Row{
			pub.Number,
			pub.Date.Format(dateLayout),
			len(pub.Comments) + pub.ReplyCount(),
			result.MainSentiment,
			result.MainEmotion,
			result.MainTopic,
			text.Trim(pub.Description, descriptionWidth),
		})
	}
	t.Render()
}

func renderPublication(w io.Writer, result models.AnalyzedPublication) {
	pub := result.Publication

	header := newTable(w, fmt.Sprintf("Publication #%d", pub.Number))
	header.AppendRow(table.Row{"URL", pub.URL})
	header.AppendRow(table.Row{"Date", pub.Date.Format(dateLayout)})
	header.AppendRow(table.Row{"Views / Likes / Shares", fmt.Sprintf("%s / %s / %s", pub.Views, pub.Likes, pub.Shares)})
	header.AppendRow(table.Row{"Main", fmt.Sprintf("%s, %s, %s", result.MainSentiment, result.MainEmotion, result.MainTopic)})
	header.Render()

	texts := newTable(w, "Texts")
	texts.AppendHeader(table.Row{"Text", "Sentiment", "Emotion", "Topic"})
	for _, unit := range result.Texts {
		texts.AppendRow(table.Row{text.Trim(unit.SourceText, descriptionWidth), unit.Sentiment, unit.Emotion, unit.Topic})
	}
	texts.Render()
}

func dateRange(r *models.DateRange) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprintf("%s to %s", r.Start.Format(dateLayout), r.End.Format(dateLayout))
}
