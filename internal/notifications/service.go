package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/fanwatch/publication-insights/internal/config"
	"github.com/fanwatch/publication-insights/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/gomail.v2"
)

const (
	teamsTopThreats = 5
	emailTopThreats = 10
)

// Service handles sending notifications via various channels
type Service struct {
	config *config.Config
	client *resty.Client
}

// Ensure Service implements NotificationInterface
var _ NotificationInterface = (*Service)(nil)

// TeamsMessage represents a Microsoft Teams message
type TeamsMessage struct {
	Type       string         `json:"@type"`
	Context    string         `json:"@context"`
	ThemeColor string         `json:"themeColor,omitempty"`
	Title      string         `json:"title"`
	Text       string         `json:"text"`
	Sections   []TeamsSection `json:"sections,omitempty"`
}

type TeamsSection struct {
	ActivityTitle    string      `json:"activityTitle,omitempty"`
	ActivitySubtitle string      `json:"activitySubtitle,omitempty"`
	ActivityText     string      `json:"activityText,omitempty"`
	Facts            []TeamsFact `json:"facts,omitempty"`
	Markdown         bool        `json:"markdown,omitempty"`
}

type TeamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

// SendReport sends a dashboard report via configured notification channels
func (s *Service) SendReport(report *models.Report) error {
	if !s.config.NotificationsEnabled() {
		logrus.Infof("No notification channel configured, %s report kept in storage only", report.Period)
		return nil
	}

	return s.deliver("report",
		func() error { return s.postToTeams(s.buildTeamsReport(report)) },
		func() error { return s.sendReportEmail(report) },
	)
}

// SendAlert sends an urgent threat alert via configured notification channels
func (s *Service) SendAlert(alert *models.Alert) error {
	if !s.config.NotificationsEnabled() {
		logrus.WithFields(logrus.Fields{
			"alert_id": alert.ID,
			"type":     alert.Type,
		}).Warnf("No notification channel configured: %s", alert.Title)
		return nil
	}

	return s.deliver("alert",
		func() error { return s.postToTeams(s.buildTeamsAlert(alert)) },
		func() error { return s.sendAlertEmail(alert) },
	)
}

func (s *Service) deliver(kind string, teams, email func() error) error {
	var errors []string

	if s.config.TeamsWebhookURL != "" {
		if err := teams(); err != nil {
			logrus.Errorf("Failed to send Teams %s: %v", kind, err)
			errors = append(errors, fmt.Sprintf("Teams: %v", err))
		} else {
			logrus.Infof("Successfully sent %s to Teams", kind)
		}
	}

	if s.config.NotificationEmail != "" {
		if err := email(); err != nil {
			logrus.Errorf("Failed to send email %s: %v", kind, err)
			errors = append(errors, fmt.Sprintf("Email: %v", err))
		} else {
			logrus.Infof("Successfully sent %s via email", kind)
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

func (s *Service) postToTeams(message *TeamsMessage) error {
	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(s.config.TeamsWebhookURL)

	if err != nil {
		return fmt.Errorf("failed to send Teams message: %w", err)
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("Teams webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func (s *Service) buildTeamsReport(report *models.Report) *TeamsMessage {
	stats := report.Stats
	message := &TeamsMessage{
		Type:    "MessageCard",
		Context: "https://schema.org/extensions",
		Title:   fmt.Sprintf("Publication Insights - %s", title(report.Period)),
		Text: fmt.Sprintf("Analyzed %d publications with %d comments and replies",
			stats.TotalPublications, stats.TotalComments),
	}
	if stats.ThreatPublications > 0 {
		message.ThemeColor = "d13438"
	}

	facts := []TeamsFact{
		{Name: "Publications", Value: fmt.Sprintf("%d", stats.TotalPublications)},
		{Name: "Comments", Value: fmt.Sprintf("%d", stats.TotalComments)},
		{Name: "Threat Count", Value: fmt.Sprintf("%d", stats.ThreatCount)},
		{Name: "Negative Sentiment", Value: fmt.Sprintf("%.1f%%", stats.NegativeSentimentPercent)},
		{Name: "Period", Value: formatRange(stats.DateRange)},
		{Name: "Generated", Value: report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
	}
	message.Sections = append(message.Sections, TeamsSection{
		ActivityTitle: "Summary",
		Facts:         facts,
		Markdown:      true,
	})

	var topics []TeamsFact
	for _, topic := range models.AllTopics() {
		if count := stats.TopicDistribution[topic]; count > 0 {
			topics = append(topics, TeamsFact{Name: title(string(topic)), Value: fmt.Sprintf("%d", count)})
		}
	}
	if len(topics) > 0 {
		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle: "Topics",
			Facts:         topics,
			Markdown:      true,
		})
	}

	if len(report.TopThreats) > 0 {
		var lines []string
		for i, threat := range report.TopThreats {
			if i == teamsTopThreats {
				break
			}
			lines = append(lines, fmt.Sprintf("**[#%d](%s)** - %d threat texts (%s)",
				threat.Number, threat.URL, threat.ThreatTexts, threat.Date.Format("Jan 2")))
		}

		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle: "Top Threats",
			ActivityText:  strings.Join(lines, "\n\n"),
			Markdown:      true,
		})
	}

	return message
}

func (s *Service) buildTeamsAlert(alert *models.Alert) *TeamsMessage {
	message := &TeamsMessage{
		Type:       "MessageCard",
		Context:    "https://schema.org/extensions",
		ThemeColor: "d13438",
		Title:      alert.Title,
		Text:       alert.Message,
	}

	if pub := alert.Publication; pub != nil {
		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle:    fmt.Sprintf("Publication #%d", pub.Number),
			ActivitySubtitle: pub.Date.Format("January 2, 2006"),
			ActivityText:     pub.URL,
			Facts: []TeamsFact{
				{Name: "Threat Texts", Value: fmt.Sprintf("%d", pub.ThreatTexts)},
				{Name: "Sentiment", Value: title(string(pub.MainSentiment))},
				{Name: "Emotion", Value: title(string(pub.MainEmotion))},
			},
			Markdown: true,
		})
	}

	return message
}

func (s *Service) sendReportEmail(report *models.Report) error {
	subject := fmt.Sprintf("Publication Insights - %s (%d publications, %d threats)",
		title(report.Period), report.Stats.TotalPublications, report.Stats.ThreatPublications)

	htmlBody, err := s.buildEmailHTML(report)
	if err != nil {
		return fmt.Errorf("failed to build email HTML: %w", err)
	}

	return s.sendEmail(subject, buildEmailText(report), htmlBody)
}

func (s *Service) sendAlertEmail(alert *models.Alert) error {
	var text strings.Builder
	text.WriteString(alert.Message + "\n")
	if pub := alert.Publication; pub != nil {
		text.WriteString(fmt.Sprintf("\nPublication #%d (%s)\n", pub.Number, pub.Date.Format("Jan 2, 2006")))
		text.WriteString(fmt.Sprintf("URL: %s\n", pub.URL))
		text.WriteString(fmt.Sprintf("Threat texts: %d\n", pub.ThreatTexts))
	}

	return s.sendEmail(fmt.Sprintf("[%s] %s", strings.ToUpper(alert.Type), alert.Title), text.String(), "")
}

func (s *Service) sendEmail(subject, textBody, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.NotificationEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

var emailTemplate = template.Must(template.New("email").Funcs(template.FuncMap{
	"title":     title,
	"truncate":  truncate,
	"daterange": formatRange,
	"limit": func(threats []models.PublicationSummary) []models.PublicationSummary {
		if len(threats) > emailTopThreats {
			return threats[:emailTopThreats]
		}
		return threats
	},
}).Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Publication Insights</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background-color: #1b1b1b; color: white; padding: 20px; border-radius: 5px; }
        .summary { background-color: #f5f5f5; padding: 15px; margin: 20px 0; border-radius: 5px; }
        .threat { border-left: 4px solid #d13438; padding: 10px; margin: 10px 0; background-color: #fafafa; }
        .threat-meta { color: #666; font-size: 0.9em; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Publication Insights</h1>
        <p>{{.Period | title}} report generated on {{.GeneratedAt.Format "January 2, 2006 at 3:04 PM MST"}}</p>
    </div>

    <div class="summary">
        <h2>Summary</h2>
        <p><strong>Publications:</strong> {{.Stats.TotalPublications}} ({{daterange .Stats.DateRange}})</p>
        <p><strong>Comments and replies:</strong> {{.Stats.TotalComments}}</p>
        <p><strong>Threat count:</strong> {{.Stats.ThreatCount}} ({{.Stats.ThreatPublications}} publications, {{.Stats.ThreatTexts}} texts)</p>
        <p><strong>Negative sentiment:</strong> {{printf "%.1f" .Stats.NegativeSentimentPercent}}%</p>
        {{range $sentiment, $count := .Stats.SentimentDistribution}}
            <p><strong>{{printf "%s" $sentiment | title}}:</strong> {{$count}}</p>
        {{end}}
    </div>

    {{if .TopThreats}}
    <h2>Top Threats</h2>
    {{range limit .TopThreats}}
        <div class="threat">
            <a href="{{.URL}}" target="_blank">Publication #{{.Number}}</a>
            <div class="threat-meta">{{.Date.Format "Jan 2, 2006"}} | {{.ThreatTexts}} threat texts</div>
            {{if .Description}}<p>{{truncate .Description 200}}</p>{{end}}
        </div>
    {{end}}
    {{end}}

    <hr>
    <p><small>This report was generated automatically by Publication Insights.</small></p>
</body>
</html>
`))

func (s *Service) buildEmailHTML(report *models.Report) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, report); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildEmailText(report *models.Report) string {
	var text strings.Builder
	stats := report.Stats

	text.WriteString(fmt.Sprintf("Publication Insights - %s\n", title(report.Period)))
	text.WriteString(fmt.Sprintf("Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")))

	text.WriteString("SUMMARY\n")
	text.WriteString("=======\n")
	text.WriteString(fmt.Sprintf("Publications: %d (%s)\n", stats.TotalPublications, formatRange(stats.DateRange)))
	text.WriteString(fmt.Sprintf("Comments and replies: %d\n", stats.TotalComments))
	text.WriteString(fmt.Sprintf("Threat count: %d\n", stats.ThreatCount))
	text.WriteString(fmt.Sprintf("Negative sentiment: %.1f%%\n", stats.NegativeSentimentPercent))

	text.WriteString("\nSENTIMENT\n")
	for _, sentiment := range models.AllSentiments() {
		text.WriteString(fmt.Sprintf("  %s: %d\n", title(string(sentiment)), stats.SentimentDistribution[sentiment]))
	}
	text.WriteString("\nEMOTION\n")
	for _, emotion := range models.AllEmotions() {
		text.WriteString(fmt.Sprintf("  %s: %d\n", title(string(emotion)), stats.EmotionDistribution[emotion]))
	}
	text.WriteString("\nTOPIC\n")
	for _, topic := range models.AllTopics() {
		text.WriteString(fmt.Sprintf("  %s: %d\n", title(string(topic)), stats.TopicDistribution[topic]))
	}

	if len(report.TopThreats) > 0 {
		text.WriteString("\nTOP THREATS\n")
		text.WriteString("===========\n")

		for i, threat := range report.TopThreats {
			if i == emailTopThreats {
				break
			}
			text.WriteString(fmt.Sprintf("\n%d. Publication #%d (%d threat texts)\n", i+1, threat.Number, threat.ThreatTexts))
			text.WriteString(fmt.Sprintf("   Date: %s\n", threat.Date.Format("Jan 2, 2006")))
			text.WriteString(fmt.Sprintf("   URL: %s\n", threat.URL))
			if threat.Description != "" {
				text.WriteString(fmt.Sprintf("   Description: %s\n", truncate(threat.Description, 200)))
			}
		}
	}

	text.WriteString("\n---\nThis report was generated automatically by Publication Insights.\n")

	return text.String()
}

var titleCaser = cases.Title(language.BrazilianPortuguese)

// title turns "threats_and_risks" into "Threats And Risks"
func title(value string) string {
	return titleCaser.String(strings.ReplaceAll(value, "_", " "))
}

func truncate(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	return string(runes[:length]) + "..."
}

func formatRange(r *models.DateRange) string {
	if r == nil {
		return "no dates"
	}
	return fmt.Sprintf("%s to %s", r.Start.Format("Jan 2, 2006"), r.End.Format("Jan 2, 2006"))
}
