package models

import "time"

// Reply is a response to a comment
type Reply struct {
	Username string `json:"username"`
	Text     string `json:"text"`
	Likes    int    `json:"likes"`
}

// Comment is a top-level comment on a publication. Reply order is the scrape order.
type Comment struct {
	Username string  `json:"username"`
	Text     string  `json:"text"`
	Likes    int     `json:"likes"`
	Replies  []Reply `json:"replies"`
}

// Publication represents one scraped post with its comment tree
type Publication struct {
	Number        int       `json:"publication_number"` // deduplication key
	URL           string    `json:"url"`
	Description   string    `json:"description"`
	Date          time.Time `json:"date"`
	DateUnknown   bool      `json:"date_unknown,omitempty"` // Date is the load time, not the post date
	Views         string    `json:"views"`                  // raw display value, e.g. "42.6K" or "N/A"
	Likes         string    `json:"likes"`                  // raw display value
	Shares        string    `json:"shares"`                 // raw display value
	Bookmarks     string    `json:"bookmarks"`              // raw display value
	CommentsCount int       `json:"comments_count"`
	MusicTitle    *string   `json:"music_title,omitempty"`
	Tags          []string  `json:"tags"`
	Comments      []Comment `json:"comments"`
}

// TextUnits returns the description followed by every comment, each comment
// immediately followed by its replies.
func (p Publication) TextUnits() []string {
	texts := make([]string, 0, 1+len(p.Comments)+p.ReplyCount())
	texts = append(texts, p.Description)
	for _, comment := range p.Comments {
		texts = append(texts, comment.Text)
		for _, reply := range comment.Replies {
			texts = append(texts, reply.Text)
		}
	}
	return texts
}

// ReplyCount returns the number of replies across all comments
func (p Publication) ReplyCount() int {
	count := 0
	for _, comment := range p.Comments {
		count += len(comment.Replies)
	}
	return count
}

// HasTags reports whether the publication carries every one of the given tags
func (p Publication) HasTags(tags []string) bool {
	for _, want := range tags {
		found := false
		for _, tag := range p.Tags {
			if tag == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Report represents a periodic dashboard report
type Report struct {
	GeneratedAt time.Time              `json:"generated_at"`
	Period      string                 `json:"period"` // "daily", "weekly" or "manual"
	Stats       DashboardStats         `json:"stats"`
	TopThreats  []PublicationSummary   `json:"top_threats"`
	Summary     map[string]interface{} `json:"summary"`
}

// PublicationSummary is the condensed view of an analyzed publication used in reports
type PublicationSummary struct {
	Number        int       `json:"publication_number"`
	URL           string    `json:"url"`
	Description   string    `json:"description"`
	Date          time.Time `json:"date"`
	MainSentiment Sentiment `json:"main_sentiment"`
	MainEmotion   Emotion   `json:"main_emotion"`
	MainTopic     Topic     `json:"main_topic"`
	ThreatTexts   int       `json:"threat_texts"`
}

// Alert represents an urgent notification
type Alert struct {
	ID          string              `json:"id"`
	Type        string              `json:"type"` // "critical", "urgent", "info"
	Title       string              `json:"title"`
	Message     string              `json:"message"`
	Publication *PublicationSummary `json:"publication,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}
