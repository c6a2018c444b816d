package sources

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/fanwatch/publication-insights/internal/models"
	"github.com/fanwatch/publication-insights/internal/normalize"
)

// SentinelValue marks a comment the scraper failed to read
const SentinelValue = "N/A"

// Flatten maps one raw scraped record onto the canonical publication shape.
// now is the reference time used for short and unparseable dates.
func Flatten(raw map[string]any, now time.Time) models.Publication {
	date, dated := normalize.LookupDate(stringField(raw, dateKeys), now)
	if !dated {
		date = now
	}

	pub := models.Publication{
		Number:        intField(raw, numberKeys),
		URL:           stringField(raw, urlKeys),
		Description:   stringField(raw, descriptionKeys),
		Date:          date,
		DateUnknown:   !dated,
		Views:         stringField(raw, viewsKeys),
		Likes:         stringField(raw, likesKeys),
		Shares:        stringField(raw, sharesKeys),
		Bookmarks:     stringField(raw, bookmarksKeys),
		CommentsCount: commentsCount(raw),
		MusicTitle:    optionalStringField(raw, musicTitleKeys),
		Tags:          tagsField(raw),
		Comments:      []models.Comment{},
	}

	for _, entry := range lookupList(raw, commentListKeys) {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		username := stringField(item, usernameKeys)
		text := stringField(item, textKeys)
		if username == SentinelValue || text == SentinelValue {
			continue
		}

		pub.Comments = append(pub.Comments, models.Comment{
			Username: username,
			Text:     text,
			Likes:    likesField(item),
			Replies:  flattenReplies(item),
		})
	}

	return pub
}

// flattenReplies keeps every reply in source order. Sentinel replies are kept as-is.
func flattenReplies(comment map[string]any) []models.Reply {
	replies := []models.Reply{}

	value, _ := lookup(comment, repliesKeys)
	list, _ := value.([]any)
	for _, entry := range list {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		replies = append(replies, models.Reply{
			Username: stringField(item, usernameKeys),
			Text:     stringField(item, textKeys),
			Likes:    likesField(item),
		})
	}

	return replies
}

func commentsCount(raw map[string]any) int {
	value, ok := lookup(raw, commentsCountKeys)
	if !ok {
		return 0
	}
	if list, isList := value.([]any); isList {
		return len(list)
	}
	return normalize.ParseCompactNumber(value)
}

func likesField(raw map[string]any) int {
	value, _ := lookup(raw, likesKeys)
	return normalize.ParseCompactNumber(value)
}

func intField(raw map[string]any, keys []string) int {
	value, _ := lookup(raw, keys)
	return normalize.ParseCompactNumber(value)
}

// stringField renders scalar values as display strings; absent and null become ""
func stringField(raw map[string]any, keys []string) string {
	value, _ := lookup(raw, keys)

	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func optionalStringField(raw map[string]any, keys []string) *string {
	value := stringField(raw, keys)
	if value == "" {
		return nil
	}
	return &value
}

// tagsField keeps string tags in source order without duplicates
func tagsField(raw map[string]any) []string {
	tags := []string{}

	value, _ := lookup(raw, tagsKeys)
	list, _ := value.([]any)
	seen := make(map[string]struct{}, len(list))
	for _, entry := range list {
		tag, ok := entry.(string)
		if !ok {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	return tags
}
