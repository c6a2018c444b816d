package sources

// The scraper changed its output shape several times. Each logical field is read
// from the first key of its alias list that is present in the raw record: the
// current key first, then the keys older scraper versions used.
//
//	v1: publicacao_n, musicTitle, comments (list)
//	v2: comments_usernames (list), comments (count)
//	v3: publication_number, music_title, comments_count
var (
	numberKeys        = []string{"publication_number", "publicacao_n"}
	urlKeys           = []string{"url"}
	descriptionKeys   = []string{"description"}
	dateKeys          = []string{"date"}
	viewsKeys         = []string{"views"}
	likesKeys         = []string{"likes"}
	sharesKeys        = []string{"shares"}
	bookmarksKeys     = []string{"bookmarks"}
	musicTitleKeys    = []string{"music_title", "musicTitle"}
	tagsKeys          = []string{"tags"}
	commentsCountKeys = []string{"comments_count", "comments"}
	commentListKeys   = []string{"comments", "comments_usernames"}

	usernameKeys = []string{"username"}
	textKeys     = []string{"text"}
	repliesKeys  = []string{"replies"}
)

// lookup returns the value of the first alias present in raw
func lookup(raw map[string]any, keys []string) (any, bool) {
	for _, key := range keys {
		if value, ok := raw[key]; ok {
			return value, true
		}
	}
	return nil, false
}

// lookupList returns the first alias holding a non-empty list
func lookupList(raw map[string]any, keys []string) []any {
	for _, key := range keys {
		if list, ok := raw[key].([]any); ok && len(list) > 0 {
			return list
		}
	}
	return nil
}
