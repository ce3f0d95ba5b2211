package mentions

import (
	"regexp"
	"strings"

	"github.com/gallerystudio/backend/internal/models"
)

var (
	mentionPattern = regexp.MustCompile(`@([A-Za-z0-9_.]+)`)
	leadingPattern = regexp.MustCompile(`^@([A-Za-z0-9_.]+)\s*`)
)

// Extract returns the distinct usernames mentioned anywhere in content, in
// order of first appearance. The leading "@" is stripped.
func Extract(content string) []string {
	matches := mentionPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	usernames := make([]string, 0, len(matches))
	for _, m := range matches {
		name := m[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		usernames = append(usernames, name)
	}
	return usernames
}

// Lead splits a leading mention span off content. It returns the mentioned
// username, the remaining text, and whether a leading mention was present.
// Display code renders the mention as a profile link and the remainder as
// plain text; if the username no longer resolves, the raw text is shown.
func Lead(content string) (username, remainder string, ok bool) {
	m := leadingPattern.FindStringSubmatch(content)
	if m == nil {
		return "", content, false
	}
	return m[1], content[len(m[0]):], true
}

// Suggest filters the composer's followings by case-insensitive substring
// match against username and display name. An empty result means the client
// shows its non-selectable "no results" entry.
func Suggest(followings []models.User, partial string) []models.UserCompact {
	partial = strings.ToLower(strings.TrimPrefix(partial, "@"))
	suggestions := make([]models.UserCompact, 0, len(followings))
	for i := range followings {
		u := &followings[i]
		if partial == "" ||
			strings.Contains(strings.ToLower(u.Username), partial) ||
			strings.Contains(strings.ToLower(u.DisplayName()), partial) {
			suggestions = append(suggestions, u.ToCompact())
		}
	}
	return suggestions
}
