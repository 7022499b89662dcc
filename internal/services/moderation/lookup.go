package moderation

import (
	"regexp"
	"strings"
)

var uuidPattern = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)

// ExtractUUID returns the first UUID embedded anywhere in the input: a bare
// id, an id inside a pasted URL, or an id with surrounding noise.
func ExtractUUID(raw string) (string, bool) {
	match := uuidPattern.FindString(raw)
	if match == "" {
		return "", false
	}
	return strings.ToLower(match), true
}

// ExtractSlug treats the trailing URL path segment as a slug. Query strings
// and fragments are stripped first.
func ExtractSlug(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimRight(s, "/")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}
