package search

import (
	"regexp"
	"strings"
)

// QueryClass is the detected shape of a free-text admin search input.
type QueryClass string

const (
	ClassUUID  QueryClass = "uuid"
	ClassEmail QueryClass = "email"
	ClassPhone QueryClass = "phone"
	ClassSlug  QueryClass = "slug"
)

var (
	uuidRe  = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9][0-9\s\-]{5,17}$`)
)

// ClassifyQuery detects what a pasted search term is. Precedence is fixed:
// UUID > email > phone > slug. Pure function.
func ClassifyQuery(raw string) QueryClass {
	s := strings.TrimSpace(raw)
	switch {
	case uuidRe.MatchString(s):
		return ClassUUID
	case emailRe.MatchString(s):
		return ClassEmail
	case phoneRe.MatchString(s):
		return ClassPhone
	default:
		return ClassSlug
	}
}
