package enums

import "strings"

// ModerationQueue names a predicate selecting the next admin work item.
type ModerationQueue string

const (
	QueueGeneral      ModerationQueue = "general"
	QueueEdited       ModerationQueue = "edited"
	QueueVerification ModerationQueue = "verification"
	QueueMember       ModerationQueue = "member"
)

func ParseModerationQueue(raw string) (ModerationQueue, bool) {
	q := ModerationQueue(strings.ToLower(strings.TrimSpace(raw)))
	switch q {
	case QueueGeneral, QueueEdited, QueueVerification, QueueMember:
		return q, true
	}
	return "", false
}
