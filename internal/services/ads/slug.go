package ads

import (
	"strings"

	"github.com/google/uuid"
)

const maxSlugTitleLen = 60

// GenerateSlug builds a URL slug from the title plus the first uuid segment,
// so two ads with identical titles never collide.
func GenerateSlug(title string, id uuid.UUID) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
		if b.Len() >= maxSlugTitleLen {
			break
		}
	}

	slug := strings.Trim(b.String(), "-")
	suffix := strings.SplitN(id.String(), "-", 2)[0]
	if slug == "" {
		return suffix
	}
	return slug + "-" + suffix
}
