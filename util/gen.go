package util

import (
	"strings"

	"github.com/google/uuid"
)

// GenUsername returns a random username of the form "user-xxxxxxxx".
func GenUsername() string {
	return "user-" + randomSuffix()
}

// GenerateSlug turns a title into a URL-friendly slug with a random suffix
// so that equal titles never collide (e.g. "My Title" -> "my-title-a1b2c3d4").
func GenerateSlug(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))

	var b strings.Builder
	prevHyphen := false
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen && b.Len() > 0 {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}

	slug = strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return randomSuffix()
	}
	return slug + "-" + randomSuffix()
}

// TokenTag returns a short prefix of a token safe to put in logs. Full token
// strings never reach the log sinks.
func TokenTag(token string) string {
	const n = 8
	if len(token) <= n {
		return token
	}
	return token[:n] + "..."
}

func randomSuffix() string {
	id := uuid.NewString()
	return strings.SplitN(id, "-", 2)[0]
}
