package util

import (
	"strings"
	"unicode"
)

// Slugify turns a free-form title into a URL-safe slug. Anything
// that isn't a letter or digit becomes a dash, runs of dashes are
// collapsed
func Slugify(s string) string {
	var b strings.Builder
	lastDash := true

	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
