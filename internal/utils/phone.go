package utils

import "strings"

// NormalizePhone strips every non-digit character from a phone number so the
// same person registered as "078-811-1222" and "0788111222" matches.
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
