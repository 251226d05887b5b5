package service

import (
	"crypto/rand"
	"strings"
)

const slugAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// randomSuffix returns n characters of lowercase base36 randomness.
func randomSuffix(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	for i := range buf {
		buf[i] = slugAlphabet[int(buf[i])%len(slugAlphabet)]
	}
	return string(buf)
}

// slugPart lowercases and dashes a display name for URL use.
func slugPart(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
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
	}
	return strings.Trim(b.String(), "-")
}

// listingSlug builds "{breed}-in-{city}-{suffix}" style slugs. Empty parts
// collapse so a missing breed still yields a usable slug.
func listingSlug(breedName, cityName string) string {
	parts := []string{}
	if p := slugPart(breedName); p != "" {
		parts = append(parts, p)
	}
	if p := slugPart(cityName); p != "" {
		parts = append(parts, "in", p)
	}
	parts = append(parts, randomSuffix(6))
	return strings.Join(parts, "-")
}
