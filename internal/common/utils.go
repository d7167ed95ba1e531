package common

import (
	"strings"
	"unicode"
)

// Slug converts a place name to a filesystem-friendly directory name.
// Letters, digits and spaces survive; spaces collapse to single
// underscores. "Oahu, Mililani, Honolulu County" -> "Oahu_Mililani_Honolulu_County".
func Slug(place string) string {
	var b strings.Builder
	for _, r := range place {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == ',':
			b.WriteRune(' ')
		}
	}

	parts := strings.Fields(b.String())
	if len(parts) == 0 {
		return "place"
	}
	return strings.Join(parts, "_")
}
