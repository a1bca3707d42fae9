package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes accented characters and removes the combining marks,
// so "é" becomes "e" and "â" becomes "a".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make converts a free-text name into a URL-safe slug: lowercase, accents
// stripped, runs of anything outside [a-z0-9] collapsed into single hyphens,
// no leading or trailing hyphen. Make is idempotent.
func Make(s string) string {
	lowered := strings.ToLower(s)
	stripped, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		stripped = lowered
	}

	var b strings.Builder
	b.Grow(len(stripped))
	pendingHyphen := false
	for _, r := range stripped {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}
	return b.String()
}

// ForStore derives the unique store slug from a store name and the raw
// commune it was imported with.
func ForStore(name, commune string) string {
	return Make(name) + "-" + Make(commune)
}
