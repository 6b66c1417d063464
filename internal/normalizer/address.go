package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize prepares free-text address input for comparison with tariff aliases.
//
// The text is composed (NFC), lower-cased and "ё" is folded into "е", since
// aliases are authored in the folded form. Anything that is not a Latin or
// Cyrillic letter, an ASCII digit, whitespace or a hyphen becomes a space,
// and whitespace runs collapse to a single space. Normalize is idempotent.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	s := strings.ToLower(norm.NFC.String(raw))
	s = strings.ReplaceAll(s, "ё", "е")
	s = strings.Map(keepOrSpace, s)

	return strings.Join(strings.Fields(s), " ")
}

func keepOrSpace(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z',
		r >= 'а' && r <= 'я',
		r >= '0' && r <= '9',
		r == '-':
		return r
	case unicode.IsSpace(r):
		return r
	}
	return ' '
}
