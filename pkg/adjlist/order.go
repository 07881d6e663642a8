package adjlist

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// CompareNames orders vertex names by UTF-16 code units, the order a
// browser's default string sort uses, so canonical edges match what the
// editor produces. It differs from byte order only when one name holds a
// supplementary-plane rune and the other a rune in U+E000..U+FFFF at the
// same position. Invalid UTF-8 falls back to byte order.
func CompareNames(a, b string) int {
	if !utf8.ValidString(a) || !utf8.ValidString(b) {
		return strings.Compare(a, b)
	}
	for a != "" && b != "" {
		ra, na := utf8.DecodeRuneInString(a)
		rb, nb := utf8.DecodeRuneInString(b)
		if ra != rb {
			return compareUnits(ra, rb)
		}
		a, b = a[na:], b[nb:]
	}
	return len(a) - len(b)
}

func compareUnits(ra, rb rune) int {
	ua, ub := firstUnit(ra), firstUnit(rb)
	switch {
	case ua < ub:
		return -1
	case ua > ub:
		return 1
	case ra < rb:
		return -1
	default:
		return 1
	}
}

func firstUnit(r rune) rune {
	if hi, _ := utf16.EncodeRune(r); hi != utf8.RuneError {
		return hi
	}
	return r
}
