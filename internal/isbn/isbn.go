// Package isbn canonicalizes ISBN input to the 13-digit form used as
// the catalog's secondary natural key.
package isbn

import (
	"regexp"

	"golang.org/x/text/width"
)

var canonicalPattern = regexp.MustCompile(`^\d{13}$`)

// Normalize strips all non-digit characters from raw input (scanned,
// typed, or imported; full-width digits are folded first) and returns
// the canonical 13-digit form. A 10-digit ISBN is converted via the
// 978 prefix and a recomputed EAN-13 check digit. Any other digit
// count is returned stripped but unconverted; callers treat that as
// "no valid ISBN" but the digits are kept, not discarded.
func Normalize(raw string) string {
	digits := stripDigits(width.Narrow.String(raw))
	switch len(digits) {
	case 13:
		return digits
	case 10:
		return to13(digits)
	default:
		return digits
	}
}

// IsCanonical reports whether s is a 13-digit ISBN string.
func IsCanonical(s string) bool {
	return canonicalPattern.MatchString(s)
}

// CheckDigit computes the EAN-13 check digit for the first 12 digits:
// weights alternate 1,3 starting at the first digit, and a result of
// 10 maps to 0.
func CheckDigit(first12 string) byte {
	sum := 0
	for i := 0; i < 12; i++ {
		d := int(first12[i] - '0')
		if i%2 == 0 {
			sum += d
		} else {
			sum += 3 * d
		}
	}
	check := 10 - sum%10
	if check == 10 {
		check = 0
	}
	return byte('0' + check)
}

func to13(isbn10 string) string {
	first12 := "978" + isbn10[:9]
	return first12 + string(CheckDigit(first12))
}

func stripDigits(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
