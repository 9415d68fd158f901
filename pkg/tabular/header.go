package tabular

import (
	"strings"
	"unicode"
)

// HasHeader inspects a candidate header row and reports whether it looks
// like real column labels. It returns false when every label is a bare
// numeric token, an all-uppercase alphanumeric token, or an
// "Unnamed"-style placeholder: those patterns mean the parser mistook a
// data row (article codes, quantities) for a header.
func HasHeader(labels []string) bool {
	if len(labels) == 0 {
		return false
	}

	allUpperOrNumeric := true
	allPlaceholderOrNumeric := true
	for _, label := range labels {
		trimmed := strings.TrimSpace(label)
		if !isUpperToken(trimmed) && !isNumericToken(trimmed) {
			allUpperOrNumeric = false
		}
		if !strings.HasPrefix(trimmed, "Unnamed") && !isNumericToken(trimmed) {
			allPlaceholderOrNumeric = false
		}
		if !allUpperOrNumeric && !allPlaceholderOrNumeric {
			return true
		}
	}
	return false
}

// isNumericToken reports whether the token is non-empty and all digits,
// so "01", "000057" and "42" all count.
func isNumericToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// isUpperToken reports whether the token contains at least one letter and
// no lowercase letters, e.g. "RAD" or "BM91518H". Real column labels
// almost always carry lowercase characters.
func isUpperToken(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
