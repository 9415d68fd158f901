// Package stock converts raw quantity cells into non-negative integer
// quantities. Normalize is total: whatever a feed puts in a stock cell,
// it returns an integer and never an error, because a single exotic cell
// must not abort a ten-thousand-row ingestion.
package stock

import (
	"strconv"
	"strings"
)

// VocabularyVersion identifies the textual vocabulary table below.
// Bump it whenever an entry is added, removed or remapped, so runs can
// record which interpretation of textual stock values they applied.
const VocabularyVersion = 1

type vocabularyEntry struct {
	pattern  string
	quantity int
}

// vocabulary maps textual stock phrases to quantities by substring match
// against the uppercased cell. Order is load-bearing: longer and more
// specific phrases come before the single-letter catch-alls, so "YES"
// wins before "Y" and "N/A" before "N". Availability phrases map to 3,
// plain affirmatives to 1, negatives to 0, and the tail entries cover
// backorder, pre-order and limited stock.
var vocabulary = []vocabularyEntry{
	{"AVAILABLE", 3},
	{"IN STOCK", 3},
	{"EN STOCK", 3},
	{"VERFÜGBAR", 3},
	{"DISPONIBLE", 3},
	{"YES", 1},
	{"OUI", 1},
	{"JA", 1},
	{"Y", 1},
	{"N/A", 0},
	{"NONE", 0},
	{"NO", 0},
	{"NON", 0},
	{"NEIN", 0},
	{"N", 0},
	{"DISCONTINUED", 0},
	{"ÉPUISÉ", 0},
	{"AUSVERKAUFT", 0},
	{"OUT OF STOCK", 0},
	{"RUPTURE", 0},
	{"BACKORDER", 1},
	{"PRE-ORDER", 1},
	{"LIMITED", 2},
}

// comparison and approximation symbols stripped before numeric parsing
const strippedSymbols = "<>~=±≃≅"

// Normalize converts a raw cell into a quantity. The rule order matters:
// the textual vocabulary runs before symbol stripping, and range and
// percentage detection run before generic float parsing, otherwise
// values like "5-10" or "50%" parse as the wrong number.
func Normalize(raw string) int {
	value := strings.ToUpper(strings.TrimSpace(raw))
	if value == "" {
		return 0
	}

	for _, entry := range vocabulary {
		if strings.Contains(value, entry.pattern) {
			return entry.quantity
		}
	}

	value = strings.Map(func(r rune) rune {
		if strings.ContainsRune(strippedSymbols, r) {
			return -1
		}
		return r
	}, value)
	value = strings.ReplaceAll(value, ",", ".")

	// Negative stock does not exist.
	if strings.HasPrefix(value, "-") {
		return 0
	}

	// Range expressions keep the lower bound.
	if strings.Contains(value, "-") {
		lower := strings.TrimSpace(strings.SplitN(value, "-", 2)[0])
		if f, err := strconv.ParseFloat(lower, 64); err == nil {
			return clamp(int(f))
		}
	}

	// Percentages scale 0-100% onto 0-10.
	if strings.Contains(value, "%") {
		trimmed := strings.ReplaceAll(value, "%", "")
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return clamp(int(f / 100 * 10))
		}
	}

	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return clamp(int(f))
	}

	// Last resort: digit residue.
	var digits strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return clamp(n)
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
