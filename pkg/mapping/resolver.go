package mapping

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/droxline/stockmap/pkg/errors"
	"github.com/droxline/stockmap/pkg/tabular"
)

// matcher is one rule of the resolution chain. Rules run in declaration
// order and the first label returned wins, so cheap exact strategies
// always shadow fuzzy ones.
type matcher struct {
	name  string
	match func(t *tabular.Table, e Entry) (string, bool)
}

var matchers = []matcher{
	{name: "position", match: matchPosition},
	{name: "exact", match: matchExact},
	{name: "folded", match: matchFolded},
	{name: "substring", match: matchSubstring},
	{name: "domain", match: matchDomainTokens},
}

// Resolve maps a declared source onto an actual column label of the
// table. Failure reports the attempted source together with every
// available column as index:label pairs, so an operator can repair the
// mapping from the error alone without reopening the file.
func Resolve(t *tabular.Table, e Entry) (string, error) {
	for _, m := range matchers {
		if label, ok := m.match(t, e); ok {
			return label, nil
		}
	}
	return "", errors.NewColumnNotFoundError(string(e.Source), t.Columns)
}

// Columns holds the resolved labels of one entity mapping.
type Columns struct {
	Reference string
	Quantity  string
}

// ResolveColumns validates a mapping and resolves both of its targets
// against the table.
func ResolveColumns(t *tabular.Table, m Mapping, entity string) (Columns, error) {
	if err := m.Validate(entity); err != nil {
		return Columns{}, err
	}
	refSource, _ := m.SourceFor(TargetReference)
	qtySource, _ := m.SourceFor(TargetQuantity)

	ref, err := Resolve(t, Entry{Source: refSource, Target: TargetReference})
	if err != nil {
		return Columns{}, errors.WrapEntity("mapping", entity, err)
	}
	qty, err := Resolve(t, Entry{Source: qtySource, Target: TargetQuantity})
	if err != nil {
		return Columns{}, errors.WrapEntity("mapping", entity, err)
	}
	return Columns{Reference: ref, Quantity: qty}, nil
}

// matchPosition treats a source that parses as a non-negative in-range
// integer as a zero-based column index. This is the only strategy that
// works for headerless files with synthetic labels.
func matchPosition(t *tabular.Table, e Entry) (string, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(string(e.Source)))
	if err != nil || n < 0 || n >= t.NumColumns() {
		return "", false
	}
	return t.Columns[n], true
}

func matchExact(t *tabular.Table, e Entry) (string, bool) {
	for _, label := range t.Columns {
		if label == string(e.Source) {
			return label, true
		}
	}
	return "", false
}

// matchFolded compares case-insensitively with diacritics stripped, so
// "Référence" declared as "reference" still resolves.
func matchFolded(t *tabular.Table, e Entry) (string, bool) {
	want := fold(string(e.Source))
	if want == "" {
		return "", false
	}
	for _, label := range t.Columns {
		if fold(label) == want {
			return label, true
		}
	}
	return "", false
}

// matchSubstring accepts containment in either direction after folding:
// a source "stock" finds "Supplier stock", and a source "Article number"
// finds a bare "Article" label.
func matchSubstring(t *tabular.Table, e Entry) (string, bool) {
	want := fold(string(e.Source))
	if want == "" {
		return "", false
	}
	for _, label := range t.Columns {
		got := fold(label)
		if got == "" {
			continue
		}
		if strings.Contains(got, want) || strings.Contains(want, got) {
			return label, true
		}
	}
	return "", false
}

// Token families for the last-resort domain heuristics. "produ" covers
// product, produit and produkt after folding; "qte" covers "Qté".
var (
	referenceTokens = []string{"code", "produ"}
	quantityTokens  = []string{"quant", "qty", "qte", "stock", "bestand", "menge"}
)

// matchDomainTokens applies stock-domain knowledge when every lexical
// strategy failed: a reference source sharing code+product tokens with a
// label matches it, and a quantity source matches any label carrying a
// quantity token.
func matchDomainTokens(t *tabular.Table, e Entry) (string, bool) {
	switch e.Target {
	case TargetReference:
		if !containsAll(fold(string(e.Source)), referenceTokens) {
			return "", false
		}
		for _, label := range t.Columns {
			if containsAll(fold(label), referenceTokens) {
				return label, true
			}
		}
	case TargetQuantity:
		for _, label := range t.Columns {
			if containsAny(fold(label), quantityTokens) {
				return label, true
			}
		}
	}
	return "", false
}

func containsAll(s string, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(s, tok) {
			return false
		}
	}
	return true
}

func containsAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}

// fold lowercases and strips combining marks. A fresh transformer chain
// per call keeps the function safe under concurrent platform merges.
func fold(s string) string {
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(stripper, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
