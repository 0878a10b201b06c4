package normalize

import (
	"strings"

	"github.com/pbaille/catkw/internal/taxonomy"
	"golang.org/x/text/cases"
)

// StripTokens are feed placeholders dropped from category paths
var StripTokens = map[string]bool{
	"Root": true,
	"Home": true,
}

// Path turns a raw catalog category string into a canonical path.
// It returns false when nothing is left after cleaning.
func Path(raw string) (string, bool) {
	var parts []string
	for _, p := range taxonomy.Split(raw) {
		if StripTokens[p] {
			continue
		}
		parts = append(parts, p)
	}
	if len(parts) == 0 {
		return "", false
	}
	if len(parts) > taxonomy.MaxLevels {
		parts = parts[:taxonomy.MaxLevels]
	}
	return strings.Join(parts, taxonomy.Separator), true
}

// Levels counts the non-empty segments of a raw path
func Levels(raw string) int {
	return len(taxonomy.Split(raw))
}

// Fold collapses whitespace and case-folds s for loose name matching.
// Only the row counter uses it; keyword derivation matches paths exactly.
func Fold(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}
