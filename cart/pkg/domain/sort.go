package domain

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ParseLocale falls back to Spanish when locale does not parse.
func ParseLocale(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		return language.Spanish
	}
	return tag
}

// Sorted returns a copy of lines ordered by name under the collation rules
// of locale, ignoring case. Ties are broken by id.
func Sorted(lines []Line, locale language.Tag) []Line {
	// a Collator keeps scratch buffers and must not be shared between goroutines
	collator := collate.New(locale, collate.IgnoreCase)
	sorted := slices.Clone(lines)
	slices.SortStableFunc(sorted, func(a, b Line) int {
		if n := collator.CompareString(a.Name, b.Name); n != 0 {
			return n
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return sorted
}
