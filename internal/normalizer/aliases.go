package normalizer

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

var reParenthetical = regexp.MustCompile(`\([^)]*\)`)

// settlementAbbreviations expands single-letter settlement types.
var settlementAbbreviations = map[string]string{
	"с": "село",
	"д": "деревня",
}

// settlementWords are dropped to catch addresses that omit the settlement type.
var settlementWords = map[string]struct{}{
	"село":    {},
	"с":       {},
	"деревня": {},
	"д":       {},
	"поселок": {},
	"пос":     {},
	"п":       {},
	"пгт":     {},
	"рп":      {},
	"хутор":   {},
	"станция": {},
	"город":   {},
	"г":       {},
}

// BuildAliases derives the normalized alias set for one place name, ordered
// longest first. An empty name yields no aliases.
//
// Variants: the normalized name, the name without parenthesized qualifiers,
// that form with "с"/"д" expanded to "село"/"деревня" (whole words only) and
// the expanded form with settlement-type words removed.
func BuildAliases(placeName string) []string {
	base := Normalize(placeName)
	if base == "" {
		return nil
	}

	unqualified := Normalize(reParenthetical.ReplaceAllString(placeName, " "))
	expanded := expandAbbreviations(unqualified)
	stripped := stripSettlementWords(expanded)

	return OrderLongestFirst([]string{base, unqualified, expanded, stripped})
}

// OrderLongestFirst deduplicates aliases, drops empty ones and sorts the rest
// by decreasing length (in runes). Ties are ordered lexicographically so the
// result is deterministic.
func OrderLongestFirst(aliases []string) []string {
	seen := make(map[string]struct{}, len(aliases))
	out := make([]string, 0, len(aliases))
	for _, a := range aliases {
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}

	sort.SliceStable(out, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(out[i]), utf8.RuneCountInString(out[j])
		if li != lj {
			return li > lj
		}
		return out[i] < out[j]
	})
	return out
}

func expandAbbreviations(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if full, ok := settlementAbbreviations[w]; ok {
			words[i] = full
		}
	}
	return strings.Join(words, " ")
}

func stripSettlementWords(s string) string {
	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if _, ok := settlementWords[w]; ok {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}
