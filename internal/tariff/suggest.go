package tariff

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/flowers-delivery/internal/normalizer"
	"github.com/xrash/smetrics"
)

// minSimilarity is the Jaro-Winkler score below which a zone is not suggested.
const minSimilarity = 0.8

// Suggestion is a zone that looks close to an address that did not match.
// Suggestions help operators price by hand; they never drive automatic pricing.
type Suggestion struct {
	Label      string  `json:"label"`
	Alias      string  `json:"alias"`
	Fragment   string  `json:"fragment"`
	Distance   int     `json:"distance"`
	Similarity float64 `json:"similarity"`
}

// Suggest compares every alias with each same-length word window of the
// address and returns the closest zones, best first.
func Suggest(address string, entries []Entry, limit int) []Suggestion {
	words := strings.Fields(normalizer.Normalize(address))
	if len(words) == 0 || limit <= 0 {
		return nil
	}

	var out []Suggestion
	for _, e := range entries {
		best, ok := closestAlias(words, e)
		if ok {
			out = append(out, best)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Similarity != out[j].Similarity {
			return out[i].Similarity > out[j].Similarity
		}
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Label < out[j].Label
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func closestAlias(words []string, e Entry) (Suggestion, bool) {
	var (
		best  Suggestion
		found bool
	)
	for _, alias := range e.Aliases {
		size := len(strings.Fields(alias))
		if size == 0 || size > len(words) {
			continue
		}
		for i := 0; i+size <= len(words); i++ {
			fragment := strings.Join(words[i:i+size], " ")
			similarity := smetrics.JaroWinkler(fragment, alias, 0.7, 4)
			if similarity < minSimilarity {
				continue
			}
			distance := levenshtein.ComputeDistance(fragment, alias)
			if !found || similarity > best.Similarity ||
				(similarity == best.Similarity && distance < best.Distance) {
				best = Suggestion{
					Label:      e.Label,
					Alias:      alias,
					Fragment:   fragment,
					Distance:   distance,
					Similarity: similarity,
				}
				found = true
			}
		}
	}
	return best, found
}
