package tariff

import (
	"unicode/utf8"

	"github.com/flowers-delivery/internal/normalizer"
	"github.com/shopspring/decimal"
)

// Entry is one priced delivery zone.
type Entry struct {
	// Aliases are normalized names of the zone, longest first.
	Aliases []string `json:"aliases"`
	// Cost is invalid when the zone is known but needs a manual price.
	Cost  decimal.NullDecimal `json:"cost"`
	Label string              `json:"label"`
}

// NewEntry builds an entry from raw aliases, normalizing and ordering them.
func NewEntry(label string, cost decimal.NullDecimal, aliases ...string) Entry {
	normalized := make([]string, 0, len(aliases))
	for _, a := range aliases {
		normalized = append(normalized, normalizer.Normalize(a))
	}
	return Entry{
		Aliases: normalizer.OrderLongestFirst(normalized),
		Cost:    cost,
		Label:   label,
	}
}

// Priced is a shorthand for a valid cost.
func Priced(cost decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: cost, Valid: true}
}

// Key is the merge key of the entry: its normalized label.
func (e Entry) Key() string {
	return normalizer.Normalize(e.Label)
}

// MaxAliasLength is the rune length of the longest alias.
func (e Entry) MaxAliasLength() int {
	longest := 0
	for _, a := range e.Aliases {
		if n := utf8.RuneCountInString(a); n > longest {
			longest = n
		}
	}
	return longest
}

func (e Entry) clone() Entry {
	aliases := make([]string, len(e.Aliases))
	copy(aliases, e.Aliases)
	e.Aliases = aliases
	return e
}

// mergeEntries unions aliases and keeps the higher of two known costs. The
// label of the first entry wins.
func mergeEntries(a, b Entry) Entry {
	all := make([]string, 0, len(a.Aliases)+len(b.Aliases))
	all = append(all, a.Aliases...)
	all = append(all, b.Aliases...)

	return Entry{
		Aliases: normalizer.OrderLongestFirst(all),
		Cost:    ReconcileCost(a.Cost, b.Cost),
		Label:   a.Label,
	}
}

// ReconcileCost returns the greater of two known costs, or whichever one is
// known. Delivery is never under-quoted.
func ReconcileCost(a, b decimal.NullDecimal) decimal.NullDecimal {
	switch {
	case !a.Valid:
		return b
	case !b.Valid:
		return a
	case b.Decimal.GreaterThan(a.Decimal):
		return b
	default:
		return a
	}
}
