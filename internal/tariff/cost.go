package tariff

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var reNumber = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// ParseFlatCost parses a cost cell of the flat schema. A comma decimal
// separator is accepted.
func ParseFlatCost(raw string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	cost, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid cost %q: %w", raw, err)
	}
	return cost, nil
}

// ParseFreeTextCost scans free text for numbers and returns the largest one,
// so "300-500" resolves to 500. Text without numbers yields an invalid cost.
func ParseFreeTextCost(raw string) decimal.NullDecimal {
	var best decimal.NullDecimal
	for _, m := range reNumber.FindAllString(raw, -1) {
		n, err := decimal.NewFromString(strings.ReplaceAll(m, ",", "."))
		if err != nil {
			continue
		}
		best = ReconcileCost(best, Priced(n))
	}
	return best
}
