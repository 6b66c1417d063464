package tariff

import (
	"errors"
	"strings"

	"github.com/flowers-delivery/internal/normalizer"
)

// ErrUnknownSchema is returned when a header matches none of the supported schemas.
var ErrUnknownSchema = errors.New("unrecognized tariff file schema")

// Schema identifies the header layout of a tariff source.
type Schema int

const (
	SchemaUnknown Schema = iota
	// SchemaFlat has aliases (pipe separated), cost and label columns.
	SchemaFlat
	// SchemaAdministrative has a settlement name and a free-text cost.
	SchemaAdministrative
)

func (s Schema) String() string {
	switch s {
	case SchemaFlat:
		return "flat"
	case SchemaAdministrative:
		return "administrative"
	default:
		return "unknown"
	}
}

var (
	settlementHeaders = []string{"settlement", "locality", "name", "населенный пункт", "нас пункт", "название", "наименование"}
	freeCostHeaders   = []string{"cost", "price", "стоимость доставки", "стоимость", "цена", "тариф"}
)

// columns holds header positions; -1 means absent.
type columns struct {
	aliases    int
	cost       int
	label      int
	settlement int
}

// detectSchema resolves the schema from a header row. The flat schema is
// tried first.
func detectSchema(header []string) (Schema, columns) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	lookup := func(names ...string) int {
		for _, n := range names {
			if i, ok := index[n]; ok {
				return i
			}
		}
		return -1
	}

	cols := columns{
		aliases:    lookup("aliases"),
		cost:       lookup("cost"),
		label:      lookup("label"),
		settlement: -1,
	}
	if cols.aliases >= 0 && cols.cost >= 0 {
		return SchemaFlat, cols
	}

	cols = columns{
		aliases:    -1,
		cost:       lookup(freeCostHeaders...),
		label:      -1,
		settlement: lookup(settlementHeaders...),
	}
	if cols.settlement >= 0 && cols.cost >= 0 {
		return SchemaAdministrative, cols
	}

	return SchemaUnknown, columns{aliases: -1, cost: -1, label: -1, settlement: -1}
}

func normalizeHeader(h string) string {
	return normalizer.Normalize(strings.TrimPrefix(h, "\ufeff"))
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
