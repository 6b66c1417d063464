package tariff

import (
	"sort"
	"strings"
	"time"

	"github.com/flowers-delivery/internal/normalizer"
)

// Table is an immutable, ordered snapshot of delivery zones. Entries are
// sorted by their longest alias, descending, so that a specific alias such
// as "уфа аэропорт" is tried before a shorter one it contains.
type Table struct {
	entries  []Entry
	source   string
	schema   Schema
	loadedAt time.Time
}

// NewTable merges entries on their normalized label and orders the result.
// Entries from the front of the list win label conflicts; see mergeEntries.
func NewTable(entries []Entry, source string, schema Schema) *Table {
	return &Table{
		entries:  build(entries),
		source:   source,
		schema:   schema,
		loadedAt: time.Now(),
	}
}

// Entries returns a copy of the ordered entries.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.clone()
	}
	return out
}

func (t *Table) Len() int            { return len(t.entries) }
func (t *Table) Source() string      { return t.source }
func (t *Table) Schema() Schema      { return t.schema }
func (t *Table) LoadedAt() time.Time { return t.loadedAt }

// Match finds the zone of a free-text address. See Match.
func (t *Table) Match(address string) (Entry, bool) {
	e, ok := Match(address, t.entries)
	if !ok {
		return Entry{}, false
	}
	return e.clone(), true
}

// Match returns the first entry, in table order, that has an alias contained
// in the normalized address. Containment is a plain substring test; only the
// table ordering disambiguates overlapping aliases.
func Match(address string, entries []Entry) (Entry, bool) {
	normalized := normalizer.Normalize(address)
	if normalized == "" {
		return Entry{}, false
	}

	for _, e := range entries {
		for _, alias := range e.Aliases {
			if alias != "" && strings.Contains(normalized, alias) {
				return e, true
			}
		}
	}
	return Entry{}, false
}

// build merges entries sharing a normalized label and sorts them. The sort is
// stable so insertion order breaks ties.
func build(entries []Entry) []Entry {
	merged := make(map[string]int, len(entries))
	out := make([]Entry, 0, len(entries))

	for _, e := range entries {
		if len(e.Aliases) == 0 {
			continue
		}
		key := e.Key()
		if i, ok := merged[key]; ok {
			out[i] = mergeEntries(out[i], e)
			continue
		}
		merged[key] = len(out)
		e.Aliases = normalizer.OrderLongestFirst(e.Aliases)
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MaxAliasLength() > out[j].MaxAliasLength()
	})
	return out
}
