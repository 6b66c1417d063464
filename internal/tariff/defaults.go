package tariff

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed data/defaults.yaml
var defaultsYAML []byte

type defaultsFile struct {
	Tariffs []struct {
		Label   string   `yaml:"label"`
		Cost    string   `yaml:"cost"`
		Aliases []string `yaml:"aliases"`
	} `yaml:"tariffs"`
}

var builtinDefaults = mustParseDefaults(defaultsYAML)

// Defaults returns a fresh copy of the built-in zones.
func Defaults() []Entry {
	out := make([]Entry, len(builtinDefaults))
	for i, e := range builtinDefaults {
		out[i] = e.clone()
	}
	return out
}

func parseDefaults(data []byte) ([]Entry, error) {
	var file defaultsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode defaults: %w", err)
	}

	entries := make([]Entry, 0, len(file.Tariffs))
	for _, t := range file.Tariffs {
		var cost decimal.NullDecimal
		if raw := strings.TrimSpace(t.Cost); raw != "" {
			d, err := ParseFlatCost(raw)
			if err != nil {
				return nil, fmt.Errorf("default tariff %q: %w", t.Label, err)
			}
			cost = Priced(d)
		}
		entry := NewEntry(t.Label, cost, t.Aliases...)
		if len(entry.Aliases) == 0 {
			return nil, fmt.Errorf("default tariff %q has no aliases", t.Label)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func mustParseDefaults(data []byte) []Entry {
	entries, err := parseDefaults(data)
	if err != nil {
		panic(err)
	}
	return entries
}
