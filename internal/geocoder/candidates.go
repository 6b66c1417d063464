package geocoder

import (
	"context"
	"strings"

	"github.com/flowers-delivery/internal/normalizer"
)

// candidateKinds are the component kinds that can name a delivery zone.
var candidateKinds = map[string]bool{
	"locality": true,
	"district": true,
	"area":     true,
	"province": true,
}

// Candidates geocodes a free-text address and returns place names to retry
// tariff matching with, most specific description first.
func (c *Client) Candidates(ctx context.Context, address string) ([]string, error) {
	obj, err := c.lookup(ctx, address, nil)
	if err != nil {
		return nil, err
	}
	return ExtractCandidates(obj.MetaDataProperty.GeocoderMetaData, c.stopWords), nil
}

// ExtractCandidates lists the full text, the formatted address and then the
// locality-like components of meta. Candidates that normalize to nothing, to
// a stop word, or to an already emitted value are dropped. The original
// spelling of each kept candidate is returned.
func ExtractCandidates(meta Metadata, stopWords []string) []string {
	raw := make([]string, 0, 2+len(meta.Address.Components))
	if text := strings.TrimSpace(meta.Text); text != "" {
		raw = append(raw, text)
	}
	if formatted := strings.TrimSpace(meta.Address.Formatted); formatted != "" {
		raw = append(raw, formatted)
	}
	for _, comp := range meta.Address.Components {
		name := strings.TrimSpace(comp.Name)
		if name == "" {
			continue
		}
		if candidateKinds[strings.ToLower(strings.TrimSpace(comp.Kind))] {
			raw = append(raw, name)
		}
	}

	seen := make(map[string]bool, len(raw)+len(stopWords))
	for _, w := range stopWords {
		seen[normalizer.Normalize(w)] = true
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		key := normalizer.Normalize(item)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
