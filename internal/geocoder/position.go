package geocoder

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Coordinates resolves an address to a position.
func (c *Client) Coordinates(ctx context.Context, address string) (Point, error) {
	obj, err := c.lookup(ctx, address, nil)
	if err != nil {
		return Point{}, err
	}
	return parsePos(obj.Point.Pos)
}

// Reverse finds the nearest house to a position.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (ReverseResult, error) {
	// the geocoder expects longitude first
	query := strconv.FormatFloat(lon, 'f', -1, 64) + "," + strconv.FormatFloat(lat, 'f', -1, 64)

	obj, err := c.lookup(ctx, query, map[string]string{"kind": "house"})
	if err != nil {
		return ReverseResult{}, err
	}

	meta := obj.MetaDataProperty.GeocoderMetaData
	names := make([]string, 0, len(meta.Address.Components))
	for _, comp := range meta.Address.Components {
		names = append(names, comp.Name)
	}

	return ReverseResult{
		FormattedAddress: meta.Text,
		FullAddress:      strings.Join(names, ", "),
		Components:       meta.Address.Components,
	}, nil
}

// parsePos parses a "lon lat" position string.
func parsePos(pos string) (Point, error) {
	parts := strings.Fields(pos)
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("invalid position %q", pos)
	}
	lon, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Point{}, fmt.Errorf("invalid longitude %q: %w", parts[0], err)
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Point{}, fmt.Errorf("invalid latitude %q: %w", parts[1], err)
	}
	return Point{Lat: lat, Lon: lon}, nil
}
