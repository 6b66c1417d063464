package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GeocodeCache is a persisted geocoder answer for one normalized address
type GeocodeCache struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Fingerprint  string             `bson:"fingerprint" json:"fingerprint"` // sha256 of the normalized address
	Address      string             `bson:"address" json:"address"`         // Normalized address
	Candidates   []string           `bson:"candidates" json:"candidates"`   // Geocoder candidates, in order
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	LastAccessed time.Time          `bson:"last_accessed" json:"last_accessed"`
	AccessCount  int                `bson:"access_count" json:"access_count"`
}

// NewGeocodeCache creates a document for a fresh geocoder answer.
func NewGeocodeCache(fingerprint, address string, candidates []string) *GeocodeCache {
	now := time.Now()
	return &GeocodeCache{
		Fingerprint:  fingerprint,
		Address:      address,
		Candidates:   candidates,
		CreatedAt:    now,
		LastAccessed: now,
		AccessCount:  1,
	}
}

// IsExpired reports whether the document is older than ttl.
func (gc *GeocodeCache) IsExpired(ttl time.Duration) bool {
	return ttl > 0 && time.Since(gc.CreatedAt) > ttl
}
