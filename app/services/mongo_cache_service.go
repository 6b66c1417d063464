package services

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/flowers-delivery/app/models"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const geocodeCacheCollection = "geocode_cache"

// MongoCacheService persistent cache backed by MongoDB with an in-memory LRU in front
type MongoCacheService struct {
	collection *mongo.Collection
	l1Cache    *lru.Cache[string, []string]
	ttl        time.Duration
	logger     *zap.Logger

	l1Hits    atomic.Int64
	mongoHits atomic.Int64
	totalMiss atomic.Int64
}

// NewMongoCacheService creates the service and its indexes. Documents expire
// after ttl through a MongoDB TTL index.
func NewMongoCacheService(db *mongo.Database, l1Size int, ttl time.Duration, logger *zap.Logger) (*MongoCacheService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if l1Size <= 0 {
		l1Size = defaultL1Size
	}

	l1Cache, err := lru.New[string, []string](l1Size)
	if err != nil {
		return nil, fmt.Errorf("create lru cache: %w", err)
	}

	collection := db.Collection(geocodeCacheCollection)

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "fingerprint", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{bson.E{Key: "last_accessed", Value: 1}},
		},
	}
	if ttl > 0 {
		indexModels = append(indexModels, mongo.IndexModel{
			Keys:    bson.D{bson.E{Key: "created_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(ttl.Seconds())),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		logger.Warn("Cannot create geocode_cache indexes", zap.Error(err))
	}

	return &MongoCacheService{
		collection: collection,
		l1Cache:    l1Cache,
		ttl:        ttl,
		logger:     logger,
	}, nil
}

// Get looks in L1 first, then MongoDB
func (mcs *MongoCacheService) Get(ctx context.Context, key string) ([]string, bool, error) {
	if candidates, ok := mcs.l1Cache.Get(key); ok {
		mcs.l1Hits.Add(1)
		return append([]string(nil), candidates...), true, nil
	}

	var doc models.GeocodeCache
	err := mcs.collection.FindOne(ctx, bson.M{"fingerprint": fingerprint(key)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		mcs.totalMiss.Add(1)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query geocode cache: %w", err)
	}
	// the TTL monitor runs about once a minute, so stale documents can still be read
	if doc.IsExpired(mcs.ttl) {
		mcs.totalMiss.Add(1)
		return nil, false, nil
	}

	mcs.mongoHits.Add(1)
	mcs.touch(ctx, doc.ID)
	mcs.l1Cache.Add(key, doc.Candidates)

	return append([]string(nil), doc.Candidates...), true, nil
}

// Set stores candidates in L1 and upserts the MongoDB document
func (mcs *MongoCacheService) Set(ctx context.Context, key string, candidates []string) error {
	if candidates == nil {
		candidates = []string{}
	}
	mcs.l1Cache.Add(key, append([]string{}, candidates...))

	fp := fingerprint(key)
	doc := models.NewGeocodeCache(fp, key, candidates)

	opts := options.Replace().SetUpsert(true)
	if _, err := mcs.collection.ReplaceOne(ctx, bson.M{"fingerprint": fp}, doc, opts); err != nil {
		return fmt.Errorf("save geocode cache: %w", err)
	}
	return nil
}

// Delete removes key from both levels
func (mcs *MongoCacheService) Delete(ctx context.Context, key string) error {
	mcs.l1Cache.Remove(key)

	if _, err := mcs.collection.DeleteOne(ctx, bson.M{"fingerprint": fingerprint(key)}); err != nil {
		return fmt.Errorf("delete geocode cache: %w", err)
	}
	return nil
}

// Clear removes every document and resets counters
func (mcs *MongoCacheService) Clear(ctx context.Context) error {
	mcs.l1Cache.Purge()

	if _, err := mcs.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear geocode cache: %w", err)
	}

	mcs.l1Hits.Store(0)
	mcs.mongoHits.Store(0)
	mcs.totalMiss.Store(0)
	return nil
}

// GetStats returns cache statistics
func (mcs *MongoCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	count, err := mcs.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count geocode cache: %w", err)
	}

	hits := mcs.l1Hits.Load() + mcs.mongoHits.Load()
	misses := mcs.totalMiss.Load()

	mcs.logger.Debug("Geocode cache stats",
		zap.Int64("l1_hits", mcs.l1Hits.Load()),
		zap.Int64("mongo_hits", mcs.mongoHits.Load()),
		zap.Int("l1_size", mcs.l1Cache.Len()),
		zap.Int64("mongo_count", count))

	return &CacheStats{
		Backend:    "mongo",
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: count,
	}, nil
}

// Close is a no-op; the MongoDB client is owned by the caller
func (mcs *MongoCacheService) Close() error {
	return nil
}

func (mcs *MongoCacheService) touch(ctx context.Context, id primitive.ObjectID) {
	update := bson.M{
		"$set": bson.M{"last_accessed": time.Now()},
		"$inc": bson.M{"access_count": 1},
	}
	if _, err := mcs.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		mcs.logger.Warn("Cannot update geocode cache access stats", zap.Error(err))
	}
}

func fingerprint(key string) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256([]byte(key)))
}
