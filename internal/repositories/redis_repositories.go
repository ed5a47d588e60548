package repositories

import (
	"context"
	"time"

	"golang-storefront-sync/internal/models"
	"golang-storefront-sync/pkg/cache"
)

const (
	snapshotKeyPrefix = "cart:snapshot:"
	guestKeyPrefix    = "session:guest:"

	// Snapshots are durable (no TTL); the guest id expires with the session.
	sessionTTL = 30 * 24 * time.Hour
)

type redisSnapshotRepository struct {
	cache *cache.RedisCache
}

func NewSnapshotRepository(c *cache.RedisCache) SnapshotRepository {
	return &redisSnapshotRepository{cache: c}
}

func (r *redisSnapshotRepository) Get(ctx context.Context, identity models.Identity) (*models.Cart, error) {
	var cart models.Cart
	err := r.cache.Get(ctx, snapshotKeyPrefix+identity.Key(), &cart)
	if err != nil {
		if cache.IsMiss(err) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (r *redisSnapshotRepository) Save(ctx context.Context, identity models.Identity, cart *models.Cart) error {
	return r.cache.Set(ctx, snapshotKeyPrefix+identity.Key(), cart, 0)
}

func (r *redisSnapshotRepository) Delete(ctx context.Context, identity models.Identity) error {
	return r.cache.Delete(ctx, snapshotKeyPrefix+identity.Key())
}

type redisSessionRepository struct {
	cache *cache.RedisCache
}

func NewSessionRepository(c *cache.RedisCache) SessionRepository {
	return &redisSessionRepository{cache: c}
}

func (r *redisSessionRepository) GetGuestID(ctx context.Context, sessionKey string) (string, error) {
	var guestID string
	err := r.cache.Get(ctx, guestKeyPrefix+sessionKey, &guestID)
	if err != nil {
		if cache.IsMiss(err) {
			return "", nil
		}
		return "", err
	}
	return guestID, nil
}

func (r *redisSessionRepository) SaveGuestID(ctx context.Context, sessionKey, guestID string) error {
	return r.cache.Set(ctx, guestKeyPrefix+sessionKey, guestID, sessionTTL)
}

func (r *redisSessionRepository) DeleteGuestID(ctx context.Context, sessionKey string) error {
	return r.cache.Delete(ctx, guestKeyPrefix+sessionKey)
}
