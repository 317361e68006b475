package services

import (
	"context"
	"encoding/json"
	"sync"

	"torget-app-io/api/internal/common"
	"torget-app-io/api/pkg/models"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// CartStorage persists the full cart item collection under a fixed per-owner
// key. Writes replace the previous value; last writer wins.
type CartStorage interface {
	Save(ctx context.Context, ownerID string, items []models.CartItem) error
	Load(ctx context.Context, ownerID string) ([]models.CartItem, error)
	Delete(ctx context.Context, ownerID string) error
}

// RedisCartStorage keeps each cart as a JSON-serialized array, mirroring how
// the storefront kept it in browser storage.
type RedisCartStorage struct {
	client *redis.Client
}

func NewRedisCartStorage(client *redis.Client) *RedisCartStorage {
	return &RedisCartStorage{client: client}
}

func (s *RedisCartStorage) key(ownerID string) string {
	return common.CART_KEY_PREFIX + ownerID
}

func (s *RedisCartStorage) Save(ctx context.Context, ownerID string, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return errors.Wrap(err, "failed to serialize cart")
	}

	if err := s.client.Set(ctx, s.key(ownerID), data, 0).Err(); err != nil {
		return errors.Wrap(err, "failed to persist cart")
	}

	return nil
}

func (s *RedisCartStorage) Load(ctx context.Context, ownerID string) ([]models.CartItem, error) {
	data, err := s.client.Get(ctx, s.key(ownerID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.Wrap(err, "failed to decode stored cart")
	}

	return items, nil
}

func (s *RedisCartStorage) Delete(ctx context.Context, ownerID string) error {
	return s.client.Del(ctx, s.key(ownerID)).Err()
}

// MemoryCartStorage is a map-backed storage for tests and local development.
type MemoryCartStorage struct {
	mu    sync.Mutex
	carts map[string][]byte
}

func NewMemoryCartStorage() *MemoryCartStorage {
	return &MemoryCartStorage{carts: make(map[string][]byte)}
}

func (s *MemoryCartStorage) Save(ctx context.Context, ownerID string, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[ownerID] = data
	return nil
}

func (s *MemoryCartStorage) Load(ctx context.Context, ownerID string) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.carts[ownerID]
	if !ok {
		return nil, nil
	}

	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *MemoryCartStorage) Delete(ctx context.Context, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, ownerID)
	return nil
}
