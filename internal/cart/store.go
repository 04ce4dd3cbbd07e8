package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store persiste un carrito por usuario.
type Store interface {
	Get(ctx context.Context, userID string) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
	Delete(ctx context.Context, userID string) error
}

func emptyCart(userID string) *Cart {
	return &Cart{UserID: userID, Items: []Item{}}
}

func key(userID string) string { return "cart:" + userID }

// RedisStore guarda el carrito como JSON con TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, userID string) (*Cart, error) {
	raw, err := s.rdb.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return emptyCart(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cart get: %w", err)
	}

	var c Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("cart decode: %w", err)
	}
	if c.Items == nil {
		c.Items = []Item{}
	}
	return &c, nil
}

func (s *RedisStore) Save(ctx context.Context, c *Cart) error {
	c.UpdatedAt = time.Now().UTC()
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("cart encode: %w", err)
	}
	if err := s.rdb.Set(ctx, key(c.UserID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("cart save: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	if err := s.rdb.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("cart delete: %w", err)
	}
	return nil
}

// MemoryStore se usa cuando no hay REDIS_ADDR y en tests.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]Cart)}
}

func (s *MemoryStore) Get(_ context.Context, userID string) (*Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.m[userID]
	if !ok {
		return emptyCart(userID), nil
	}
	c.Items = append([]Item{}, c.Items...)
	return &c, nil
}

func (s *MemoryStore) Save(_ context.Context, c *Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	cp.UpdatedAt = time.Now().UTC()
	cp.Items = append([]Item{}, c.Items...)
	s.m[c.UserID] = cp
	c.UpdatedAt = cp.UpdatedAt
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, userID)
	return nil
}
