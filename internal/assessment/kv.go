package assessment

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrKeyNotFound indica ausencia de la clave en el stash.
var ErrKeyNotFound = errors.New("session key not found")

// KV es el stash clave-valor que respalda la sesion de evaluacion. Debe
// sobrevivir reinicios del proceso dentro de la misma sesion de dispositivo.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, keys ...string) error
}

type memoryKV struct {
	mu    sync.Mutex
	items map[string][]byte
}

func NewMemoryKV() KV {
	return &memoryKV{items: make(map[string][]byte)}
}

func (s *memoryKV) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.items[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return value, nil
}

func (s *memoryKV) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *memoryKV) Del(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.items, key)
	}
	return nil
}

type redisKV struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisKV respalda el stash en Redis. El TTL acota el estado huerfano de
// sesiones abandonadas; el flujo normal borra las claves al enviar.
func NewRedisKV(client *redis.Client, ttl time.Duration) KV {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &redisKV{client: client, ttl: ttl}
}

func (s *redisKV) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	return value, err
}

func (s *redisKV) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, s.ttl).Err()
}

func (s *redisKV) Del(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}
