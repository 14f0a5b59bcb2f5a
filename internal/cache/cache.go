package cache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache guarda resultados de cálculo serializados.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
}

// RedisCache é o cache compartilhado entre instâncias da API.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(addr string, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

// Ping verifica a conexão na subida da API.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *RedisCache) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, r.ttl).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

type item struct {
	valor  string
	expira time.Time
}

// MemoryCache é usado quando não há Redis configurado e nos testes.
type MemoryCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	dados map[string]item
	agora func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:   ttl,
		dados: make(map[string]item),
		agora: time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.dados[key]
	if !ok {
		return "", false
	}
	if m.ttl > 0 && m.agora().After(it.expira) {
		delete(m.dados, key)
		return "", false
	}
	return it.valor, true
}

func (m *MemoryCache) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dados[key] = item{valor: value, expira: m.agora().Add(m.ttl)}
	return nil
}
