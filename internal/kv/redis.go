package kv

import (
	"context"

	"github.com/redis/go-redis/v9"
)

type RedisHash struct {
	client *redis.Client
}

func NewRedis(addr, password string, db int) *RedisHash {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisHash{client: client}
}

func NewRedisFromURL(url string) (*RedisHash, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisHash{client: redis.NewClient(opts)}, nil
}

func (r *RedisHash) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisHash) Get(ctx context.Context, key, field string) ([]byte, bool, error) {
	val, err := r.client.HGet(ctx, key, field).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (r *RedisHash) GetAll(ctx context.Context, key string) (map[string][]byte, error) {
	vals, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(vals))
	for field, val := range vals {
		out[field] = []byte(val)
	}
	return out, nil
}

func (r *RedisHash) Set(ctx context.Context, key, field string, value []byte) error {
	return r.client.HSet(ctx, key, field, value).Err()
}

func (r *RedisHash) Delete(ctx context.Context, key, field string) (bool, error) {
	n, err := r.client.HDel(ctx, key, field).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
