// Package cache 定义了一个最小的带过期时间的键值缓存接口。
// 站点设置缓存和访问去重账本都建立在这个接口之上，
// 这样业务层不感知 Redis，测试时可以用内存实现替换。
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss 表示键不存在（或已过期）。
var ErrCacheMiss = errors.New("cache: key not found")

// Cache 是缓存协作方的抽象：get 返回值或 ErrCacheMiss，set 带 TTL。
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type redisCache struct {
	client *redis.Client
}

// NewRedisCache 用给定的 Redis 客户端创建一个 Cache 实现。
func NewRedisCache(client *redis.Client) Cache {
	return &redisCache{client: client}
}

// Get 读取键对应的值，键不存在时返回 ErrCacheMiss。
func (c *redisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set 写入键值并设置过期时间。
func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Delete 删除指定的键，键不存在不视为错误。
func (c *redisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}
