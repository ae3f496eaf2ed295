package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss はキャッシュミスを表すエラーです
var ErrCacheMiss = errors.New("cache miss")

// Cache は名前空間付きのJSONキャッシュを提供します
// グループ一覧のような読み取り頻度の高い集約結果を丸ごと保持する用途に
// 絞っているため、操作はGet/Set/Deleteのみです
type Cache struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

// NewCache は新しいCacheを作成します
func NewCache(client *redis.Client, namespace string, ttl time.Duration) *Cache {
	return &Cache{
		client:    client,
		namespace: namespace,
		ttl:       ttl,
	}
}

// Get はキャッシュから値を取得してdestにデコードします
// キーが無い場合はErrCacheMissを返します
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	cacheKey := CacheKey(c.namespace, key)

	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get from cache: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal cache data: %w", err)
	}

	return nil
}

// Set は値をJSONエンコードして名前空間のTTLで保存します
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	cacheKey := CacheKey(c.namespace, key)

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	return nil
}

// Delete はキャッシュから値を削除します
// キーが存在しない場合もエラーにしません
func (c *Cache) Delete(ctx context.Context, key string) error {
	cacheKey := CacheKey(c.namespace, key)
	return c.client.Del(ctx, cacheKey).Err()
}
