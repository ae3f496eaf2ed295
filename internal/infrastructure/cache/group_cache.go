package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/vcodigo/orderlist-api/internal/usecase/group/query"
)

const (
	groupCacheNamespace = "group"
	userGroupsTTL       = 5 * time.Minute
)

// GroupCache はユーザーの所属グループ一覧のキャッシュを提供します
type GroupCache struct {
	cache *Cache
}

// NewGroupCache は新しいGroupCacheを作成します
func NewGroupCache(client *RedisClient) *GroupCache {
	return NewGroupCacheFromClient(client.Client())
}

// NewGroupCacheFromClient はredis.Clientから直接GroupCacheを作成します（テスト用）
func NewGroupCacheFromClient(client *redis.Client) *GroupCache {
	return &GroupCache{
		cache: NewCache(client, groupCacheNamespace, userGroupsTTL),
	}
}

var _ query.UserGroupsCache = (*GroupCache)(nil)

// GetUserGroups はユーザーの所属グループ一覧をキャッシュから取得します
// ミスは (nil, false, nil) で返します
func (c *GroupCache) GetUserGroups(ctx context.Context, userID uuid.UUID) ([]*query.GroupWithUserGroup, bool, error) {
	var groups []*query.GroupWithUserGroup
	err := c.cache.Get(ctx, UserGroupsKey(userID), &groups)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return groups, true, nil
}

// SetUserGroups はユーザーの所属グループ一覧をキャッシュします
func (c *GroupCache) SetUserGroups(ctx context.Context, userID uuid.UUID, groups []*query.GroupWithUserGroup) error {
	return c.cache.Set(ctx, UserGroupsKey(userID), groups)
}

// InvalidateUserGroups はユーザーの所属グループ一覧キャッシュを破棄します
func (c *GroupCache) InvalidateUserGroups(ctx context.Context, userID uuid.UUID) error {
	return c.cache.Delete(ctx, UserGroupsKey(userID))
}
