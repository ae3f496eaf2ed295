package cache

import (
	"fmt"

	"github.com/google/uuid"
)

// KeyPrefix はRedisキーのプレフィックスを定義します
type KeyPrefix string

const (
	// キャッシュ
	PrefixCache KeyPrefix = "cache" // cache:{namespace}:{key}
)

// CacheKey は汎用キャッシュキーを生成します
func CacheKey(namespace, key string) string {
	return fmt.Sprintf("%s:%s:%s", PrefixCache, namespace, key)
}

// UserGroupsKey はユーザーの所属グループ一覧キャッシュのキーを生成します
func UserGroupsKey(userID uuid.UUID) string {
	return fmt.Sprintf("user_groups:%s", userID.String())
}
