package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/vcodigo/orderlist-api/internal/domain/entity"
	"github.com/vcodigo/orderlist-api/internal/domain/valueobject"
)

// UserGroupRepository はメンバーシップリポジトリのインターフェース
type UserGroupRepository interface {
	// 基本CRUD
	Create(ctx context.Context, userGroup *entity.UserGroup) error
	FindByGroupAndUser(ctx context.Context, groupID, userID uuid.UUID) (*entity.UserGroup, error)
	Delete(ctx context.Context, groupID, userID uuid.UUID) error

	// FindPageByUserID は指定ユーザーのメンバーシップを(joined_at, group_id)順で
	// 先頭からlimit件取得します。処理済みページのメンバーシップはすべて削除される
	// 前提のため、先頭の再取得で全件を漏れなく走査できます
	FindPageByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.UserGroup, error)

	// FindByUserID は指定ユーザーの全メンバーシップを取得します
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.UserGroup, error)

	// FindByGroupID は指定グループの全メンバーシップを取得します
	FindByGroupID(ctx context.Context, groupID uuid.UUID) ([]*entity.UserGroup, error)

	// CountByGroupIDs は指定グループごとのメンバー数を一括取得します
	// メンバーが存在しないグループはマップに含まれません（ゼロ件はエラーではない）
	CountByGroupIDs(ctx context.Context, groupIDs []uuid.UUID) (map[uuid.UUID]int, error)

	// FindFirstByRole は指定グループごとに、指定ロールのみを保持する最古参
	// （joined_at昇順）のメンバーシップを1件ずつ返します
	// 他のロールを併せ持つメンバーは候補になりません
	// 該当者がいないグループは結果に含まれません（ゼロ件はエラーではない）
	FindFirstByRole(ctx context.Context, groupIDs []uuid.UUID, role valueobject.GroupRole) ([]*entity.UserGroup, error)

	// 一括操作
	DeleteBatch(ctx context.Context, userGroups []*entity.UserGroup) error
	SaveBatch(ctx context.Context, userGroups []*entity.UserGroup) error
	DeleteByGroupIDs(ctx context.Context, groupIDs []uuid.UUID) error

	// カウント
	CountByGroupID(ctx context.Context, groupID uuid.UUID) (int, error)
}
