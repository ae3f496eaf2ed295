package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/vcodigo/orderlist-api/internal/domain/entity"
)

// GroupRepository はグループリポジトリのインターフェース
type GroupRepository interface {
	// 基本CRUD
	Create(ctx context.Context, group *entity.Group) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Group, error)
	Update(ctx context.Context, group *entity.Group) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByIDs は指定IDのグループをすべて取得します
	// 1件でも存在しないIDがある場合はNotFoundエラーを返します
	// （参照元メンバーシップが残っているのにグループが無い状態は整合性違反）
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Group, error)

	// DeleteByIDs は指定IDのグループを一括削除します
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error

	// FindEmptyGroupIDs はメンバーシップが1件も無い共有グループのIDを返します
	FindEmptyGroupIDs(ctx context.Context, limit int) ([]uuid.UUID, error)
}
