package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/vcodigo/orderlist-api/internal/domain/valueobject"
)

// Group はグループエンティティ（集約ルート）
// Note: Groupは論理削除をサポートしません。削除は物理削除のみです。
type Group struct {
	ID          uuid.UUID
	Name        valueobject.GroupName
	Description string
	Type        valueobject.GroupType
	CreatedAt   time.Time
}

// NewGroup は新しいグループを作成します
func NewGroup(
	name valueobject.GroupName,
	description string,
	groupType valueobject.GroupType,
) *Group {
	return &Group{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Type:        groupType,
		CreatedAt:   time.Now(),
	}
}

// ReconstructGroup はDBからグループを復元します
func ReconstructGroup(
	id uuid.UUID,
	name valueobject.GroupName,
	description string,
	groupType valueobject.GroupType,
	createdAt time.Time,
) *Group {
	return &Group{
		ID:          id,
		Name:        name,
		Description: description,
		Type:        groupType,
		CreatedAt:   createdAt,
	}
}

// IsShared は複数ユーザーで共有する種別かを判定します
func (g *Group) IsShared() bool {
	return g.Type.IsShared()
}

// Rename はグループ名を変更します
func (g *Group) Rename(newName valueobject.GroupName) {
	g.Name = newName
}

// UpdateDescription は説明を更新します
func (g *Group) UpdateDescription(description string) {
	g.Description = description
}
