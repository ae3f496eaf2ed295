package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/vcodigo/orderlist-api/internal/domain/valueobject"
)

// UserGroup はグループメンバーシップエンティティ
// 識別子は (GroupID, UserID) の複合キーです
type UserGroup struct {
	GroupID  uuid.UUID
	UserID   uuid.UUID
	Roles    []valueobject.GroupRole
	JoinedAt time.Time
}

// NewUserGroup は新しいメンバーシップを作成します
func NewUserGroup(
	groupID uuid.UUID,
	userID uuid.UUID,
	roles []valueobject.GroupRole,
) *UserGroup {
	return &UserGroup{
		GroupID:  groupID,
		UserID:   userID,
		Roles:    roles,
		JoinedAt: time.Now(),
	}
}

// NewAdminUserGroup は管理者用のメンバーシップを作成します
func NewAdminUserGroup(groupID uuid.UUID, userID uuid.UUID) *UserGroup {
	return NewUserGroup(groupID, userID, []valueobject.GroupRole{valueobject.GroupRoleAdmin})
}

// ReconstructUserGroup はDBからメンバーシップを復元します
func ReconstructUserGroup(
	groupID uuid.UUID,
	userID uuid.UUID,
	roles []valueobject.GroupRole,
	joinedAt time.Time,
) *UserGroup {
	return &UserGroup{
		GroupID:  groupID,
		UserID:   userID,
		Roles:    roles,
		JoinedAt: joinedAt,
	}
}

// HasRole は指定ロールを保持しているかを判定します
func (ug *UserGroup) HasRole(role valueobject.GroupRole) bool {
	for _, r := range ug.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin は管理者ロールを保持しているかを判定します
func (ug *UserGroup) IsAdmin() bool {
	return ug.HasRole(valueobject.GroupRoleAdmin)
}

// GrantAdmin は管理者ロールを付与します
// 既に保持している場合は何もしません
func (ug *UserGroup) GrantAdmin() {
	if ug.IsAdmin() {
		return
	}
	ug.Roles = append(ug.Roles, valueobject.GroupRoleAdmin)
}

// IsMember は指定ユーザーのメンバーシップかを判定します
func (ug *UserGroup) IsMember(userID uuid.UUID) bool {
	return ug.UserID == userID
}

// BelongsToGroup は指定グループのメンバーシップかを判定します
func (ug *UserGroup) BelongsToGroup(groupID uuid.UUID) bool {
	return ug.GroupID == groupID
}
