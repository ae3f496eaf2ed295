package entity_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/vcodigo/orderlist-api/internal/domain/entity"
	"github.com/vcodigo/orderlist-api/internal/domain/valueobject"
)

func TestUserGroup_HasRole(t *testing.T) {
	ug := entity.NewUserGroup(uuid.New(), uuid.New(), []valueobject.GroupRole{valueobject.GroupRoleUser})

	assert.True(t, ug.HasRole(valueobject.GroupRoleUser))
	assert.False(t, ug.HasRole(valueobject.GroupRoleAdmin))
}

func TestUserGroup_IsAdmin(t *testing.T) {
	admin := entity.NewAdminUserGroup(uuid.New(), uuid.New())
	member := entity.NewUserGroup(uuid.New(), uuid.New(), []valueobject.GroupRole{valueobject.GroupRoleUser})

	assert.True(t, admin.IsAdmin())
	assert.False(t, member.IsAdmin())
}

func TestUserGroup_GrantAdmin_AppendsRole(t *testing.T) {
	ug := entity.NewUserGroup(uuid.New(), uuid.New(), []valueobject.GroupRole{valueobject.GroupRoleUser})

	ug.GrantAdmin()

	assert.True(t, ug.IsAdmin())
	assert.True(t, ug.HasRole(valueobject.GroupRoleUser))
}

func TestUserGroup_GrantAdmin_Idempotent(t *testing.T) {
	ug := entity.NewAdminUserGroup(uuid.New(), uuid.New())

	ug.GrantAdmin()
	ug.GrantAdmin()

	assert.Equal(t, []valueobject.GroupRole{valueobject.GroupRoleAdmin}, ug.Roles)
}

func TestUserGroup_IsMember(t *testing.T) {
	userID := uuid.New()
	ug := entity.NewAdminUserGroup(uuid.New(), userID)

	assert.True(t, ug.IsMember(userID))
	assert.False(t, ug.IsMember(uuid.New()))
}

func TestUserGroup_BelongsToGroup(t *testing.T) {
	groupID := uuid.New()
	ug := entity.NewAdminUserGroup(groupID, uuid.New())

	assert.True(t, ug.BelongsToGroup(groupID))
	assert.False(t, ug.BelongsToGroup(uuid.New()))
}
