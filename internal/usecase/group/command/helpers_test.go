package command_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vcodigo/orderlist-api/internal/domain/entity"
	"github.com/vcodigo/orderlist-api/internal/domain/valueobject"
)

// newTestGroup は共有グループのフィクスチャを作成します
func newTestGroup(t *testing.T, name string) *entity.Group {
	t.Helper()

	groupName, err := valueobject.NewGroupName(name)
	require.NoError(t, err)

	return entity.ReconstructGroup(
		uuid.New(),
		groupName,
		"test group",
		valueobject.GroupTypeGroup,
		time.Now(),
	)
}

// newTestUserGroup はメンバーシップのフィクスチャを作成します
func newTestUserGroup(groupID, userID uuid.UUID, roles ...valueobject.GroupRole) *entity.UserGroup {
	return entity.ReconstructUserGroup(groupID, userID, roles, time.Now())
}
