package command_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcodigo/orderlist-api/internal/domain/entity"
	"github.com/vcodigo/orderlist-api/internal/domain/valueobject"
	"github.com/vcodigo/orderlist-api/internal/usecase/group/command"
	"github.com/vcodigo/orderlist-api/pkg/apperror"
	"github.com/vcodigo/orderlist-api/tests/testutil/mocks"
)

type removeAllUserGroupsTestDeps struct {
	groupRepo     *mocks.MockGroupRepository
	userGroupRepo *mocks.MockUserGroupRepository
	txManager     *mocks.MockTransactionManager
}

func newRemoveAllUserGroupsTestDeps(t *testing.T) *removeAllUserGroupsTestDeps {
	return &removeAllUserGroupsTestDeps{
		groupRepo:     mocks.NewMockGroupRepository(t),
		userGroupRepo: mocks.NewMockUserGroupRepository(t),
		txManager:     mocks.NewMockTransactionManager(t),
	}
}

func (d *removeAllUserGroupsTestDeps) newCommand() *command.RemoveAllUserGroupsCommand {
	resolver := command.NewRemoveUserFromGroupsCommand(d.groupRepo, d.userGroupRepo, d.txManager)
	return command.NewRemoveAllUserGroupsCommand(d.groupRepo, d.userGroupRepo, resolver)
}

// newUserRolePage は一般メンバーのメンバーシップn件と対応グループを作成します
func newUserRolePage(t *testing.T, userID uuid.UUID, n int) ([]*entity.Group, []*entity.UserGroup, []uuid.UUID) {
	t.Helper()

	groups := make([]*entity.Group, n)
	userGroups := make([]*entity.UserGroup, n)
	groupIDs := make([]uuid.UUID, n)
	for i := 0; i < n; i++ {
		groups[i] = newTestGroup(t, fmt.Sprintf("group-%d", i))
		userGroups[i] = newTestUserGroup(groups[i].ID, userID, valueobject.GroupRoleUser)
		groupIDs[i] = groups[i].ID
	}
	return groups, userGroups, groupIDs
}

func TestRemoveAllUserGroupsCommand_ExecuteAll_ThreePages_AggregatesResults(t *testing.T) {
	ctx := context.Background()
	deps := newRemoveAllUserGroupsTestDeps(t)

	userID := uuid.New()

	// 250件のメンバーシップは100/100/50の3ページで解決される
	pageSizes := []int{command.CascadePageSize, command.CascadePageSize, 50}
	for _, size := range pageSizes {
		groups, userGroups, groupIDs := newUserRolePage(t, userID, size)

		deps.userGroupRepo.On("FindPageByUserID", ctx, userID, command.CascadePageSize).
			Return(userGroups, nil).Once()
		deps.groupRepo.On("FindByIDs", ctx, groupIDs).Return(groups, nil).Once()
		deps.userGroupRepo.On("DeleteBatch", ctx, userGroups).Return(nil).Once()
	}

	output, err := deps.newCommand().ExecuteAll(ctx, command.RemoveAllUserGroupsInput{UserID: userID})

	require.NoError(t, err)
	assert.Equal(t, 3, output.Pages)
	assert.Len(t, output.UsersGroupsRemoved, 250)
	assert.Empty(t, output.GroupsRemoved)
	assert.Empty(t, output.UsersGroupsSetAsAdmin)
}

func TestRemoveAllUserGroupsCommand_Execute_FullLastPage_RequeriesOnceMore(t *testing.T) {
	ctx := context.Background()
	deps := newRemoveAllUserGroupsTestDeps(t)

	userID := uuid.New()
	groups, userGroups, groupIDs := newUserRolePage(t, userID, command.CascadePageSize)

	// ちょうど100件の場合は再取得で空ページを確認してから終了する
	deps.userGroupRepo.On("FindPageByUserID", ctx, userID, command.CascadePageSize).
		Return(userGroups, nil).Once()
	deps.groupRepo.On("FindByIDs", ctx, groupIDs).Return(groups, nil).Once()
	deps.userGroupRepo.On("DeleteBatch", ctx, userGroups).Return(nil).Once()
	deps.userGroupRepo.On("FindPageByUserID", ctx, userID, command.CascadePageSize).
		Return([]*entity.UserGroup{}, nil).Once()

	output, err := deps.newCommand().ExecuteAll(ctx, command.RemoveAllUserGroupsInput{UserID: userID})

	require.NoError(t, err)
	assert.Equal(t, 1, output.Pages)
	assert.Len(t, output.UsersGroupsRemoved, command.CascadePageSize)
}

func TestRemoveAllUserGroupsCommand_Execute_NoMemberships_YieldsNothing(t *testing.T) {
	ctx := context.Background()
	deps := newRemoveAllUserGroupsTestDeps(t)

	userID := uuid.New()
	deps.userGroupRepo.On("FindPageByUserID", ctx, userID, command.CascadePageSize).
		Return([]*entity.UserGroup{}, nil).Once()

	yielded := 0
	for _, err := range deps.newCommand().Execute(ctx, command.RemoveAllUserGroupsInput{UserID: userID}) {
		require.NoError(t, err)
		yielded++
	}

	assert.Zero(t, yielded)
	deps.groupRepo.AssertNotCalled(t, "FindByIDs")
	deps.userGroupRepo.AssertNotCalled(t, "DeleteBatch")
}

func TestRemoveAllUserGroupsCommand_Execute_MissingGroup_AbortsCascade(t *testing.T) {
	ctx := context.Background()
	deps := newRemoveAllUserGroupsTestDeps(t)

	userID := uuid.New()
	groupID := uuid.New()
	userGroup := newTestUserGroup(groupID, userID, valueobject.GroupRoleUser)

	// 参照先グループの欠落はデータ不整合として打ち切る
	deps.userGroupRepo.On("FindPageByUserID", ctx, userID, command.CascadePageSize).
		Return([]*entity.UserGroup{userGroup}, nil).Once()
	deps.groupRepo.On("FindByIDs", ctx, []uuid.UUID{groupID}).
		Return(nil, apperror.NewNotFoundError("group")).Once()

	var yieldedErr error
	for output, err := range deps.newCommand().Execute(ctx, command.RemoveAllUserGroupsInput{UserID: userID}) {
		require.Nil(t, output)
		yieldedErr = err
	}

	require.Error(t, yieldedErr)
	var appErr *apperror.AppError
	require.True(t, errors.As(yieldedErr, &appErr))
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)
	deps.userGroupRepo.AssertNotCalled(t, "DeleteBatch")
}

func TestRemoveAllUserGroupsCommand_Execute_FindPageFailed_YieldsError(t *testing.T) {
	ctx := context.Background()
	deps := newRemoveAllUserGroupsTestDeps(t)

	userID := uuid.New()
	pageErr := errors.New("connection refused")
	deps.userGroupRepo.On("FindPageByUserID", ctx, userID, command.CascadePageSize).
		Return(nil, pageErr).Once()

	output, err := deps.newCommand().ExecuteAll(ctx, command.RemoveAllUserGroupsInput{UserID: userID})

	require.Error(t, err)
	assert.ErrorIs(t, err, pageErr)
	assert.Nil(t, output)
}

func TestRemoveAllUserGroupsCommand_Execute_ConsumerStops_NoFurtherPages(t *testing.T) {
	ctx := context.Background()
	deps := newRemoveAllUserGroupsTestDeps(t)

	userID := uuid.New()
	groups, userGroups, groupIDs := newUserRolePage(t, userID, command.CascadePageSize)

	// 消費を止めたら次のページは取得されない
	deps.userGroupRepo.On("FindPageByUserID", ctx, userID, command.CascadePageSize).
		Return(userGroups, nil).Once()
	deps.groupRepo.On("FindByIDs", ctx, groupIDs).Return(groups, nil).Once()
	deps.userGroupRepo.On("DeleteBatch", ctx, userGroups).Return(nil).Once()

	yielded := 0
	for output, err := range deps.newCommand().Execute(ctx, command.RemoveAllUserGroupsInput{UserID: userID}) {
		require.NoError(t, err)
		require.NotNil(t, output)
		yielded++
		break
	}

	assert.Equal(t, 1, yielded)
	deps.userGroupRepo.AssertNumberOfCalls(t, "FindPageByUserID", 1)
}
