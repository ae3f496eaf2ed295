package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vcodigo/orderlist-api/internal/domain/entity"
	"github.com/vcodigo/orderlist-api/internal/domain/valueobject"
	"github.com/vcodigo/orderlist-api/internal/usecase/group/command"
	"github.com/vcodigo/orderlist-api/tests/testutil/mocks"
)

type removeUserFromGroupsTestDeps struct {
	groupRepo     *mocks.MockGroupRepository
	userGroupRepo *mocks.MockUserGroupRepository
	txManager     *mocks.MockTransactionManager
}

func newRemoveUserFromGroupsTestDeps(t *testing.T) *removeUserFromGroupsTestDeps {
	return &removeUserFromGroupsTestDeps{
		groupRepo:     mocks.NewMockGroupRepository(t),
		userGroupRepo: mocks.NewMockUserGroupRepository(t),
		txManager:     mocks.NewMockTransactionManager(t),
	}
}

func (d *removeUserFromGroupsTestDeps) newCommand() *command.RemoveUserFromGroupsCommand {
	return command.NewRemoveUserFromGroupsCommand(d.groupRepo, d.userGroupRepo, d.txManager)
}

func TestRemoveUserFromGroupsCommand_Execute_SoleMemberAdmin_DeletesGroup(t *testing.T) {
	ctx := context.Background()
	deps := newRemoveUserFromGroupsTestDeps(t)

	userID := uuid.New()
	group := newTestGroup(t, "family")
	userGroup := newTestUserGroup(group.ID, userID, valueobject.GroupRoleAdmin)

	deps.userGroupRepo.On("CountByGroupIDs", ctx, []uuid.UUID{group.ID}).
		Return(map[uuid.UUID]int{group.ID: 1}, nil)
	deps.userGroupRepo.On("DeleteByGroupIDs", ctx, []uuid.UUID{group.ID}).Return(nil)
	deps.groupRepo.On("DeleteByIDs", ctx, []uuid.UUID{group.ID}).Return(nil)

	output, err := deps.newCommand().Execute(ctx, command.RemoveUserFromGroupsInput{
		UserID:     userID,
		Groups:     []*entity.Group{group},
		UserGroups: []*entity.UserGroup{userGroup},
	})

	require.NoError(t, err)
	require.Len(t, output.GroupsRemoved, 1)
	assert.Equal(t, group.ID, output.GroupsRemoved[0].ID)
	require.Len(t, output.UsersGroupsRemoved, 1)
	assert.Equal(t, userID, output.UsersGroupsRemoved[0].UserID)
	assert.Empty(t, output.UsersGroupsSetAsAdmin)

	deps.userGroupRepo.AssertNotCalled(t, "DeleteBatch")
	deps.userGroupRepo.AssertNotCalled(t, "FindFirstByRole")
}

func TestRemoveUserFromGroupsCommand_Execute_AdminWithUserMember_PromotesOldestUser(t *testing.T) {
	ctx := context.Background()
	deps := newRemoveUserFromGroupsTestDeps(t)

	userID := uuid.New()
	group := newTestGroup(t, "roommates")
	userGroup := newTestUserGroup(group.ID, userID, valueobject.GroupRoleAdmin)
	candidate := newTestUserGroup(group.ID, uuid.New(), valueobject.GroupRoleUser)

	deps.userGroupRepo.On("CountByGroupIDs", ctx, []uuid.UUID{group.ID}).
		Return(map[uuid.UUID]int{group.ID: 2}, nil)
	deps.userGroupRepo.On("DeleteBatch", ctx, []*entity.UserGroup{userGroup}).Return(nil)
	deps.userGroupRepo.On("FindFirstByRole", ctx, []uuid.UUID{group.ID}, valueobject.GroupRoleUser).
		Return([]*entity.UserGroup{candidate}, nil)
	deps.userGroupRepo.On("SaveBatch", ctx, []*entity.UserGroup{candidate}).Return(nil)

	output, err := deps.newCommand().Execute(ctx, command.RemoveUserFromGroupsInput{
		UserID:     userID,
		Groups:     []*entity.Group{group},
		UserGroups: []*entity.UserGroup{userGroup},
	})

	require.NoError(t, err)
	assert.Empty(t, output.GroupsRemoved)
	require.Len(t, output.UsersGroupsRemoved, 1)
	require.Len(t, output.UsersGroupsSetAsAdmin, 1)
	assert.Equal(t, candidate.UserID, output.UsersGroupsSetAsAdmin[0].UserID)
	assert.True(t, output.UsersGroupsSetAsAdmin[0].IsAdmin())

	deps.groupRepo.AssertNotCalled(t, "DeleteByIDs")
}

func TestRemoveUserFromGroupsCommand_Execute_AdminWithOtherAdmins_NoPromotion(t *testing.T) {
	ctx := context.Background()
	deps := newRemoveUserFromGroupsTestDeps(t)

	userID := uuid.New()
	group := newTestGroup(t, "admins only")
	userGroup := newTestUserGroup(group.ID, userID, valueobject.GroupRoleAdmin)

	deps.userGroupRepo.On("CountByGroupIDs", ctx, []uuid.UUID{group.ID}).
		Return(map[uuid.UUID]int{group.ID: 3}, nil)
	deps.userGroupRepo.On("DeleteBatch", ctx, []*entity.UserGroup{userGroup}).Return(nil)
	deps.userGroupRepo.On("FindFirstByRole", ctx, []uuid.UUID{group.ID}, valueobject.GroupRoleUser).
		Return([]*entity.UserGroup{}, nil)

	output, err := deps.newCommand().Execute(ctx, command.RemoveUserFromGroupsInput{
		UserID:     userID,
		Groups:     []*entity.Group{group},
		UserGroups: []*entity.UserGroup{userGroup},
	})

	require.NoError(t, err)
	assert.Empty(t, output.GroupsRemoved)
	assert.Len(t, output.UsersGroupsRemoved, 1)
	assert.Empty(t, output.UsersGroupsSetAsAdmin)

	deps.userGroupRepo.AssertNotCalled(t, "SaveBatch")
	deps.groupRepo.AssertNotCalled(t, "DeleteByIDs")
}

func TestRemoveUserFromGroupsCommand_Execute_NonAdminMember_RemovesMembershipOnly(t *testing.T) {
	ctx := context.Background()
	deps := newRemoveUserFromGroupsTestDeps(t)

	userID := uuid.New()
	group := newTestGroup(t, "book club")
	userGroup := newTestUserGroup(group.ID, userID, valueobject.GroupRoleUser)

	deps.userGroupRepo.On("DeleteBatch", ctx, []*entity.UserGroup{userGroup}).Return(nil)

	output, err := deps.newCommand().Execute(ctx, command.RemoveUserFromGroupsInput{
		UserID:     userID,
		Groups:     []*entity.Group{group},
		UserGroups: []*entity.UserGroup{userGroup},
	})

	require.NoError(t, err)
	assert.Empty(t, output.GroupsRemoved)
	require.Len(t, output.UsersGroupsRemoved, 1)
	assert.Empty(t, output.UsersGroupsSetAsAdmin)

	// 管理者として脱退するグループが無ければメンバー数は問い合わせない
	deps.userGroupRepo.AssertNotCalled(t, "CountByGroupIDs")
	deps.userGroupRepo.AssertNotCalled(t, "FindFirstByRole")
}

func TestRemoveUserFromGroupsCommand_Execute_MixedPage_ResolvesEachGroup(t *testing.T) {
	ctx := context.Background()
	deps := newRemoveUserFromGroupsTestDeps(t)

	userID := uuid.New()

	// 唯一メンバーの管理者 / 他メンバーありの管理者 / 一般メンバー
	soleGroup := newTestGroup(t, "sole")
	vacancyGroup := newTestGroup(t, "vacancy")
	memberGroup := newTestGroup(t, "member")

	soleUG := newTestUserGroup(soleGroup.ID, userID, valueobject.GroupRoleAdmin)
	vacancyUG := newTestUserGroup(vacancyGroup.ID, userID, valueobject.GroupRoleAdmin)
	memberUG := newTestUserGroup(memberGroup.ID, userID, valueobject.GroupRoleUser)
	candidate := newTestUserGroup(vacancyGroup.ID, uuid.New(), valueobject.GroupRoleUser)

	deps.userGroupRepo.On("CountByGroupIDs", ctx, []uuid.UUID{soleGroup.ID, vacancyGroup.ID}).
		Return(map[uuid.UUID]int{soleGroup.ID: 1, vacancyGroup.ID: 4}, nil)
	deps.userGroupRepo.On("DeleteByGroupIDs", ctx, []uuid.UUID{soleGroup.ID}).Return(nil)
	deps.groupRepo.On("DeleteByIDs", ctx, []uuid.UUID{soleGroup.ID}).Return(nil)
	deps.userGroupRepo.On("DeleteBatch", ctx, []*entity.UserGroup{vacancyUG, memberUG}).Return(nil)
	deps.userGroupRepo.On("FindFirstByRole", ctx, []uuid.UUID{vacancyGroup.ID}, valueobject.GroupRoleUser).
		Return([]*entity.UserGroup{candidate}, nil)
	deps.userGroupRepo.On("SaveBatch", ctx, []*entity.UserGroup{candidate}).Return(nil)

	output, err := deps.newCommand().Execute(ctx, command.RemoveUserFromGroupsInput{
		UserID:     userID,
		Groups:     []*entity.Group{soleGroup, vacancyGroup, memberGroup},
		UserGroups: []*entity.UserGroup{soleUG, vacancyUG, memberUG},
	})

	require.NoError(t, err)
	require.Len(t, output.GroupsRemoved, 1)
	assert.Equal(t, soleGroup.ID, output.GroupsRemoved[0].ID)
	assert.Len(t, output.UsersGroupsRemoved, 3)
	require.Len(t, output.UsersGroupsSetAsAdmin, 1)
	assert.True(t, output.UsersGroupsSetAsAdmin[0].IsAdmin())
}

func TestRemoveUserFromGroupsCommand_Execute_PageResolvedInSingleTransaction(t *testing.T) {
	ctx := context.Background()
	deps := newRemoveUserFromGroupsTestDeps(t)

	userID := uuid.New()
	soleGroup := newTestGroup(t, "sole")
	vacancyGroup := newTestGroup(t, "vacancy")
	soleUG := newTestUserGroup(soleGroup.ID, userID, valueobject.GroupRoleAdmin)
	vacancyUG := newTestUserGroup(vacancyGroup.ID, userID, valueobject.GroupRoleAdmin)
	candidate := newTestUserGroup(vacancyGroup.ID, uuid.New(), valueobject.GroupRoleUser)

	inTx := func(mock.Arguments) {
		assert.True(t, deps.txManager.InTx())
	}

	// メンバー数の問い合わせは読み取りのみでトランザクション外
	deps.userGroupRepo.On("CountByGroupIDs", ctx, []uuid.UUID{soleGroup.ID, vacancyGroup.ID}).
		Run(func(mock.Arguments) {
			assert.False(t, deps.txManager.InTx())
		}).
		Return(map[uuid.UUID]int{soleGroup.ID: 1, vacancyGroup.ID: 3}, nil)

	// 全ての書き込みと昇格候補の選定は同一トランザクション内
	deps.userGroupRepo.On("DeleteByGroupIDs", ctx, []uuid.UUID{soleGroup.ID}).Run(inTx).Return(nil)
	deps.groupRepo.On("DeleteByIDs", ctx, []uuid.UUID{soleGroup.ID}).Run(inTx).Return(nil)
	deps.userGroupRepo.On("DeleteBatch", ctx, []*entity.UserGroup{vacancyUG}).Run(inTx).Return(nil)
	deps.userGroupRepo.On("FindFirstByRole", ctx, []uuid.UUID{vacancyGroup.ID}, valueobject.GroupRoleUser).
		Run(inTx).
		Return([]*entity.UserGroup{candidate}, nil)
	deps.userGroupRepo.On("SaveBatch", ctx, []*entity.UserGroup{candidate}).Run(inTx).Return(nil)

	output, err := deps.newCommand().Execute(ctx, command.RemoveUserFromGroupsInput{
		UserID:     userID,
		Groups:     []*entity.Group{soleGroup, vacancyGroup},
		UserGroups: []*entity.UserGroup{soleUG, vacancyUG},
	})

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, 1, deps.txManager.TxCalls())
}

func TestRemoveUserFromGroupsCommand_Execute_CandidateAlreadyAdmin_NotPromotedAgain(t *testing.T) {
	ctx := context.Background()
	deps := newRemoveUserFromGroupsTestDeps(t)

	userID := uuid.New()
	staleGroup := newTestGroup(t, "stale")
	vacancyGroup := newTestGroup(t, "vacancy")
	staleUG := newTestUserGroup(staleGroup.ID, userID, valueobject.GroupRoleAdmin)
	vacancyUG := newTestUserGroup(vacancyGroup.ID, userID, valueobject.GroupRoleAdmin)

	// USERロールに加えて既に管理者も保持しているメンバーは昇格候補にならない
	alreadyAdmin := newTestUserGroup(staleGroup.ID, uuid.New(),
		valueobject.GroupRoleUser, valueobject.GroupRoleAdmin)
	candidate := newTestUserGroup(vacancyGroup.ID, uuid.New(), valueobject.GroupRoleUser)

	deps.userGroupRepo.On("CountByGroupIDs", ctx, []uuid.UUID{staleGroup.ID, vacancyGroup.ID}).
		Return(map[uuid.UUID]int{staleGroup.ID: 2, vacancyGroup.ID: 2}, nil)
	deps.userGroupRepo.On("DeleteBatch", ctx, []*entity.UserGroup{staleUG, vacancyUG}).Return(nil)
	deps.userGroupRepo.On("FindFirstByRole", ctx, []uuid.UUID{staleGroup.ID, vacancyGroup.ID}, valueobject.GroupRoleUser).
		Return([]*entity.UserGroup{alreadyAdmin, candidate}, nil)
	deps.userGroupRepo.On("SaveBatch", ctx, []*entity.UserGroup{candidate}).Return(nil)

	output, err := deps.newCommand().Execute(ctx, command.RemoveUserFromGroupsInput{
		UserID:     userID,
		Groups:     []*entity.Group{staleGroup, vacancyGroup},
		UserGroups: []*entity.UserGroup{staleUG, vacancyUG},
	})

	require.NoError(t, err)
	require.Len(t, output.UsersGroupsSetAsAdmin, 1)
	assert.Equal(t, candidate.UserID, output.UsersGroupsSetAsAdmin[0].UserID)
}

func TestRemoveUserFromGroupsCommand_Execute_CountFailed_ReturnsError(t *testing.T) {
	ctx := context.Background()
	deps := newRemoveUserFromGroupsTestDeps(t)

	userID := uuid.New()
	group := newTestGroup(t, "family")
	userGroup := newTestUserGroup(group.ID, userID, valueobject.GroupRoleAdmin)

	countErr := errors.New("connection reset")
	deps.userGroupRepo.On("CountByGroupIDs", ctx, []uuid.UUID{group.ID}).Return(nil, countErr)

	output, err := deps.newCommand().Execute(ctx, command.RemoveUserFromGroupsInput{
		UserID:     userID,
		Groups:     []*entity.Group{group},
		UserGroups: []*entity.UserGroup{userGroup},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, countErr)
	assert.Nil(t, output)
}

func TestRemoveUserFromGroupsCommand_Execute_DeleteBatchFailed_ReturnsError(t *testing.T) {
	ctx := context.Background()
	deps := newRemoveUserFromGroupsTestDeps(t)

	userID := uuid.New()
	group := newTestGroup(t, "book club")
	userGroup := newTestUserGroup(group.ID, userID, valueobject.GroupRoleUser)

	deleteErr := errors.New("deadlock detected")
	deps.userGroupRepo.On("DeleteBatch", ctx, []*entity.UserGroup{userGroup}).Return(deleteErr)

	output, err := deps.newCommand().Execute(ctx, command.RemoveUserFromGroupsInput{
		UserID:     userID,
		Groups:     []*entity.Group{group},
		UserGroups: []*entity.UserGroup{userGroup},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, deleteErr)
	assert.Nil(t, output)
}

func TestRemoveUserFromGroupsCommand_Execute_SaveBatchFailed_ReturnsError(t *testing.T) {
	ctx := context.Background()
	deps := newRemoveUserFromGroupsTestDeps(t)

	userID := uuid.New()
	group := newTestGroup(t, "roommates")
	userGroup := newTestUserGroup(group.ID, userID, valueobject.GroupRoleAdmin)
	candidate := newTestUserGroup(group.ID, uuid.New(), valueobject.GroupRoleUser)

	saveErr := errors.New("write timeout")
	deps.userGroupRepo.On("CountByGroupIDs", ctx, []uuid.UUID{group.ID}).
		Return(map[uuid.UUID]int{group.ID: 2}, nil)
	deps.userGroupRepo.On("DeleteBatch", ctx, []*entity.UserGroup{userGroup}).Return(nil)
	deps.userGroupRepo.On("FindFirstByRole", ctx, []uuid.UUID{group.ID}, valueobject.GroupRoleUser).
		Return([]*entity.UserGroup{candidate}, nil)
	deps.userGroupRepo.On("SaveBatch", ctx, []*entity.UserGroup{candidate}).Return(saveErr)

	output, err := deps.newCommand().Execute(ctx, command.RemoveUserFromGroupsInput{
		UserID:     userID,
		Groups:     []*entity.Group{group},
		UserGroups: []*entity.UserGroup{userGroup},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, saveErr)
	assert.Nil(t, output)
}
