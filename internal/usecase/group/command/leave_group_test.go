package command_test

import (
	"context"
	"errors"
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

type leaveGroupTestDeps struct {
	groupRepo     *mocks.MockGroupRepository
	userGroupRepo *mocks.MockUserGroupRepository
	txManager     *mocks.MockTransactionManager
}

func newLeaveGroupTestDeps(t *testing.T) *leaveGroupTestDeps {
	return &leaveGroupTestDeps{
		groupRepo:     mocks.NewMockGroupRepository(t),
		userGroupRepo: mocks.NewMockUserGroupRepository(t),
		txManager:     mocks.NewMockTransactionManager(t),
	}
}

func (d *leaveGroupTestDeps) newCommand() *command.LeaveGroupCommand {
	return command.NewLeaveGroupCommand(d.groupRepo, d.userGroupRepo, d.txManager)
}

func TestLeaveGroupCommand_Execute_SoleMember_DeletesGroup(t *testing.T) {
	ctx := context.Background()
	deps := newLeaveGroupTestDeps(t)

	userID := uuid.New()
	group := newTestGroup(t, "family")
	userGroup := newTestUserGroup(group.ID, userID, valueobject.GroupRoleAdmin)

	deps.groupRepo.On("FindByID", ctx, group.ID).Return(group, nil)
	deps.userGroupRepo.On("FindByGroupAndUser", ctx, group.ID, userID).Return(userGroup, nil)
	deps.userGroupRepo.On("CountByGroupID", ctx, group.ID).Return(1, nil)
	deps.userGroupRepo.On("Delete", ctx, group.ID, userID).Return(nil)
	deps.groupRepo.On("Delete", ctx, group.ID).Return(nil)

	output, err := deps.newCommand().Execute(ctx, command.LeaveGroupInput{
		GroupID: group.ID,
		UserID:  userID,
	})

	require.NoError(t, err)
	assert.Equal(t, group.ID, output.LeftGroupID)
	assert.True(t, output.GroupDeleted)
}

func TestLeaveGroupCommand_Execute_SoleAdminWithOtherMembers_ReturnsForbidden(t *testing.T) {
	ctx := context.Background()
	deps := newLeaveGroupTestDeps(t)

	userID := uuid.New()
	group := newTestGroup(t, "roommates")
	userGroup := newTestUserGroup(group.ID, userID, valueobject.GroupRoleAdmin)
	other := newTestUserGroup(group.ID, uuid.New(), valueobject.GroupRoleUser)

	deps.groupRepo.On("FindByID", ctx, group.ID).Return(group, nil)
	deps.userGroupRepo.On("FindByGroupAndUser", ctx, group.ID, userID).Return(userGroup, nil)
	deps.userGroupRepo.On("CountByGroupID", ctx, group.ID).Return(2, nil)
	deps.userGroupRepo.On("FindByGroupID", ctx, group.ID).
		Return([]*entity.UserGroup{userGroup, other}, nil)

	output, err := deps.newCommand().Execute(ctx, command.LeaveGroupInput{
		GroupID: group.ID,
		UserID:  userID,
	})

	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
	assert.Nil(t, output)
	deps.userGroupRepo.AssertNotCalled(t, "Delete")
}

func TestLeaveGroupCommand_Execute_AdminWithAnotherAdmin_RemovesMembership(t *testing.T) {
	ctx := context.Background()
	deps := newLeaveGroupTestDeps(t)

	userID := uuid.New()
	group := newTestGroup(t, "roommates")
	userGroup := newTestUserGroup(group.ID, userID, valueobject.GroupRoleAdmin)
	otherAdmin := newTestUserGroup(group.ID, uuid.New(), valueobject.GroupRoleAdmin)

	deps.groupRepo.On("FindByID", ctx, group.ID).Return(group, nil)
	deps.userGroupRepo.On("FindByGroupAndUser", ctx, group.ID, userID).Return(userGroup, nil)
	deps.userGroupRepo.On("CountByGroupID", ctx, group.ID).Return(2, nil)
	deps.userGroupRepo.On("FindByGroupID", ctx, group.ID).
		Return([]*entity.UserGroup{userGroup, otherAdmin}, nil)
	deps.userGroupRepo.On("Delete", ctx, group.ID, userID).Return(nil)

	output, err := deps.newCommand().Execute(ctx, command.LeaveGroupInput{
		GroupID: group.ID,
		UserID:  userID,
	})

	require.NoError(t, err)
	assert.False(t, output.GroupDeleted)
	deps.groupRepo.AssertNotCalled(t, "Delete")
}

func TestLeaveGroupCommand_Execute_RegularMember_RemovesMembershipOnly(t *testing.T) {
	ctx := context.Background()
	deps := newLeaveGroupTestDeps(t)

	userID := uuid.New()
	group := newTestGroup(t, "book club")
	userGroup := newTestUserGroup(group.ID, userID, valueobject.GroupRoleUser)

	deps.groupRepo.On("FindByID", ctx, group.ID).Return(group, nil)
	deps.userGroupRepo.On("FindByGroupAndUser", ctx, group.ID, userID).Return(userGroup, nil)
	deps.userGroupRepo.On("CountByGroupID", ctx, group.ID).Return(3, nil)
	deps.userGroupRepo.On("Delete", ctx, group.ID, userID).Return(nil)

	output, err := deps.newCommand().Execute(ctx, command.LeaveGroupInput{
		GroupID: group.ID,
		UserID:  userID,
	})

	require.NoError(t, err)
	assert.False(t, output.GroupDeleted)
	deps.userGroupRepo.AssertNotCalled(t, "FindByGroupID")
	deps.groupRepo.AssertNotCalled(t, "Delete")
}

func TestLeaveGroupCommand_Execute_GroupNotFound_ReturnsError(t *testing.T) {
	ctx := context.Background()
	deps := newLeaveGroupTestDeps(t)

	groupID := uuid.New()
	userID := uuid.New()
	deps.groupRepo.On("FindByID", ctx, groupID).Return(nil, apperror.NewNotFoundError("group"))

	output, err := deps.newCommand().Execute(ctx, command.LeaveGroupInput{
		GroupID: groupID,
		UserID:  userID,
	})

	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)
	assert.Nil(t, output)
	deps.userGroupRepo.AssertNotCalled(t, "FindByGroupAndUser")
}
