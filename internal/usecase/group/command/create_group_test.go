package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vcodigo/orderlist-api/internal/domain/valueobject"
	"github.com/vcodigo/orderlist-api/internal/usecase/group/command"
	"github.com/vcodigo/orderlist-api/pkg/apperror"
	"github.com/vcodigo/orderlist-api/tests/testutil/mocks"
)

type createGroupTestDeps struct {
	groupRepo     *mocks.MockGroupRepository
	userGroupRepo *mocks.MockUserGroupRepository
	txManager     *mocks.MockTransactionManager
}

func newCreateGroupTestDeps(t *testing.T) *createGroupTestDeps {
	return &createGroupTestDeps{
		groupRepo:     mocks.NewMockGroupRepository(t),
		userGroupRepo: mocks.NewMockUserGroupRepository(t),
		txManager:     mocks.NewMockTransactionManager(t),
	}
}

func (d *createGroupTestDeps) newCommand() *command.CreateGroupCommand {
	return command.NewCreateGroupCommand(d.groupRepo, d.userGroupRepo, d.txManager)
}

func TestCreateGroupCommand_Execute_Success_CreatorBecomesAdmin(t *testing.T) {
	ctx := context.Background()
	deps := newCreateGroupTestDeps(t)

	creatorID := uuid.New()
	deps.groupRepo.On("Create", ctx, mock.AnythingOfType("*entity.Group")).Return(nil)
	deps.userGroupRepo.On("Create", ctx, mock.AnythingOfType("*entity.UserGroup")).Return(nil)

	output, err := deps.newCommand().Execute(ctx, command.CreateGroupInput{
		Name:        "weekend shopping",
		Description: "shared list",
		CreatorID:   creatorID,
	})

	require.NoError(t, err)
	assert.Equal(t, "weekend shopping", output.Group.Name.Value())
	assert.Equal(t, valueobject.GroupTypeGroup, output.Group.Type)
	assert.Equal(t, output.Group.ID, output.UserGroup.GroupID)
	assert.Equal(t, creatorID, output.UserGroup.UserID)
	assert.True(t, output.UserGroup.IsAdmin())
}

func TestCreateGroupCommand_Execute_EmptyName_ReturnsValidationError(t *testing.T) {
	ctx := context.Background()
	deps := newCreateGroupTestDeps(t)

	output, err := deps.newCommand().Execute(ctx, command.CreateGroupInput{
		Name:      "   ",
		CreatorID: uuid.New(),
	})

	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeValidationError, appErr.Code)
	assert.Nil(t, output)
	deps.groupRepo.AssertNotCalled(t, "Create")
}

func TestCreateGroupCommand_Execute_InvalidType_ReturnsValidationError(t *testing.T) {
	ctx := context.Background()
	deps := newCreateGroupTestDeps(t)

	output, err := deps.newCommand().Execute(ctx, command.CreateGroupInput{
		Name:      "weekend shopping",
		Type:      "organization",
		CreatorID: uuid.New(),
	})

	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeValidationError, appErr.Code)
	assert.Nil(t, output)
}

func TestCreateGroupCommand_Execute_MembershipCreateFailed_ReturnsError(t *testing.T) {
	ctx := context.Background()
	deps := newCreateGroupTestDeps(t)

	createErr := errors.New("unique violation")
	deps.groupRepo.On("Create", ctx, mock.AnythingOfType("*entity.Group")).Return(nil)
	deps.userGroupRepo.On("Create", ctx, mock.AnythingOfType("*entity.UserGroup")).Return(createErr)

	output, err := deps.newCommand().Execute(ctx, command.CreateGroupInput{
		Name:      "weekend shopping",
		CreatorID: uuid.New(),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, createErr)
	assert.Nil(t, output)
}
