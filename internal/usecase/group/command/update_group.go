package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/vcodigo/orderlist-api/internal/domain/entity"
	"github.com/vcodigo/orderlist-api/internal/domain/repository"
	"github.com/vcodigo/orderlist-api/internal/domain/valueobject"
	"github.com/vcodigo/orderlist-api/pkg/apperror"
)

// UpdateGroupInput はグループ更新の入力を定義します
// Nameが空の場合は名前を変更しません。Descriptionがnilの場合は説明を変更しません
type UpdateGroupInput struct {
	GroupID     uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description *string
}

// UpdateGroupOutput はグループ更新の出力を定義します
type UpdateGroupOutput struct {
	Group *entity.Group
}

// UpdateGroupCommand はグループ更新コマンドです
// 更新できるのは管理者メンバーのみです
type UpdateGroupCommand struct {
	groupRepo     repository.GroupRepository
	userGroupRepo repository.UserGroupRepository
}

// NewUpdateGroupCommand は新しいUpdateGroupCommandを作成します
func NewUpdateGroupCommand(
	groupRepo repository.GroupRepository,
	userGroupRepo repository.UserGroupRepository,
) *UpdateGroupCommand {
	return &UpdateGroupCommand{
		groupRepo:     groupRepo,
		userGroupRepo: userGroupRepo,
	}
}

// Execute はグループ更新を実行します
func (c *UpdateGroupCommand) Execute(ctx context.Context, input UpdateGroupInput) (*UpdateGroupOutput, error) {
	// 1. グループの取得
	group, err := c.groupRepo.FindByID(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}

	// 2. 管理者権限の確認
	userGroup, err := c.userGroupRepo.FindByGroupAndUser(ctx, input.GroupID, input.UserID)
	if err != nil {
		return nil, apperror.NewForbiddenError("you are not a member of this group")
	}
	if !userGroup.IsAdmin() {
		return nil, apperror.NewForbiddenError("only group admins can update the group")
	}

	// 3. 変更の適用
	if input.Name != "" {
		groupName, err := valueobject.NewGroupName(input.Name)
		if err != nil {
			return nil, apperror.NewValidationError(err.Error(), nil)
		}
		group.Rename(groupName)
	}
	if input.Description != nil {
		group.UpdateDescription(*input.Description)
	}

	// 4. 保存
	if err := c.groupRepo.Update(ctx, group); err != nil {
		return nil, err
	}

	return &UpdateGroupOutput{Group: group}, nil
}
