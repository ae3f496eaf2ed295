package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/vcodigo/orderlist-api/internal/domain/entity"
	"github.com/vcodigo/orderlist-api/internal/domain/repository"
	"github.com/vcodigo/orderlist-api/internal/domain/valueobject"
	"github.com/vcodigo/orderlist-api/pkg/apperror"
)

// CreateGroupInput はグループ作成の入力を定義します
type CreateGroupInput struct {
	Name        string
	Description string
	Type        string
	CreatorID   uuid.UUID
}

// CreateGroupOutput はグループ作成の出力を定義します
type CreateGroupOutput struct {
	Group     *entity.Group
	UserGroup *entity.UserGroup
}

// CreateGroupCommand はグループ作成コマンドです
type CreateGroupCommand struct {
	groupRepo     repository.GroupRepository
	userGroupRepo repository.UserGroupRepository
	txManager     repository.TransactionManager
}

// NewCreateGroupCommand は新しいCreateGroupCommandを作成します
func NewCreateGroupCommand(
	groupRepo repository.GroupRepository,
	userGroupRepo repository.UserGroupRepository,
	txManager repository.TransactionManager,
) *CreateGroupCommand {
	return &CreateGroupCommand{
		groupRepo:     groupRepo,
		userGroupRepo: userGroupRepo,
		txManager:     txManager,
	}
}

// Execute はグループ作成を実行します
// 作成者は最初の管理者メンバーシップを同一トランザクションで取得します
func (c *CreateGroupCommand) Execute(ctx context.Context, input CreateGroupInput) (*CreateGroupOutput, error) {
	// 1. グループ名のバリデーション
	groupName, err := valueobject.NewGroupName(input.Name)
	if err != nil {
		return nil, apperror.NewValidationError(err.Error(), nil)
	}

	// 2. 種別のバリデーション（未指定は共有グループ）
	groupType := valueobject.GroupTypeGroup
	if input.Type != "" {
		groupType, err = valueobject.NewGroupType(input.Type)
		if err != nil {
			return nil, apperror.NewValidationError(err.Error(), nil)
		}
	}

	// 3. グループと作成者の管理者メンバーシップを作成
	group := entity.NewGroup(groupName, input.Description, groupType)
	userGroup := entity.NewAdminUserGroup(group.ID, input.CreatorID)

	err = c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if err := c.groupRepo.Create(ctx, group); err != nil {
			return err
		}
		if err := c.userGroupRepo.Create(ctx, userGroup); err != nil {
			return err
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return &CreateGroupOutput{
		Group:     group,
		UserGroup: userGroup,
	}, nil
}
