package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/vcodigo/orderlist-api/internal/domain/repository"
	"github.com/vcodigo/orderlist-api/pkg/apperror"
)

// LeaveGroupInput はグループ退出の入力を定義します
type LeaveGroupInput struct {
	GroupID uuid.UUID
	UserID  uuid.UUID
}

// LeaveGroupOutput はグループ退出の出力を定義します
type LeaveGroupOutput struct {
	LeftGroupID  uuid.UUID
	GroupDeleted bool
}

// LeaveGroupCommand はグループ退出コマンドです
// 単一グループからの退出を扱います。全グループからの一括退出はカスケード
// （RemoveAllUserGroupsCommand）が担当します
type LeaveGroupCommand struct {
	groupRepo     repository.GroupRepository
	userGroupRepo repository.UserGroupRepository
	txManager     repository.TransactionManager
}

// NewLeaveGroupCommand は新しいLeaveGroupCommandを作成します
func NewLeaveGroupCommand(
	groupRepo repository.GroupRepository,
	userGroupRepo repository.UserGroupRepository,
	txManager repository.TransactionManager,
) *LeaveGroupCommand {
	return &LeaveGroupCommand{
		groupRepo:     groupRepo,
		userGroupRepo: userGroupRepo,
		txManager:     txManager,
	}
}

// Execute はグループ退出を実行します
// 唯一のメンバーが退出する場合はグループごと削除します
// 他メンバーが残るのに唯一の管理者が退出しようとした場合は拒否します
// （先に別の管理者を立てるか、カスケード解決を使う必要があります）
func (c *LeaveGroupCommand) Execute(ctx context.Context, input LeaveGroupInput) (*LeaveGroupOutput, error) {
	// 1. グループの存在確認
	_, err := c.groupRepo.FindByID(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}

	// 2. メンバーシップの取得
	userGroup, err := c.userGroupRepo.FindByGroupAndUser(ctx, input.GroupID, input.UserID)
	if err != nil {
		return nil, err
	}

	// 3. メンバー数で退出方法を決定
	memberCount, err := c.userGroupRepo.CountByGroupID(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}

	if memberCount <= 1 {
		// 唯一のメンバー: グループごと削除
		err = c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
			if err := c.userGroupRepo.Delete(ctx, input.GroupID, input.UserID); err != nil {
				return err
			}
			return c.groupRepo.Delete(ctx, input.GroupID)
		})
		if err != nil {
			return nil, err
		}
		return &LeaveGroupOutput{LeftGroupID: input.GroupID, GroupDeleted: true}, nil
	}

	// 4. 他メンバーが残る場合、唯一の管理者は退出できない
	if userGroup.IsAdmin() {
		remaining, err := c.userGroupRepo.FindByGroupID(ctx, input.GroupID)
		if err != nil {
			return nil, err
		}
		otherAdmin := false
		for _, ug := range remaining {
			if ug.UserID != input.UserID && ug.IsAdmin() {
				otherAdmin = true
				break
			}
		}
		if !otherAdmin {
			return nil, apperror.NewForbiddenError("cannot leave the group: appoint another admin first")
		}
	}

	// 5. メンバーシップのみ削除
	if err := c.userGroupRepo.Delete(ctx, input.GroupID, input.UserID); err != nil {
		return nil, err
	}

	return &LeaveGroupOutput{LeftGroupID: input.GroupID}, nil
}
