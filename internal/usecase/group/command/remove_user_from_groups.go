package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/vcodigo/orderlist-api/internal/domain/entity"
	"github.com/vcodigo/orderlist-api/internal/domain/repository"
	"github.com/vcodigo/orderlist-api/internal/domain/valueobject"
)

// RemoveUserFromGroupsInput はメンバーシップ解決の入力を定義します
// GroupsとUserGroupsは同一ページに属し、UserGroupsはグループごとに一意です
type RemoveUserFromGroupsInput struct {
	UserID     uuid.UUID
	Groups     []*entity.Group
	UserGroups []*entity.UserGroup
}

// RemoveUserFromGroupsOutput はメンバーシップ解決の出力を定義します
type RemoveUserFromGroupsOutput struct {
	GroupsRemoved         []*entity.Group
	UsersGroupsRemoved    []*entity.UserGroup
	UsersGroupsSetAsAdmin []*entity.UserGroup
	Groups                []*entity.Group
}

// RemoveUserFromGroupsCommand は脱退ユーザーのメンバーシップを1ページ分解決するコマンドです
// グループごとに削除か管理者再割り当てかを決定し、1トランザクションで確定します
type RemoveUserFromGroupsCommand struct {
	groupRepo     repository.GroupRepository
	userGroupRepo repository.UserGroupRepository
	txManager     repository.TransactionManager
}

// NewRemoveUserFromGroupsCommand は新しいRemoveUserFromGroupsCommandを作成します
func NewRemoveUserFromGroupsCommand(
	groupRepo repository.GroupRepository,
	userGroupRepo repository.UserGroupRepository,
	txManager repository.TransactionManager,
) *RemoveUserFromGroupsCommand {
	return &RemoveUserFromGroupsCommand{
		groupRepo:     groupRepo,
		userGroupRepo: userGroupRepo,
		txManager:     txManager,
	}
}

// Execute はメンバーシップ解決を実行します
// グループごとの決定規則:
//   - 脱退ユーザーが管理者でない → メンバーシップのみ削除
//   - 管理者かつ唯一のメンバー → グループごと削除
//   - 管理者かつ他メンバーあり → メンバーシップ削除後、USERロールの
//     最古参メンバーを管理者に昇格（候補がいなければ昇格なし、エラーにもしない）
func (c *RemoveUserFromGroupsCommand) Execute(ctx context.Context, input RemoveUserFromGroupsInput) (*RemoveUserFromGroupsOutput, error) {
	// 1. 脱退ユーザーのメンバーシップをグループIDで索引化
	userGroupByGroupID := make(map[uuid.UUID]*entity.UserGroup, len(input.UserGroups))
	for _, ug := range input.UserGroups {
		userGroupByGroupID[ug.GroupID] = ug
	}

	// 2. 管理者として脱退するグループのメンバー数を一括取得
	adminGroupIDs := make([]uuid.UUID, 0, len(input.Groups))
	for _, group := range input.Groups {
		ug, ok := userGroupByGroupID[group.ID]
		if !ok {
			continue
		}
		if ug.IsAdmin() {
			adminGroupIDs = append(adminGroupIDs, group.ID)
		}
	}

	memberCounts := map[uuid.UUID]int{}
	if len(adminGroupIDs) > 0 {
		counts, err := c.userGroupRepo.CountByGroupIDs(ctx, adminGroupIDs)
		if err != nil {
			return nil, err
		}
		memberCounts = counts
	}

	// 3. グループを「削除」「メンバーシップ削除のみ」「管理者空席」に分類
	var (
		groupsToRemove    []*entity.Group
		groupIDsToRemove  []uuid.UUID
		userGroupsToElide []*entity.UserGroup
		vacancyGroupIDs   []uuid.UUID
		removedUserGroups []*entity.UserGroup
	)

	for _, group := range input.Groups {
		ug, ok := userGroupByGroupID[group.ID]
		if !ok {
			continue
		}

		if !ug.IsAdmin() {
			// 管理者以外の脱退は管理者の空席を生まない
			userGroupsToElide = append(userGroupsToElide, ug)
			removedUserGroups = append(removedUserGroups, ug)
			continue
		}

		if memberCounts[group.ID] <= 1 {
			// 脱退管理者が唯一のメンバー
			groupsToRemove = append(groupsToRemove, group)
			groupIDsToRemove = append(groupIDsToRemove, group.ID)
			removedUserGroups = append(removedUserGroups, ug)
			continue
		}

		userGroupsToElide = append(userGroupsToElide, ug)
		removedUserGroups = append(removedUserGroups, ug)
		vacancyGroupIDs = append(vacancyGroupIDs, group.ID)
	}

	var promoted []*entity.UserGroup

	// 4. 1ページ分の変更を1トランザクションで確定
	err := c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		// 削除対象グループのメンバーシップとグループ本体を削除
		if len(groupIDsToRemove) > 0 {
			if err := c.userGroupRepo.DeleteByGroupIDs(ctx, groupIDsToRemove); err != nil {
				return err
			}
			if err := c.groupRepo.DeleteByIDs(ctx, groupIDsToRemove); err != nil {
				return err
			}
		}

		// 存続グループから脱退ユーザーのメンバーシップを削除
		if len(userGroupsToElide) > 0 {
			if err := c.userGroupRepo.DeleteBatch(ctx, userGroupsToElide); err != nil {
				return err
			}
		}

		// 管理者空席のグループにUSERロールの最古参メンバーを昇格
		// 既に管理者であるメンバーは昇格対象にも報告対象にもしない
		if len(vacancyGroupIDs) > 0 {
			candidates, err := c.userGroupRepo.FindFirstByRole(ctx, vacancyGroupIDs, valueobject.GroupRoleUser)
			if err != nil {
				return err
			}
			for _, candidate := range candidates {
				if candidate.IsAdmin() {
					continue
				}
				candidate.GrantAdmin()
				promoted = append(promoted, candidate)
			}
			if len(promoted) > 0 {
				if err := c.userGroupRepo.SaveBatch(ctx, promoted); err != nil {
					return err
				}
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &RemoveUserFromGroupsOutput{
		GroupsRemoved:         groupsToRemove,
		UsersGroupsRemoved:    removedUserGroups,
		UsersGroupsSetAsAdmin: promoted,
		Groups:                input.Groups,
	}, nil
}
