package command

import (
	"context"
	"iter"

	"github.com/google/uuid"

	"github.com/vcodigo/orderlist-api/internal/domain/entity"
	"github.com/vcodigo/orderlist-api/internal/domain/repository"
)

// CascadePageSize は1ページあたりのメンバーシップ数
const CascadePageSize = 100

// RemoveAllUserGroupsInput はカスケード解決の入力を定義します
type RemoveAllUserGroupsInput struct {
	UserID uuid.UUID
}

// RemoveAllUserGroupsOutput はカスケード全体の集計結果を定義します
type RemoveAllUserGroupsOutput struct {
	Pages                 int
	GroupsRemoved         []*entity.Group
	UsersGroupsRemoved    []*entity.UserGroup
	UsersGroupsSetAsAdmin []*entity.UserGroup
}

// RemoveAllUserGroupsCommand は脱退ユーザーの全メンバーシップをページ単位で
// 解決するカスケードコマンドです
type RemoveAllUserGroupsCommand struct {
	groupRepo            repository.GroupRepository
	userGroupRepo        repository.UserGroupRepository
	removeUserFromGroups *RemoveUserFromGroupsCommand
}

// NewRemoveAllUserGroupsCommand は新しいRemoveAllUserGroupsCommandを作成します
func NewRemoveAllUserGroupsCommand(
	groupRepo repository.GroupRepository,
	userGroupRepo repository.UserGroupRepository,
	removeUserFromGroups *RemoveUserFromGroupsCommand,
) *RemoveAllUserGroupsCommand {
	return &RemoveAllUserGroupsCommand{
		groupRepo:            groupRepo,
		userGroupRepo:        userGroupRepo,
		removeUserFromGroups: removeUserFromGroups,
	}
}

// Execute はカスケード解決を遅延シーケンスとして返します
// 1要素 = 1ページの解決結果。各ページの永続化はその要素が生成される時点で
// 完了しており、消費を止めれば以降のページは取得も変更もされません
//
// ページはメンバーシップの(joined_at, group_id)順で先頭からCascadePageSize件を
// 取得します。解決済みページのメンバーシップはすべて削除されるため、先頭の
// 再取得だけで全件を重複も欠落もなく走査できます
//
// 参照先グループが存在しない場合はデータ不整合としてカスケード全体を
// エラーで打ち切ります
func (c *RemoveAllUserGroupsCommand) Execute(ctx context.Context, input RemoveAllUserGroupsInput) iter.Seq2[*RemoveUserFromGroupsOutput, error] {
	return func(yield func(*RemoveUserFromGroupsOutput, error) bool) {
		for {
			page, err := c.userGroupRepo.FindPageByUserID(ctx, input.UserID, CascadePageSize)
			if err != nil {
				yield(nil, err)
				return
			}
			if len(page) == 0 {
				return
			}

			groupIDs := distinctGroupIDs(page)

			groups, err := c.groupRepo.FindByIDs(ctx, groupIDs)
			if err != nil {
				yield(nil, err)
				return
			}

			output, err := c.removeUserFromGroups.Execute(ctx, RemoveUserFromGroupsInput{
				UserID:     input.UserID,
				Groups:     groups,
				UserGroups: page,
			})
			if err != nil {
				yield(nil, err)
				return
			}

			if !yield(output, nil) {
				return
			}

			if len(page) < CascadePageSize {
				return
			}
		}
	}
}

// ExecuteAll はシーケンスを最後まで消費し、全ページの結果を集計して返します
func (c *RemoveAllUserGroupsCommand) ExecuteAll(ctx context.Context, input RemoveAllUserGroupsInput) (*RemoveAllUserGroupsOutput, error) {
	result := &RemoveAllUserGroupsOutput{}

	for output, err := range c.Execute(ctx, input) {
		if err != nil {
			return nil, err
		}
		result.Pages++
		result.GroupsRemoved = append(result.GroupsRemoved, output.GroupsRemoved...)
		result.UsersGroupsRemoved = append(result.UsersGroupsRemoved, output.UsersGroupsRemoved...)
		result.UsersGroupsSetAsAdmin = append(result.UsersGroupsSetAsAdmin, output.UsersGroupsSetAsAdmin...)
	}

	return result, nil
}

// distinctGroupIDs はメンバーシップが参照するグループIDを順序を保って重複なく返します
func distinctGroupIDs(userGroups []*entity.UserGroup) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(userGroups))
	ids := make([]uuid.UUID, 0, len(userGroups))
	for _, ug := range userGroups {
		if _, ok := seen[ug.GroupID]; ok {
			continue
		}
		seen[ug.GroupID] = struct{}{}
		ids = append(ids, ug.GroupID)
	}
	return ids
}
