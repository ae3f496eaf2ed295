package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/vcodigo/orderlist-api/internal/domain/entity"
	"github.com/vcodigo/orderlist-api/internal/domain/repository"
	"github.com/vcodigo/orderlist-api/pkg/logger"
)

// GroupWithUserGroup はグループとメンバーシップを結合した構造体
type GroupWithUserGroup struct {
	Group     *entity.Group     `json:"group"`
	UserGroup *entity.UserGroup `json:"user_group"`
}

// UserGroupsCache はユーザーのグループ一覧キャッシュのインターフェース
// ミスは (nil, false, nil) で表現します（キャッシュ障害は一覧取得を妨げない）
type UserGroupsCache interface {
	GetUserGroups(ctx context.Context, userID uuid.UUID) ([]*GroupWithUserGroup, bool, error)
	SetUserGroups(ctx context.Context, userID uuid.UUID, groups []*GroupWithUserGroup) error
	InvalidateUserGroups(ctx context.Context, userID uuid.UUID) error
}

// ListUserGroupsInput はグループ一覧取得の入力を定義します
type ListUserGroupsInput struct {
	UserID uuid.UUID
}

// ListUserGroupsOutput はグループ一覧取得の出力を定義します
type ListUserGroupsOutput struct {
	Groups []*GroupWithUserGroup
}

// ListUserGroupsQuery はユーザーの所属グループ一覧取得クエリです
type ListUserGroupsQuery struct {
	groupRepo     repository.GroupRepository
	userGroupRepo repository.UserGroupRepository
	cache         UserGroupsCache
}

// NewListUserGroupsQuery は新しいListUserGroupsQueryを作成します
// cacheはnil可（キャッシュなしで動作）
func NewListUserGroupsQuery(
	groupRepo repository.GroupRepository,
	userGroupRepo repository.UserGroupRepository,
	cache UserGroupsCache,
) *ListUserGroupsQuery {
	return &ListUserGroupsQuery{
		groupRepo:     groupRepo,
		userGroupRepo: userGroupRepo,
		cache:         cache,
	}
}

// Execute はグループ一覧取得を実行します
func (q *ListUserGroupsQuery) Execute(ctx context.Context, input ListUserGroupsInput) (*ListUserGroupsOutput, error) {
	// 1. キャッシュを試行
	if q.cache != nil {
		cached, hit, err := q.cache.GetUserGroups(ctx, input.UserID)
		if err != nil {
			logger.Warn(ctx, "failed to read user groups cache", "error", err)
		} else if hit {
			return &ListUserGroupsOutput{Groups: cached}, nil
		}
	}

	// 2. ユーザーの全メンバーシップを取得
	userGroups, err := q.userGroupRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if len(userGroups) == 0 {
		return &ListUserGroupsOutput{Groups: []*GroupWithUserGroup{}}, nil
	}

	// 3. 対応するグループを一括取得
	groupIDs := make([]uuid.UUID, len(userGroups))
	for i, ug := range userGroups {
		groupIDs[i] = ug.GroupID
	}

	groups, err := q.groupRepo.FindByIDs(ctx, groupIDs)
	if err != nil {
		return nil, err
	}

	groupByID := make(map[uuid.UUID]*entity.Group, len(groups))
	for _, g := range groups {
		groupByID[g.ID] = g
	}

	result := make([]*GroupWithUserGroup, 0, len(userGroups))
	for _, ug := range userGroups {
		group, ok := groupByID[ug.GroupID]
		if !ok {
			continue
		}
		result = append(result, &GroupWithUserGroup{
			Group:     group,
			UserGroup: ug,
		})
	}

	// 4. 結果をキャッシュ（失敗しても一覧は返す）
	if q.cache != nil {
		if err := q.cache.SetUserGroups(ctx, input.UserID, result); err != nil {
			logger.Warn(ctx, "failed to write user groups cache", "error", err)
		}
	}

	return &ListUserGroupsOutput{Groups: result}, nil
}
