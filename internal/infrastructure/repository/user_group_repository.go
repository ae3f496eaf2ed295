package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vcodigo/orderlist-api/internal/domain/entity"
	"github.com/vcodigo/orderlist-api/internal/domain/repository"
	"github.com/vcodigo/orderlist-api/internal/domain/valueobject"
	"github.com/vcodigo/orderlist-api/internal/infrastructure/database"
)

// UserGroupRepository はメンバーシップリポジトリの実装です
// rolesはPostgreSQLのtext[]として保存し、配列内の順序を保持します
type UserGroupRepository struct {
	*database.BaseRepository
}

// NewUserGroupRepository は新しいUserGroupRepositoryを作成します
func NewUserGroupRepository(txManager *database.TxManager) *UserGroupRepository {
	return &UserGroupRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

var _ repository.UserGroupRepository = (*UserGroupRepository)(nil)

// Create はメンバーシップを作成します
func (r *UserGroupRepository) Create(ctx context.Context, userGroup *entity.UserGroup) error {
	querier := r.Querier(ctx)

	_, err := querier.Exec(ctx, `
		INSERT INTO users_groups (group_id, user_id, roles, joined_at)
		VALUES ($1, $2, $3, $4)`,
		userGroup.GroupID, userGroup.UserID,
		valueobject.GroupRolesToStrings(userGroup.Roles), userGroup.JoinedAt,
	)

	return r.HandleError(err, "membership")
}

// FindByGroupAndUser はグループとユーザーでメンバーシップを検索します
func (r *UserGroupRepository) FindByGroupAndUser(ctx context.Context, groupID, userID uuid.UUID) (*entity.UserGroup, error) {
	querier := r.Querier(ctx)

	row := querier.QueryRow(ctx, `
		SELECT group_id, user_id, roles, joined_at
		FROM users_groups
		WHERE group_id = $1 AND user_id = $2`,
		groupID, userID,
	)

	userGroup, err := scanUserGroup(row)
	if err != nil {
		return nil, r.HandleError(err, "membership")
	}
	return userGroup, nil
}

// Delete はメンバーシップを削除します
func (r *UserGroupRepository) Delete(ctx context.Context, groupID, userID uuid.UUID) error {
	querier := r.Querier(ctx)

	_, err := querier.Exec(ctx, `
		DELETE FROM users_groups
		WHERE group_id = $1 AND user_id = $2`,
		groupID, userID,
	)
	return r.HandleError(err, "membership")
}

// FindPageByUserID は指定ユーザーのメンバーシップを(joined_at, group_id)順で
// 先頭からlimit件取得します
func (r *UserGroupRepository) FindPageByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.UserGroup, error) {
	querier := r.Querier(ctx)

	rows, err := querier.Query(ctx, `
		SELECT group_id, user_id, roles, joined_at
		FROM users_groups
		WHERE user_id = $1
		ORDER BY joined_at, group_id
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, r.HandleError(err, "membership")
	}
	return scanUserGroups(rows)
}

// FindByUserID は指定ユーザーの全メンバーシップを取得します
func (r *UserGroupRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.UserGroup, error) {
	querier := r.Querier(ctx)

	rows, err := querier.Query(ctx, `
		SELECT group_id, user_id, roles, joined_at
		FROM users_groups
		WHERE user_id = $1
		ORDER BY joined_at, group_id`,
		userID,
	)
	if err != nil {
		return nil, r.HandleError(err, "membership")
	}
	return scanUserGroups(rows)
}

// FindByGroupID は指定グループの全メンバーシップを取得します
func (r *UserGroupRepository) FindByGroupID(ctx context.Context, groupID uuid.UUID) ([]*entity.UserGroup, error) {
	querier := r.Querier(ctx)

	rows, err := querier.Query(ctx, `
		SELECT group_id, user_id, roles, joined_at
		FROM users_groups
		WHERE group_id = $1
		ORDER BY joined_at, user_id`,
		groupID,
	)
	if err != nil {
		return nil, r.HandleError(err, "membership")
	}
	return scanUserGroups(rows)
}

// CountByGroupIDs は指定グループごとのメンバー数を一括取得します
// メンバーが存在しないグループはマップに含まれません
func (r *UserGroupRepository) CountByGroupIDs(ctx context.Context, groupIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(groupIDs))
	if len(groupIDs) == 0 {
		return counts, nil
	}

	querier := r.Querier(ctx)

	rows, err := querier.Query(ctx, `
		SELECT group_id, COUNT(*)
		FROM users_groups
		WHERE group_id = ANY($1)
		GROUP BY group_id`,
		groupIDs,
	)
	if err != nil {
		return nil, r.HandleError(err, "membership")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			groupID uuid.UUID
			count   int
		)
		if err := rows.Scan(&groupID, &count); err != nil {
			return nil, r.HandleError(err, "membership")
		}
		counts[groupID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, r.HandleError(err, "membership")
	}

	return counts, nil
}

// FindFirstByRole は指定グループごとに、指定ロールのみを保持する最古参の
// メンバーシップを1件ずつ返します。該当者がいないグループは結果に含まれません
// 他のロールを併せ持つメンバーは対象外です（管理者昇格の候補選定に使うため）
func (r *UserGroupRepository) FindFirstByRole(ctx context.Context, groupIDs []uuid.UUID, role valueobject.GroupRole) ([]*entity.UserGroup, error) {
	if len(groupIDs) == 0 {
		return []*entity.UserGroup{}, nil
	}

	querier := r.Querier(ctx)

	rows, err := querier.Query(ctx, `
		SELECT DISTINCT ON (group_id) group_id, user_id, roles, joined_at
		FROM users_groups
		WHERE group_id = ANY($1) AND roles = ARRAY[$2::text]
		ORDER BY group_id, joined_at, user_id`,
		groupIDs, role.String(),
	)
	if err != nil {
		return nil, r.HandleError(err, "membership")
	}
	return scanUserGroups(rows)
}

// DeleteBatch はメンバーシップを一括削除します
func (r *UserGroupRepository) DeleteBatch(ctx context.Context, userGroups []*entity.UserGroup) error {
	if len(userGroups) == 0 {
		return nil
	}

	querier := r.Querier(ctx)

	for _, ug := range userGroups {
		_, err := querier.Exec(ctx, `
			DELETE FROM users_groups
			WHERE group_id = $1 AND user_id = $2`,
			ug.GroupID, ug.UserID,
		)
		if err != nil {
			return r.HandleError(err, "membership")
		}
	}
	return nil
}

// SaveBatch はメンバーシップのロールを一括保存します
func (r *UserGroupRepository) SaveBatch(ctx context.Context, userGroups []*entity.UserGroup) error {
	if len(userGroups) == 0 {
		return nil
	}

	querier := r.Querier(ctx)

	for _, ug := range userGroups {
		_, err := querier.Exec(ctx, `
			UPDATE users_groups
			SET roles = $3
			WHERE group_id = $1 AND user_id = $2`,
			ug.GroupID, ug.UserID, valueobject.GroupRolesToStrings(ug.Roles),
		)
		if err != nil {
			return r.HandleError(err, "membership")
		}
	}
	return nil
}

// DeleteByGroupIDs は指定グループの全メンバーシップを一括削除します
func (r *UserGroupRepository) DeleteByGroupIDs(ctx context.Context, groupIDs []uuid.UUID) error {
	if len(groupIDs) == 0 {
		return nil
	}

	querier := r.Querier(ctx)

	_, err := querier.Exec(ctx, `DELETE FROM users_groups WHERE group_id = ANY($1)`, groupIDs)
	return r.HandleError(err, "membership")
}

// CountByGroupID は指定グループのメンバー数を取得します
func (r *UserGroupRepository) CountByGroupID(ctx context.Context, groupID uuid.UUID) (int, error) {
	querier := r.Querier(ctx)

	var count int
	err := querier.QueryRow(ctx, `
		SELECT COUNT(*) FROM users_groups WHERE group_id = $1`,
		groupID,
	).Scan(&count)
	if err != nil {
		return 0, r.HandleError(err, "membership")
	}
	return count, nil
}

// scanUserGroup は1行をメンバーシップエンティティに変換します
func scanUserGroup(row pgx.Row) (*entity.UserGroup, error) {
	var (
		groupID  uuid.UUID
		userID   uuid.UUID
		roles    []string
		joinedAt time.Time
	)

	if err := row.Scan(&groupID, &userID, &roles, &joinedAt); err != nil {
		return nil, err
	}

	groupRoles, err := valueobject.NewGroupRoles(roles)
	if err != nil {
		return nil, errors.New("invalid membership roles in database: " + err.Error())
	}

	return entity.ReconstructUserGroup(groupID, userID, groupRoles, joinedAt), nil
}

// scanUserGroups は行セットをメンバーシップエンティティのスライスに変換します
func scanUserGroups(rows pgx.Rows) ([]*entity.UserGroup, error) {
	defer rows.Close()

	var userGroups []*entity.UserGroup
	for rows.Next() {
		ug, err := scanUserGroup(rows)
		if err != nil {
			return nil, err
		}
		userGroups = append(userGroups, ug)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return userGroups, nil
}
