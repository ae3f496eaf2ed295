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
	"github.com/vcodigo/orderlist-api/pkg/apperror"
)

// GroupRepository はグループリポジトリの実装です
type GroupRepository struct {
	*database.BaseRepository
}

// NewGroupRepository は新しいGroupRepositoryを作成します
func NewGroupRepository(txManager *database.TxManager) *GroupRepository {
	return &GroupRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

var _ repository.GroupRepository = (*GroupRepository)(nil)

// Create はグループを作成します
func (r *GroupRepository) Create(ctx context.Context, group *entity.Group) error {
	querier := r.Querier(ctx)

	_, err := querier.Exec(ctx, `
		INSERT INTO groups (id, name, description, type, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		group.ID, group.Name.String(), group.Description, group.Type.String(), group.CreatedAt,
	)

	return r.HandleError(err, "group")
}

// FindByID はIDでグループを検索します
func (r *GroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Group, error) {
	querier := r.Querier(ctx)

	row := querier.QueryRow(ctx, `
		SELECT id, name, description, type, created_at
		FROM groups
		WHERE id = $1`,
		id,
	)

	group, err := scanGroup(row)
	if err != nil {
		return nil, r.HandleError(err, "group")
	}
	return group, nil
}

// FindByIDs は指定IDのグループをすべて取得します
// 1件でも存在しないIDがある場合はNotFoundエラーを返します
func (r *GroupRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Group, error) {
	if len(ids) == 0 {
		return []*entity.Group{}, nil
	}

	querier := r.Querier(ctx)

	rows, err := querier.Query(ctx, `
		SELECT id, name, description, type, created_at
		FROM groups
		WHERE id = ANY($1)
		ORDER BY created_at, id`,
		ids,
	)
	if err != nil {
		return nil, r.HandleError(err, "group")
	}
	defer rows.Close()

	groups := make([]*entity.Group, 0, len(ids))
	found := make(map[uuid.UUID]struct{}, len(ids))
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, r.HandleError(err, "group")
		}
		groups = append(groups, group)
		found[group.ID] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, r.HandleError(err, "group")
	}

	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return nil, apperror.NewNotFoundError("group")
		}
	}

	return groups, nil
}

// Update はグループを更新します
func (r *GroupRepository) Update(ctx context.Context, group *entity.Group) error {
	querier := r.Querier(ctx)

	tag, err := querier.Exec(ctx, `
		UPDATE groups
		SET name = $2, description = $3
		WHERE id = $1`,
		group.ID, group.Name.String(), group.Description,
	)
	if err != nil {
		return r.HandleError(err, "group")
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("group")
	}
	return nil
}

// Delete はグループを削除します
func (r *GroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := r.Querier(ctx)

	_, err := querier.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id)
	return r.HandleError(err, "group")
}

// DeleteByIDs は指定IDのグループを一括削除します
func (r *GroupRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	querier := r.Querier(ctx)

	_, err := querier.Exec(ctx, `DELETE FROM groups WHERE id = ANY($1)`, ids)
	return r.HandleError(err, "group")
}

// FindEmptyGroupIDs はメンバーシップが1件も無い共有グループのIDを返します
func (r *GroupRepository) FindEmptyGroupIDs(ctx context.Context, limit int) ([]uuid.UUID, error) {
	querier := r.Querier(ctx)

	rows, err := querier.Query(ctx, `
		SELECT g.id
		FROM groups g
		LEFT JOIN users_groups ug ON ug.group_id = g.id
		WHERE ug.group_id IS NULL AND g.type = $1
		ORDER BY g.created_at, g.id
		LIMIT $2`,
		valueobject.GroupTypeGroup.String(), limit,
	)
	if err != nil {
		return nil, r.HandleError(err, "group")
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, r.HandleError(err, "group")
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, r.HandleError(err, "group")
	}

	return ids, nil
}

// scanGroup は1行をグループエンティティに変換します
func scanGroup(row pgx.Row) (*entity.Group, error) {
	var (
		id          uuid.UUID
		name        string
		description string
		groupType   string
		createdAt   time.Time
	)

	if err := row.Scan(&id, &name, &description, &groupType, &createdAt); err != nil {
		return nil, err
	}

	groupName, err := valueobject.NewGroupName(name)
	if err != nil {
		return nil, errors.New("invalid group name in database: " + err.Error())
	}

	vType, err := valueobject.NewGroupType(groupType)
	if err != nil {
		return nil, errors.New("invalid group type in database: " + err.Error())
	}

	return entity.ReconstructGroup(id, groupName, description, vType, createdAt), nil
}
