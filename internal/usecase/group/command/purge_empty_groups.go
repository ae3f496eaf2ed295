package command

import (
	"context"

	"github.com/vcodigo/orderlist-api/internal/domain/repository"
)

// PurgeEmptyGroupsInput は空グループ掃除の入力を定義します
type PurgeEmptyGroupsInput struct {
	Limit int
}

// PurgeEmptyGroupsOutput は空グループ掃除の出力を定義します
type PurgeEmptyGroupsOutput struct {
	PurgedCount int
}

// PurgeEmptyGroupsCommand はメンバーシップが1件も無い共有グループを削除する
// コマンドです。通常の削除経路で残らないはずの残骸（クラッシュ等）への保険です
type PurgeEmptyGroupsCommand struct {
	groupRepo repository.GroupRepository
	txManager repository.TransactionManager
}

// NewPurgeEmptyGroupsCommand は新しいPurgeEmptyGroupsCommandを作成します
func NewPurgeEmptyGroupsCommand(
	groupRepo repository.GroupRepository,
	txManager repository.TransactionManager,
) *PurgeEmptyGroupsCommand {
	return &PurgeEmptyGroupsCommand{
		groupRepo: groupRepo,
		txManager: txManager,
	}
}

// Execute は空グループ掃除を実行します
func (c *PurgeEmptyGroupsCommand) Execute(ctx context.Context, input PurgeEmptyGroupsInput) (*PurgeEmptyGroupsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 100
	}

	emptyIDs, err := c.groupRepo.FindEmptyGroupIDs(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(emptyIDs) == 0 {
		return &PurgeEmptyGroupsOutput{}, nil
	}

	err = c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		return c.groupRepo.DeleteByIDs(ctx, emptyIDs)
	})
	if err != nil {
		return nil, err
	}

	return &PurgeEmptyGroupsOutput{PurgedCount: len(emptyIDs)}, nil
}
