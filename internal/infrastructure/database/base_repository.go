package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vcodigo/orderlist-api/pkg/apperror"
)

// BaseRepository はリポジトリの基底構造体
type BaseRepository struct {
	txManager *TxManager
}

// NewBaseRepository は新しいBaseRepositoryを作成する
func NewBaseRepository(txManager *TxManager) *BaseRepository {
	return &BaseRepository{txManager: txManager}
}

// Querier はクエリ実行用のインターフェースを返す
// トランザクション中であればTx、そうでなければPoolを返す
func (r *BaseRepository) Querier(ctx context.Context) Querier {
	return r.txManager.GetQuerier(ctx)
}

// TxManager はトランザクションマネージャーを返す
func (r *BaseRepository) TxManager() *TxManager {
	return r.txManager
}

// HandleError はpgxのエラーをアプリケーションエラーに変換する
// 行なし → NotFound、一意制約違反 → Conflict
// 接続エラー等はそのまま呼び出し元へ伝播する
func (r *BaseRepository) HandleError(err error, resource string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NewNotFoundError(resource)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return apperror.NewConflictError(resource + " already exists")
		case "23503": // foreign_key_violation
			return apperror.NewConflictError(resource + " references a missing row")
		}
	}

	return err
}
