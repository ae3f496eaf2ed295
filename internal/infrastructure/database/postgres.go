package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// 接続のリサイクル設定
// グループ解決はバースト的な短時間クエリが中心なので、長寿命接続を
// 積極的に入れ替える必要はない
const (
	connMaxLifetime   = 1 * time.Hour
	connMaxIdleTime   = 30 * time.Minute
	healthCheckPeriod = 1 * time.Minute
)

// PoolConfig はPostgreSQL接続プールの設定を定義します
// MaxConns/MinConnsは環境変数（DB_MAX_CONNS/DB_MIN_CONNS）から渡されます
type PoolConfig struct {
	URL      string
	MaxConns int32
	MinConns int32
}

// PostgresClient はPostgreSQLへの接続プールを管理します
type PostgresClient struct {
	pool *pgxpool.Pool
}

// NewPostgresClient は接続プールを作成し、疎通を確認します
func NewPostgresClient(ctx context.Context, cfg PoolConfig) (*PostgresClient, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = connMaxLifetime
	poolCfg.MaxConnIdleTime = connMaxIdleTime
	poolCfg.HealthCheckPeriod = healthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresClient{pool: pool}, nil
}

// Pool はコネクションプールを返します
func (c *PostgresClient) Pool() *pgxpool.Pool {
	return c.pool
}

// Close はコネクションプールを閉じます
func (c *PostgresClient) Close() {
	c.pool.Close()
}

// Health はデータベースへの疎通を確認します
func (c *PostgresClient) Health(ctx context.Context) error {
	return c.pool.Ping(ctx)
}
