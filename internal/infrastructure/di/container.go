package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/vcodigo/orderlist-api/internal/infrastructure/cache"
	"github.com/vcodigo/orderlist-api/internal/infrastructure/database"
	"github.com/vcodigo/orderlist-api/internal/usecase/group/query"
	"github.com/vcodigo/orderlist-api/pkg/config"
)

// Container はアプリケーションの依存関係を保持するDIコンテナです
type Container struct {
	// Infrastructure
	PgClient    *database.PostgresClient
	RedisClient *cache.RedisClient
	TxManager   *database.TxManager
	GroupCache  *cache.GroupCache

	// Group UseCases
	Group *GroupUseCases

	// Group Repositories
	GroupRepos *GroupRepositories

	// config
	config *config.Config
}

// Options はContainer作成時のオプションを定義します（テスト用の差し替え口）
type Options struct {
	PostgresPool *pgxpool.Pool
	RedisClient  *redis.Client
}

// NewContainer は新しいContainerを作成します
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	return NewContainerWithOptions(ctx, cfg, Options{})
}

// NewContainerWithOptions はオプションを指定してContainerを作成します
func NewContainerWithOptions(ctx context.Context, cfg *config.Config, opts Options) (*Container, error) {
	c := &Container{
		config: cfg,
	}

	// PostgreSQL
	if opts.PostgresPool != nil {
		c.TxManager = database.NewTxManager(opts.PostgresPool)
	} else {
		slog.Info("connecting to PostgreSQL...")
		pgClient, err := database.NewPostgresClient(ctx, database.PoolConfig{
			URL:      cfg.Database.URL,
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		c.PgClient = pgClient
		c.TxManager = database.NewTxManager(pgClient.Pool())
		slog.Info("connected to PostgreSQL")
	}

	// Redis
	if opts.RedisClient != nil {
		c.GroupCache = cache.NewGroupCacheFromClient(opts.RedisClient)
	} else {
		slog.Info("connecting to Redis...")
		redisConfig := cache.DefaultConfig()
		redisConfig.URL = cfg.Redis.URL
		if cfg.Redis.PoolSize > 0 {
			redisConfig.PoolSize = cfg.Redis.PoolSize
		}
		redisClient, err := cache.NewRedisClient(redisConfig)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.RedisClient = redisClient
		c.GroupCache = cache.NewGroupCache(redisClient)
		slog.Info("connected to Redis")
	}

	return c, nil
}

// InitGroupUseCases はGroup UseCasesを初期化します
func (c *Container) InitGroupUseCases() {
	c.GroupRepos = NewGroupRepositories(c.TxManager)

	// typed-nilをインターフェースに入れない
	var userGroupsCache query.UserGroupsCache
	if c.GroupCache != nil {
		userGroupsCache = c.GroupCache
	}

	c.Group = NewGroupUseCases(c.GroupRepos, c.TxManager, userGroupsCache)
}

// Close はリソースをクリーンアップします
func (c *Container) Close() error {
	var errs []error

	if c.PgClient != nil {
		c.PgClient.Close()
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during close: %v", errs)
	}
	return nil
}
