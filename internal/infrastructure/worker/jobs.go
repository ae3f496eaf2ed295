package worker

import (
	"context"
	"log/slog"
	"time"
)

// EmptyGroupPurgeJobConfig は空グループ掃除ジョブの設定です
// 未指定の項目にはデフォルト値が入ります
type EmptyGroupPurgeJobConfig struct {
	// Interval は実行間隔です
	Interval time.Duration
	// BatchLimit は1回の実行で削除するグループ数の上限です
	BatchLimit int
}

// NewEmptyGroupPurgeJob は空グループ掃除ジョブを作成します
// purgeFn は実際の掃除ロジックを実行する関数で、削除件数を返します
func NewEmptyGroupPurgeJob(purgeFn func(ctx context.Context, limit int) (int, error), cfg EmptyGroupPurgeJobConfig) Job {
	if cfg.Interval <= 0 {
		cfg.Interval = 1 * time.Hour
	}
	if cfg.BatchLimit <= 0 {
		cfg.BatchLimit = 100
	}

	return Job{
		Name:     "empty_group_purge",
		Interval: cfg.Interval,
		Timeout:  5 * time.Minute,
		Fn: func(ctx context.Context) error {
			count, err := purgeFn(ctx, cfg.BatchLimit)
			if err != nil {
				return err
			}
			if count > 0 {
				slog.Info("empty group purge completed", "deleted", count)
			}
			return nil
		},
	}
}

// NewHealthCheckJob はヘルスチェックジョブを作成します（データベース接続確認など）
func NewHealthCheckJob(checkFn func(ctx context.Context) error, interval time.Duration) Job {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return Job{
		Name:     "health_check",
		Interval: interval,
		Timeout:  10 * time.Second,
		Fn: func(ctx context.Context) error {
			if err := checkFn(ctx); err != nil {
				slog.Warn("health check failed", "error", err)
				return err
			}
			return nil
		},
	}
}
