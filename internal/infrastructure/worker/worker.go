package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job は定期実行ジョブを定義します
// Timeoutが正の場合、各実行はその時間で打ち切られます
type Job struct {
	Name     string
	Interval time.Duration
	Timeout  time.Duration
	Fn       func(ctx context.Context) error
}

// Manager は定期実行ジョブのワーカーを管理します
type Manager struct {
	jobs   []Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewManager は新しいManagerを作成します
func NewManager() *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Register は定期実行ジョブを登録します
func (m *Manager) Register(job Job) {
	m.jobs = append(m.jobs, job)
}

// Start は登録済みジョブごとにワーカーを開始します
func (m *Manager) Start() {
	for _, job := range m.jobs {
		m.wg.Add(1)
		go m.runJob(job)
	}
	slog.Info("worker manager started", "jobs", len(m.jobs))
}

// runJob は単一ジョブのワーカーループを実行します
// 起動直後に1回実行し、以降はIntervalごとに実行します
func (m *Manager) runJob(job Job) {
	defer m.wg.Done()

	slog.Info("worker started", "job", job.Name, "interval", job.Interval)

	m.execute(job)

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			slog.Info("worker stopping", "job", job.Name)
			return
		case <-ticker.C:
			m.execute(job)
		}
	}
}

// execute はジョブを1回実行します。失敗してもワーカーは止めません
func (m *Manager) execute(job Job) {
	ctx := m.ctx
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}

	if err := job.Fn(ctx); err != nil {
		slog.Error("worker job failed", "job", job.Name, "error", err)
	}
}

// Shutdown は全ワーカーの停止を待ちます。timeoutを超えたら打ち切ります
func (m *Manager) Shutdown(timeout time.Duration) {
	slog.Info("shutting down worker manager...")
	m.cancel()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("worker manager stopped gracefully")
	case <-time.After(timeout):
		slog.Warn("worker manager shutdown timed out")
	}
}
