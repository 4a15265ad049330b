package worker

import (
	"context"
	"log/slog"
	"time"

	"lab-seat-reservation/internal/pkg/clock"
	"lab-seat-reservation/internal/pkg/config"
	"lab-seat-reservation/internal/pkg/metrics"
	"lab-seat-reservation/internal/usecase/shared"
)

const maxRetryDelay = 5 * time.Minute

// Publisher delivers one outbox job to the message broker.
type Publisher interface {
	Publish(ctx context.Context, job shared.NotificationJob) error
}

// NotificationDispatcher drains the notification outbox on a fixed interval.
type NotificationDispatcher struct {
	uow       shared.UnitOfWork
	publisher Publisher
	clock     clock.Clock
	metrics   *metrics.Metrics
	cfg       config.OutboxConfig
	stopCh    chan struct{}
	doneCh    chan struct{}
}

func NewNotificationDispatcher(
	uow shared.UnitOfWork,
	publisher Publisher,
	clk clock.Clock,
	m *metrics.Metrics,
	cfg config.OutboxConfig,
) *NotificationDispatcher {
	return &NotificationDispatcher{
		uow:       uow,
		publisher: publisher,
		clock:     clk,
		metrics:   m,
		cfg:       cfg,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start blocks until ctx is done or Stop is called.
func (d *NotificationDispatcher) Start(ctx context.Context) {
	slog.Info("通知ディスパッチャー開始",
		"interval", d.cfg.PollInterval.String(),
		"batch_size", d.cfg.BatchSize)

	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()
	defer close(d.doneCh)

	for {
		select {
		case <-ctx.Done():
			slog.Info("通知ディスパッチャー停止（コンテキストキャンセル）")
			return
		case <-d.stopCh:
			slog.Info("通知ディスパッチャー停止（シグナル受信）")
			return
		case <-ticker.C:
			if _, err := d.RunOnce(ctx); err != nil {
				slog.Error("通知ジョブの処理に失敗", "error", err.Error())
			}
		}
	}
}

func (d *NotificationDispatcher) Stop() {
	close(d.stopCh)
	<-d.doneCh
}

// RunOnce claims one batch of due jobs and publishes them. A publish failure
// reschedules the job with backoff until MaxAttempts, then marks it failed.
// It returns the number of jobs published.
func (d *NotificationDispatcher) RunOnce(ctx context.Context) (int, error) {
	published := 0
	err := d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		published = 0
		now := d.clock.Now()

		jobs, err := tx.Notifications().ClaimDue(ctx, tx.DB(), now, d.cfg.BatchSize)
		if err != nil {
			return err
		}

		for _, job := range jobs {
			ok, err := d.dispatch(ctx, tx, job, now)
			if err != nil {
				return err
			}
			if ok {
				published++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if published > 0 {
		slog.Info("通知ジョブを送信", "count", published)
	}
	return published, nil
}

func (d *NotificationDispatcher) dispatch(ctx context.Context, tx shared.Tx, job shared.NotificationJob, now time.Time) (bool, error) {
	notifications := tx.Notifications()

	pubErr := d.publisher.Publish(ctx, job)
	if pubErr == nil {
		d.metrics.ObserveOutbox("published")
		return true, notifications.MarkSent(ctx, tx.DB(), job, now)
	}

	if job.Attempts+1 >= d.cfg.MaxAttempts {
		slog.Error("通知ジョブを破棄",
			"job_id", job.ID,
			"topic", job.Topic,
			"attempts", job.Attempts+1,
			"error", pubErr.Error())
		d.metrics.ObserveOutbox("failed")
		return false, notifications.MarkFailed(ctx, tx.DB(), job, pubErr.Error(), now)
	}

	slog.Warn("通知ジョブを再スケジュール",
		"job_id", job.ID,
		"topic", job.Topic,
		"attempts", job.Attempts+1,
		"error", pubErr.Error())
	d.metrics.ObserveOutbox("retry")
	return false, notifications.Reschedule(ctx, tx.DB(), job, pubErr.Error(), now.Add(d.retryDelay(job.Attempts)), now)
}

func (d *NotificationDispatcher) retryDelay(attempts int32) time.Duration {
	delay := d.cfg.PollInterval
	for i := int32(0); i < attempts && delay < maxRetryDelay; i++ {
		delay *= 2
	}
	return min(delay, maxRetryDelay)
}
