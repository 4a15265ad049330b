package bootstrap

import (
	"context"
	"log/slog"

	"lab-seat-reservation/internal/pkg/config"
	"lab-seat-reservation/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		worker.NewNotificationDispatcher,
	),
	fx.Invoke(startDispatcher),
)

func startDispatcher(lc fx.Lifecycle, d *worker.NotificationDispatcher, cfg config.OutboxConfig, logger *slog.Logger) {
	if !cfg.Enabled {
		logger.Info("通知ディスパッチャーは無効です")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go d.Start(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			d.Stop()
			cancel()
			return nil
		},
	})
}
