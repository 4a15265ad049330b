package bootstrap

import (
	"context"
	"log/slog"

	infraredis "lab-seat-reservation/internal/infra/redis"
	"lab-seat-reservation/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedisClient,
		fx.Annotate(
			func(c *redis.Client) *redis.Client { return c },
			fx.As(new(redis.Cmdable)),
		),
	),
)

func NewRedisClient(lc fx.Lifecycle, cfg config.RedisConfig, logger *slog.Logger) *redis.Client {
	client := infraredis.NewClient(cfg)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := infraredis.Ping(ctx, client); err != nil {
				return err
			}
			logger.Info("Redisに接続しました", "addr", cfg.Addr())
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client
}
