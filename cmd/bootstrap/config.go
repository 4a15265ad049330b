package bootstrap

import (
	"lab-seat-reservation/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	SectionsModule,
)

// SectionsModule splits Config into the sections individual constructors take.
var SectionsModule = fx.Module("config/sections",
	fx.Provide(
		func(cfg config.Config) config.AuthConfig { return cfg.Auth },
		func(cfg config.Config) config.ReservationConfig { return cfg.Reservation },
		func(cfg config.Config) config.OutboxConfig { return cfg.Outbox },
		func(cfg config.Config) config.AMQPConfig { return cfg.AMQP },
		func(cfg config.Config) config.RedisConfig { return cfg.Redis },
	),
)
