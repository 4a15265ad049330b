package bootstrap

import (
	"context"

	"lab-seat-reservation/internal/infra/broker"
	"lab-seat-reservation/internal/pkg/config"
	"lab-seat-reservation/internal/worker"

	"go.uber.org/fx"
)

var BrokerModule = fx.Module("broker",
	fx.Provide(
		NewPublisher,
		fx.Annotate(
			func(p *broker.Publisher) *broker.Publisher { return p },
			fx.As(new(worker.Publisher)),
		),
	),
)

func NewPublisher(lc fx.Lifecycle, cfg config.AMQPConfig) *broker.Publisher {
	publisher := broker.NewPublisher(cfg)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}
