package bootstrap

import (
	"lab-seat-reservation/internal/pkg/clock"
	"lab-seat-reservation/internal/pkg/config"
	"lab-seat-reservation/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config, clk clock.Clock) *jwt.Service {
	return jwt.NewService(cfg.JWT.Secret, cfg.JWT.AccessTokenDuration, cfg.JWT.Issuer, clk)
}
