package components

import (
	"lab-seat-reservation/internal/infra/db"
	"lab-seat-reservation/internal/infra/pgquery"
	infraredis "lab-seat-reservation/internal/infra/redis"
	"lab-seat-reservation/internal/infra/readstore"
	"lab-seat-reservation/internal/infra/uow"
	"lab-seat-reservation/internal/pkg/config"
	"lab-seat-reservation/internal/usecase/queries"
	"lab-seat-reservation/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
	lockModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Venue
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.VenueReadQueries)),
		),
		fx.Annotate(
			readstore.NewVenueReadStore,
			fx.As(new(queries.VenueReadStore)),
		),
		// User
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.UserReadQueries)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		// Reservation
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.ReservationViewQueries)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		// Occupancy
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.OccupancyQueries)),
		),
		fx.Annotate(
			readstore.NewOccupancyReadStore,
			fx.As(new(shared.OccupancyReadModel)),
		),
	),
)

// Write repositories are built per transaction inside the unit of work.
var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		uow.NewPostgresUoW,
	),
)

var lockModule = fx.Module("persistence/lock",
	fx.Provide(
		infraredis.NewLockManager,
		fx.Annotate(
			infraredis.NewVenueLocker,
			fx.As(new(shared.VenueLocker)),
		),
		fx.Annotate(
			NewRememberTokenStore,
			fx.As(new(shared.RememberTokenStore)),
		),
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *pgquery.Queries {
	return pgquery.New()
}

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewRememberTokenStore(client redis.Cmdable, cfg config.AuthConfig) *infraredis.RememberTokenStore {
	return infraredis.NewRememberTokenStore(client, cfg.RememberMeDuration)
}
