package components

import (
	"futsal-reserve/internal/infra/db"
	"futsal-reserve/internal/infra/hook"
	"futsal-reserve/internal/infra/readstore"
	"futsal-reserve/internal/infra/repository"
	"futsal-reserve/internal/infra/uow"
	"futsal-reserve/internal/usecase"
	"futsal-reserve/internal/usecase/queries"
	"futsal-reserve/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		hook.NewNotificationHook,
		fx.Annotate(
			repository.NewIdempotencyRepository,
			fx.As(new(shared.IdempotencyStore)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		fx.Annotate(
			readstore.NewLedgerReadStore,
			fx.As(new(queries.LedgerReadStore)),
		),
		fx.Annotate(
			readstore.NewGroundReadStore,
			fx.As(new(queries.GroundReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(usecase.UserReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
