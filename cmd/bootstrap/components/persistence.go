package components

import (
	"offer-service/internal/infra/db"
	"offer-service/internal/infra/readstore"
	"offer-service/internal/infra/uow"
	"offer-service/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// UnitOfWork owns its write-side repositories; only the
		// read store is shared with the query layer directly.
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewOfferReadStore,
			fx.As(new(queries.OfferReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
