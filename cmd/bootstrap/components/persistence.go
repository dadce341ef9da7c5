package components

import (
	"rentbook/internal/infra/holdstore"
	"rentbook/internal/infra/ledger"
	"rentbook/internal/infra/lock"
	"rentbook/internal/infra/repository"
	"rentbook/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		lock.NewKeyedMutex,
		fx.Annotate(
			repository.NewPostgresItemRepository,
			fx.As(new(shared.ItemRepository)),
		),
		fx.Annotate(
			ledger.NewPostgresLedger,
			fx.As(new(shared.BookingLedger)),
		),
		fx.Annotate(
			holdstore.NewRedisHoldStore,
			fx.As(new(shared.HoldStore)),
		),
	),
)
