package components

import (
	"offer-service/internal/handler"
	"offer-service/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewOfferHandler,
	),
	fx.Invoke(handler.NewRouter),
)
