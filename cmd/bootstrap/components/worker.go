package components

import (
	"context"

	"offer-service/internal/pkg/config"
	"offer-service/internal/usecase/commands"
	"offer-service/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewExpirySweeper,
	),
	fx.Invoke(registerSweeper),
)

func NewExpirySweeper(cmds commands.OfferCommands, cfg config.Config) *worker.ExpirySweeper {
	return worker.NewExpirySweeper(cmds, cfg.Sweep.Interval)
}

func registerSweeper(lc fx.Lifecycle, sweeper *worker.ExpirySweeper) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			sweeper.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			sweeper.Stop()
			return nil
		},
	})
}
