package worker

import (
	"context"
	"log/slog"
	"time"
)

const tickTimeout = 30 * time.Second

// ExpiryReconciler is the sweep entry point; satisfied by commands.OfferCommands.
type ExpiryReconciler interface {
	ReconcileExpired(ctx context.Context) (int64, error)
}

// ExpirySweeper drives expiry reconciliation on a fixed interval, decoupled
// from request handling. A failed tick logs and waits for the next interval.
type ExpirySweeper struct {
	reconciler ExpiryReconciler
	interval   time.Duration
	ticker     *time.Ticker
	shutdown   chan struct{}
}

func NewExpirySweeper(reconciler ExpiryReconciler, interval time.Duration) *ExpirySweeper {
	return &ExpirySweeper{
		reconciler: reconciler,
		interval:   interval,
		shutdown:   make(chan struct{}),
	}
}

func (s *ExpirySweeper) Start() {
	s.ticker = time.NewTicker(s.interval)
	go s.run()
}

func (s *ExpirySweeper) Stop() {
	close(s.shutdown)
}

func (s *ExpirySweeper) run() {
	defer s.ticker.Stop()

	for {
		select {
		case <-s.ticker.C:
			s.tick()
		case <-s.shutdown:
			return
		}
	}
}

func (s *ExpirySweeper) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
	defer cancel()

	expired, err := s.reconciler.ReconcileExpired(ctx)
	if err != nil {
		slog.Error("expiry sweep failed", "error", err.Error())
		return
	}
	if expired > 0 {
		slog.Info("expiry sweep persisted status transitions", "expired", expired)
	}
}
