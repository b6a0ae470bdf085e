package commands

import (
	"context"
	"time"

	domoffer "offer-service/internal/domain/offer"
	"offer-service/internal/infra"
	"offer-service/internal/pkg/clock"
	"offer-service/internal/pkg/errs"
	"offer-service/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateOfferRequest struct {
	Price       *decimal.Decimal
	Currency    string
	ExpiryDate  *time.Time
	Name        string
	Description string
}

type CreateOfferResult struct {
	OfferID uuid.UUID
}

type OfferCommands interface {
	Create(ctx context.Context, req CreateOfferRequest) (*CreateOfferResult, error)
	Cancel(ctx context.Context, offerID uuid.UUID) error
	ReconcileExpired(ctx context.Context) (int64, error)
}

type offerUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewOfferUseCase(uow shared.UnitOfWork, clk clock.Clock) OfferCommands {
	return &offerUseCaseImpl{uow: uow, clock: clk}
}

func (uc *offerUseCaseImpl) Create(ctx context.Context, req CreateOfferRequest) (*CreateOfferResult, error) {
	dom, err := domoffer.New(domoffer.NewOfferInput{
		Price:       req.Price,
		Currency:    req.Currency,
		ExpiryDate:  req.ExpiryDate,
		Name:        req.Name,
		Description: req.Description,
	}, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, derr := tx.Offers().Create(ctx, tx.DB(), dom)
		if derr != nil {
			return derr
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &CreateOfferResult{OfferID: createdID}, nil
}

func (uc *offerUseCaseImpl) Cancel(ctx context.Context, offerID uuid.UUID) error {
	now := uc.clock.Now()

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().OfferByID(ctx, offerID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return errs.ErrOfferNotFound
			}
			return derr
		}

		dom := domoffer.Reconstruct(snap.ID, snap.Price, snap.Currency, snap.ExpiryDate, snap.Name, snap.Description, snap.Status)
		if derr = dom.Cancel(now); derr != nil {
			return derr
		}
		return tx.Offers().Update(ctx, tx.DB(), dom)
	})
}

// ReconcileExpired persists the EXPIRED transition for every active offer
// whose expiry has elapsed. It runs in its own transaction, fully decoupled
// from request handling; the count query gates the bulk update so idle ticks
// stay read-only.
func (uc *offerUseCaseImpl) ReconcileExpired(ctx context.Context) (int64, error) {
	now := uc.clock.Now()

	var expired int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		count, derr := tx.Offers().CountActiveExpired(ctx, tx.DB(), now)
		if derr != nil {
			return derr
		}
		if count == 0 {
			return nil
		}

		n, derr := tx.Offers().ExpireActiveBefore(ctx, tx.DB(), now)
		if derr != nil {
			return derr
		}
		expired = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return expired, nil
}
