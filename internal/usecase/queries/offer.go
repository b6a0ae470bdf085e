package queries

import (
	"context"
	"strings"
	"time"

	"offer-service/internal/domain/offer"
	"offer-service/internal/infra"
	"offer-service/internal/pkg/clock"
	"offer-service/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrOfferNotFound = errs.ErrOfferNotFound

type OfferView struct {
	ID          uuid.UUID       `json:"id"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	ExpiryDate  time.Time       `json:"expiry_date"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Status      offer.Status    `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type OfferReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OfferView, error)
	FindAll(ctx context.Context) ([]*OfferView, error)
	SearchByDescription(ctx context.Context, text string) ([]*OfferView, error)
}

type OfferQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*OfferView, error)
	ListAll(ctx context.Context) ([]*OfferView, error)
	ListByDescription(ctx context.Context, text string) ([]*OfferView, error)
}

type offerQueriesImpl struct {
	repo  OfferReadStore
	clock clock.Clock
}

func NewOfferQueries(repo OfferReadStore, clk clock.Clock) OfferQueries {
	return &offerQueriesImpl{repo: repo, clock: clk}
}

func (q *offerQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*OfferView, error) {
	rv, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, err
	}
	correctExpiry(rv, q.clock.Now())
	return rv, nil
}

func (q *offerQueriesImpl) ListAll(ctx context.Context) ([]*OfferView, error) {
	rows, err := q.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return correctExpiryAll(rows, q.clock.Now()), nil
}

// ListByDescription returns offers whose description contains the given text,
// ignoring case. Blank input deliberately short-circuits to an empty result
// instead of listing everything.
func (q *offerQueriesImpl) ListByDescription(ctx context.Context, text string) ([]*OfferView, error) {
	if strings.TrimSpace(text) == "" {
		return []*OfferView{}, nil
	}

	rows, err := q.repo.SearchByDescription(ctx, text)
	if err != nil {
		return nil, err
	}
	return correctExpiryAll(rows, q.clock.Now()), nil
}

// correctExpiry masks staleness between sweep ticks: the corrected status is
// only returned to the caller, never written back here.
func correctExpiry(v *OfferView, now time.Time) {
	v.Status = offer.StatusAsOf(v.Status, v.ExpiryDate, now)
}

func correctExpiryAll(views []*OfferView, now time.Time) []*OfferView {
	for _, v := range views {
		correctExpiry(v, now)
	}
	return views
}
