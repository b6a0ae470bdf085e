package shared

import (
	"context"
	"time"

	"offer-service/internal/domain/offer"
	"offer-service/internal/infra/db"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Offers() OfferRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	OfferByID(ctx context.Context, id uuid.UUID) (*OfferSnapshot, error)
}

// Minimal snapshot for command read operations
type OfferSnapshot struct {
	ID          uuid.UUID
	Price       decimal.Decimal
	Currency    string
	ExpiryDate  time.Time
	Name        string
	Description string
	Status      offer.Status
}

type OfferRepository interface {
	Create(ctx context.Context, tx db.DBTX, o *offer.Offer) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, o *offer.Offer) error
	CountActiveExpired(ctx context.Context, tx db.DBTX, now time.Time) (int64, error)
	ExpireActiveBefore(ctx context.Context, tx db.DBTX, now time.Time) (int64, error)
}
