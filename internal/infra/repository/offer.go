package repository

import (
	"context"
	"time"

	"offer-service/internal/domain/offer"
	"offer-service/internal/infra"
	"offer-service/internal/infra/db"
	"offer-service/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	insertOfferSQL = `
		INSERT INTO offers (price, currency, expiry_date, name, description, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	updateOfferSQL = `
		UPDATE offers
		SET price = $2, currency = $3, expiry_date = $4, name = $5, description = $6, status = $7, updated_at = now()
		WHERE id = $1`

	countActiveExpiredSQL = `
		SELECT count(*) FROM offers
		WHERE status = 'ACTIVE' AND expiry_date < $1`

	expireActiveBeforeSQL = `
		UPDATE offers
		SET status = 'EXPIRED', updated_at = now()
		WHERE status = 'ACTIVE' AND expiry_date < $1`
)

type OfferRepository struct{}

func NewOfferRepository() *OfferRepository {
	return &OfferRepository{}
}

func (r *OfferRepository) Create(ctx context.Context, tx db.DBTX, o *offer.Offer) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, insertOfferSQL,
		pgconv.NumericFromDecimal(o.Price()),
		o.Currency(),
		pgconv.TimeToPgtype(o.ExpiryDate()),
		o.Name(),
		o.Description(),
		string(o.Status()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create offer", err)
	}
	return id, nil
}

func (r *OfferRepository) Update(ctx context.Context, tx db.DBTX, o *offer.Offer) error {
	tag, err := tx.Exec(ctx, updateOfferSQL,
		o.ID(),
		pgconv.NumericFromDecimal(o.Price()),
		o.Currency(),
		pgconv.TimeToPgtype(o.ExpiryDate()),
		o.Name(),
		o.Description(),
		string(o.Status()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update offer", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("offer not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *OfferRepository) CountActiveExpired(ctx context.Context, tx db.DBTX, now time.Time) (int64, error) {
	var count int64
	err := tx.QueryRow(ctx, countActiveExpiredSQL, pgconv.TimeToPgtype(now)).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count expired offers", err)
	}
	return count, nil
}

// ExpireActiveBefore is the persisted half of expiry reconciliation. The
// status = 'ACTIVE' predicate keeps the statement idempotent and guarantees
// cancelled offers are never overwritten.
func (r *OfferRepository) ExpireActiveBefore(ctx context.Context, tx db.DBTX, now time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, expireActiveBeforeSQL, pgconv.TimeToPgtype(now))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to expire offers", err)
	}
	return tag.RowsAffected(), nil
}
