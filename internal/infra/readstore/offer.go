package readstore

import (
	"context"

	"offer-service/internal/domain/offer"
	"offer-service/internal/infra"
	"offer-service/internal/infra/db"
	"offer-service/internal/pkg/pgconv"
	"offer-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	offerColumns = `id, price, currency, expiry_date, name, description, status, created_at, updated_at`

	findOfferByIDSQL = `SELECT ` + offerColumns + ` FROM offers WHERE id = $1`

	findAllOffersSQL = `SELECT ` + offerColumns + ` FROM offers ORDER BY created_at, id`

	searchOffersByDescriptionSQL = `
		SELECT ` + offerColumns + ` FROM offers
		WHERE description ILIKE '%' || $1 || '%'
		ORDER BY created_at, id`
)

type OfferReadStore struct {
	db db.DBTX
}

func NewOfferReadStore(dbtx db.DBTX) *OfferReadStore {
	return &OfferReadStore{db: dbtx}
}

func (r *OfferReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OfferView, error) {
	row, err := scanOfferRow(r.db.QueryRow(ctx, findOfferByIDSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("offer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find offer by id", err)
	}
	return toOfferView(row)
}

func (r *OfferReadStore) FindAll(ctx context.Context) ([]*queries.OfferView, error) {
	rows, err := r.db.Query(ctx, findAllOffersSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list offers", err)
	}
	return collectOfferViews(rows)
}

func (r *OfferReadStore) SearchByDescription(ctx context.Context, text string) ([]*queries.OfferView, error) {
	rows, err := r.db.Query(ctx, searchOffersByDescriptionSQL, text)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search offers by description", err)
	}
	return collectOfferViews(rows)
}

type offerRow struct {
	ID          uuid.UUID
	Price       pgtype.Numeric
	Currency    string
	ExpiryDate  pgtype.Timestamptz
	Name        string
	Description string
	Status      string
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

func scanOfferRow(row pgx.Row) (offerRow, error) {
	var r offerRow
	err := row.Scan(&r.ID, &r.Price, &r.Currency, &r.ExpiryDate, &r.Name, &r.Description, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func collectOfferViews(rows pgx.Rows) ([]*queries.OfferView, error) {
	defer rows.Close()

	views := make([]*queries.OfferView, 0)
	for rows.Next() {
		row, err := scanOfferRow(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan offer row", err)
		}
		view, err := toOfferView(row)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate offer rows", err)
	}
	return views, nil
}

func toOfferView(row offerRow) (*queries.OfferView, error) {
	price, err := pgconv.DecimalFromNumeric(row.Price)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert offer price", err)
	}

	return &queries.OfferView{
		ID:          row.ID,
		Price:       price,
		Currency:    row.Currency,
		ExpiryDate:  pgconv.TimeFromPgtype(row.ExpiryDate),
		Name:        row.Name,
		Description: row.Description,
		Status:      offer.Status(row.Status),
		CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:   pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}
