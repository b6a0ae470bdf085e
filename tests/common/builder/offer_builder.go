//go:build unit || e2e

package builder

import (
	"time"

	domoffer "offer-service/internal/domain/offer"
	reqdto "offer-service/internal/handler/dto/request"
	"offer-service/internal/usecase/queries"
	"offer-service/tests/common/dbtest"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OfferBuilder struct {
	ID          uuid.UUID
	Price       decimal.Decimal
	Currency    string
	ExpiryDate  time.Time
	Name        string
	Description string
	Status      domoffer.Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewOfferBuilder() *OfferBuilder {
	now := time.Now()
	return &OfferBuilder{
		ID:          uuid.New(),
		Price:       decimal.NewFromFloat(19.99),
		Currency:    "GBP",
		ExpiryDate:  now.Add(24 * time.Hour),
		Name:        "Spring Sale",
		Description: "20 percent off all garden furniture",
		Status:      domoffer.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (b *OfferBuilder) With(mutate func(*OfferBuilder)) *OfferBuilder {
	mutate(b)
	return b
}

func (b *OfferBuilder) WithName(name string) *OfferBuilder {
	b.Name = name
	return b
}

func (b *OfferBuilder) WithDescription(description string) *OfferBuilder {
	b.Description = description
	return b
}

func (b *OfferBuilder) WithPrice(price decimal.Decimal) *OfferBuilder {
	b.Price = price
	return b
}

func (b *OfferBuilder) WithCurrency(currency string) *OfferBuilder {
	b.Currency = currency
	return b
}

func (b *OfferBuilder) WithExpiryDate(expiry time.Time) *OfferBuilder {
	b.ExpiryDate = expiry
	return b
}

func (b *OfferBuilder) WithStatus(status domoffer.Status) *OfferBuilder {
	b.Status = status
	return b
}

// Build methods
func (b *OfferBuilder) BuildDomain(now time.Time) (*domoffer.Offer, error) {
	price := b.Price
	expiry := b.ExpiryDate
	return domoffer.New(domoffer.NewOfferInput{
		Price:       &price,
		Currency:    b.Currency,
		ExpiryDate:  &expiry,
		Name:        b.Name,
		Description: b.Description,
	}, now)
}

func (b *OfferBuilder) BuildReconstructed() *domoffer.Offer {
	return domoffer.Reconstruct(b.ID, b.Price, b.Currency, b.ExpiryDate, b.Name, b.Description, b.Status)
}

func (b *OfferBuilder) BuildCreateRequestDTO() reqdto.CreateOfferRequest {
	price := b.Price
	expiry := b.ExpiryDate
	return reqdto.CreateOfferRequest{
		Name:        b.Name,
		Description: b.Description,
		Price:       &price,
		Currency:    b.Currency,
		ExpiryDate:  &expiry,
	}
}

func (b *OfferBuilder) BuildView() *queries.OfferView {
	return &queries.OfferView{
		ID:          b.ID,
		Price:       b.Price,
		Currency:    b.Currency,
		ExpiryDate:  b.ExpiryDate,
		Name:        b.Name,
		Description: b.Description,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (b *OfferBuilder) BuildFixture() dbtest.OfferFixture {
	return dbtest.OfferFixture{
		Price:       b.Price,
		Currency:    b.Currency,
		ExpiryDate:  b.ExpiryDate,
		Name:        b.Name,
		Description: b.Description,
		Status:      string(b.Status),
	}
}
