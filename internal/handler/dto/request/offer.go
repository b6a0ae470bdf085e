package request

import (
	"time"

	"offer-service/internal/usecase/commands"

	"github.com/shopspring/decimal"
)

// CreateOfferRequest deliberately carries no binding tags: presence checks
// belong to the domain validator so clients get its exact failure reasons
// instead of gin's generic binding errors. Price and ExpiryDate stay
// pointers so a missing field is distinguishable from a zero value.
type CreateOfferRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Currency    string           `json:"currency"`
	ExpiryDate  *time.Time       `json:"expiry_date"`
}

func (r *CreateOfferRequest) ToCommand() commands.CreateOfferRequest {
	return commands.CreateOfferRequest{
		Price:       r.Price,
		Currency:    r.Currency,
		ExpiryDate:  r.ExpiryDate,
		Name:        r.Name,
		Description: r.Description,
	}
}
