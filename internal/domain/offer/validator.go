package offer

import (
	"time"

	"offer-service/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Rule errors, one per constraint. Each carries the client-facing reason and
// is marked with errs.ErrDomainValidation so boundaries can classify with
// errors.Is instead of matching strings.
var (
	ErrEmptyCurrency     = errs.Mark(errs.New("Currency value can not be empty"), errs.ErrDomainValidation)
	ErrEmptyDescription  = errs.Mark(errs.New("Offer description can not be empty"), errs.ErrDomainValidation)
	ErrEmptyName         = errs.Mark(errs.New("Offer name can not be empty"), errs.ErrDomainValidation)
	ErrEmptyPrice        = errs.Mark(errs.New("Offer price can not be empty"), errs.ErrDomainValidation)
	ErrInvalidExpiryDate = errs.Mark(errs.New("Expiry date is not valid"), errs.ErrDomainValidation)
)

// NewOfferInput carries client-supplied fields before validation. Price and
// ExpiryDate are pointers so "absent" is distinguishable from a zero value.
type NewOfferInput struct {
	Price       *decimal.Decimal
	Currency    string
	ExpiryDate  *time.Time
	Name        string
	Description string
}

// Validate checks the creation constraints in a fixed order; the error of
// the first violated rule is returned. Length limits on name and description
// are left to the storage schema.
func Validate(in NewOfferInput, now time.Time) error {
	if in.Currency == "" {
		return ErrEmptyCurrency
	}
	if in.Description == "" {
		return ErrEmptyDescription
	}
	if in.Name == "" {
		return ErrEmptyName
	}
	if in.Price == nil {
		return ErrEmptyPrice
	}
	if in.ExpiryDate == nil || !in.ExpiryDate.After(now) {
		return ErrInvalidExpiryDate
	}
	return nil
}
