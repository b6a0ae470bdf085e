package offer

import (
	"time"

	"offer-service/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusExpired   Status = "EXPIRED"
	StatusCancelled Status = "CANCELLED"
)

// Terminal returns true once no further transition is permitted.
func (s Status) Terminal() bool {
	return s == StatusExpired || s == StatusCancelled
}

var (
	ErrOfferExpired          = errs.Mark(errs.New("Offer could not be cancelled because it has expired"), errs.ErrDomainValidation)
	ErrOfferAlreadyCancelled = errs.Mark(errs.New("Offer could not be cancelled because it has already been cancelled"), errs.ErrDomainValidation)
)

type Offer struct {
	id          uuid.UUID
	price       decimal.Decimal
	currency    string
	expiryDate  time.Time
	name        string
	description string
	status      Status
}

// New builds a valid offer ready for persistence. The id stays uuid.Nil
// until the store assigns one, and the status is always forced to ACTIVE
// regardless of what the caller sent.
func New(in NewOfferInput, now time.Time) (*Offer, error) {
	if err := Validate(in, now); err != nil {
		return nil, err
	}

	return &Offer{
		price:       *in.Price,
		currency:    in.Currency,
		expiryDate:  *in.ExpiryDate,
		name:        in.Name,
		description: in.Description,
		status:      StatusActive,
	}, nil
}

// Reconstruct rebuilds an offer from persisted state without re-validating.
func Reconstruct(id uuid.UUID, price decimal.Decimal, currency string, expiryDate time.Time, name, description string, status Status) *Offer {
	return &Offer{
		id:          id,
		price:       price,
		currency:    currency,
		expiryDate:  expiryDate,
		name:        name,
		description: description,
		status:      status,
	}
}

// StatusAsOf is the read-path correction: an ACTIVE offer whose expiry has
// elapsed is reported as EXPIRED without being written back; the sweep
// persists the transition later. Terminal statuses are never touched, so a
// cancelled offer always stays CANCELLED.
func StatusAsOf(status Status, expiryDate time.Time, now time.Time) Status {
	if status == StatusActive && expiryDate.Before(now) {
		return StatusExpired
	}
	return status
}

func (o *Offer) EffectiveStatus(now time.Time) Status {
	return StatusAsOf(o.status, o.expiryDate, now)
}

// Cancel moves the offer to CANCELLED with expiry set to now. Offers that
// have already reached a terminal status, including ones whose expiry has
// elapsed but was not yet persisted, are rejected.
func (o *Offer) Cancel(now time.Time) error {
	switch o.EffectiveStatus(now) {
	case StatusExpired:
		return ErrOfferExpired
	case StatusCancelled:
		return ErrOfferAlreadyCancelled
	}

	o.expiryDate = now
	o.status = StatusCancelled
	return nil
}

// Equal compares offers by identity alone.
func (o *Offer) Equal(other *Offer) bool {
	if other == nil {
		return false
	}
	return o.id == other.id
}

func (o *Offer) ID() uuid.UUID          { return o.id }
func (o *Offer) Price() decimal.Decimal { return o.price }
func (o *Offer) Currency() string       { return o.currency }
func (o *Offer) ExpiryDate() time.Time  { return o.expiryDate }
func (o *Offer) Name() string           { return o.name }
func (o *Offer) Description() string    { return o.description }
func (o *Offer) Status() Status         { return o.status }
