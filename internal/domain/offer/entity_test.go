//go:build unit

package offer_test

import (
	"testing"
	"time"

	"offer-service/internal/domain/offer"
	"offer-service/internal/pkg/errs"
	"offer-service/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.OfferBuilder)
	errIs  error
	errMsg string
}

func TestNewOffer(t *testing.T) {
	now := time.Now()

	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewOfferBuilder().BuildDomain(now)
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.Equal(t, uuid.Nil, actual.ID(), "id is assigned by the store")
		assert.Equal(t, offer.StatusActive, actual.Status())
		assert.Equal(t, "GBP", actual.Currency())
		assert.True(t, actual.Price().Equal(decimal.NewFromFloat(19.99)))
	})

	t.Run("creation validation", func(t *testing.T) {
		runCases(t, now, []testCase{
			{
				name:   "missing currency",
				mutate: func(b *builder.OfferBuilder) { b.WithCurrency("") },
				errIs:  offer.ErrEmptyCurrency,
				errMsg: "Currency value can not be empty",
			},
			{
				name:   "missing description",
				mutate: func(b *builder.OfferBuilder) { b.WithDescription("") },
				errIs:  offer.ErrEmptyDescription,
				errMsg: "Offer description can not be empty",
			},
			{
				name:   "missing name",
				mutate: func(b *builder.OfferBuilder) { b.WithName("") },
				errIs:  offer.ErrEmptyName,
				errMsg: "Offer name can not be empty",
			},
			{
				name:   "expiry date in the past",
				mutate: func(b *builder.OfferBuilder) { b.WithExpiryDate(now.Add(-time.Minute)) },
				errIs:  offer.ErrInvalidExpiryDate,
				errMsg: "Expiry date is not valid",
			},
			{
				name:   "expiry date exactly now",
				mutate: func(b *builder.OfferBuilder) { b.WithExpiryDate(now) },
				errIs:  offer.ErrInvalidExpiryDate,
			},
			{
				name:   "expiry date just ahead",
				mutate: func(b *builder.OfferBuilder) { b.WithExpiryDate(now.Add(time.Second)) },
			},
		})
	})

	t.Run("missing price", func(t *testing.T) {
		expiry := now.Add(time.Hour)
		_, err := offer.New(offer.NewOfferInput{
			Currency:    "GBP",
			ExpiryDate:  &expiry,
			Name:        "Spring Sale",
			Description: "desc",
		}, now)
		require.ErrorIs(t, err, offer.ErrEmptyPrice)
		assert.Equal(t, "Offer price can not be empty", err.Error())
	})

	t.Run("first violated rule wins", func(t *testing.T) {
		// every field invalid; currency is checked first
		_, err := offer.New(offer.NewOfferInput{}, now)
		require.ErrorIs(t, err, offer.ErrEmptyCurrency)
	})

	t.Run("validation errors carry the shared mark", func(t *testing.T) {
		_, err := builder.NewOfferBuilder().WithCurrency("").BuildDomain(now)
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrDomainValidation),
			"validator errors must classify as domain validation via errs.Is")
		assert.False(t, errs.Is(err, errs.ErrOfferNotFound))
	})
}

func TestStatusAsOf(t *testing.T) {
	now := time.Now()

	t.Run("active offer past expiry reads as expired", func(t *testing.T) {
		got := offer.StatusAsOf(offer.StatusActive, now.Add(-time.Minute), now)
		assert.Equal(t, offer.StatusExpired, got)
	})

	t.Run("active offer before expiry stays active", func(t *testing.T) {
		got := offer.StatusAsOf(offer.StatusActive, now.Add(time.Minute), now)
		assert.Equal(t, offer.StatusActive, got)
	})

	t.Run("cancelled offer past expiry stays cancelled", func(t *testing.T) {
		got := offer.StatusAsOf(offer.StatusCancelled, now.Add(-time.Minute), now)
		assert.Equal(t, offer.StatusCancelled, got)
	})

	t.Run("expired status is untouched", func(t *testing.T) {
		got := offer.StatusAsOf(offer.StatusExpired, now.Add(time.Minute), now)
		assert.Equal(t, offer.StatusExpired, got)
	})
}

func TestCancel(t *testing.T) {
	now := time.Now()

	t.Run("active offer cancels and pins expiry to now", func(t *testing.T) {
		o := builder.NewOfferBuilder().BuildReconstructed()

		require.NoError(t, o.Cancel(now))
		assert.Equal(t, offer.StatusCancelled, o.Status())
		assert.True(t, o.ExpiryDate().Equal(now))
	})

	t.Run("offer past expiry can not be cancelled", func(t *testing.T) {
		o := builder.NewOfferBuilder().
			WithExpiryDate(now.Add(-time.Minute)).
			BuildReconstructed()

		err := o.Cancel(now)
		require.ErrorIs(t, err, offer.ErrOfferExpired)
		assert.Equal(t, "Offer could not be cancelled because it has expired", err.Error())
		assert.Equal(t, offer.StatusActive, o.Status(), "rejected cancel must not mutate")
	})

	t.Run("cancelled offer can not be cancelled again", func(t *testing.T) {
		o := builder.NewOfferBuilder().
			WithStatus(offer.StatusCancelled).
			BuildReconstructed()

		err := o.Cancel(now)
		require.ErrorIs(t, err, offer.ErrOfferAlreadyCancelled)
		assert.Equal(t, "Offer could not be cancelled because it has already been cancelled", err.Error())
	})

	t.Run("persisted expired status is rejected", func(t *testing.T) {
		o := builder.NewOfferBuilder().
			WithStatus(offer.StatusExpired).
			WithExpiryDate(now.Add(time.Hour)).
			BuildReconstructed()

		require.ErrorIs(t, o.Cancel(now), offer.ErrOfferExpired)
	})
}

func TestTerminal(t *testing.T) {
	assert.False(t, offer.StatusActive.Terminal())
	assert.True(t, offer.StatusExpired.Terminal())
	assert.True(t, offer.StatusCancelled.Terminal())
}

func TestEqual(t *testing.T) {
	id := uuid.New()

	a := builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) { b.ID = id }).BuildReconstructed()
	b := builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) {
		b.ID = id
		b.Name = "Different Name"
	}).BuildReconstructed()
	c := builder.NewOfferBuilder().BuildReconstructed()

	assert.True(t, a.Equal(b), "identity comparison ignores attributes")
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func runCases(t *testing.T, now time.Time, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewOfferBuilder().With(c.mutate).BuildDomain(now)

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
				return
			}
			require.Nil(t, actual)
			require.ErrorIs(t, err, c.errIs)
			if c.errMsg != "" {
				assert.Equal(t, c.errMsg, err.Error())
			}
		})
	}
}
