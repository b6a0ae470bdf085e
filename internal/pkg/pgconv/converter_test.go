//go:build unit

package pgconv_test

import (
	"database/sql"
	"testing"

	"offer-service/internal/pkg/errs"
	"offer-service/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalNumericConversion(t *testing.T) {
	t.Run("round trip keeps scale", func(t *testing.T) {
		for _, s := range []string{"19.99", "0", "-3.50", "12345678901234.56"} {
			d, err := decimal.NewFromString(s)
			require.NoError(t, err)

			got, err := pgconv.DecimalFromNumeric(pgconv.NumericFromDecimal(d))
			require.NoError(t, err)
			assert.True(t, d.Equal(got), "expected %s, got %s", d, got)
		}
	})

	t.Run("invalid numeric is rejected", func(t *testing.T) {
		_, err := pgconv.DecimalFromNumeric(pgtype.Numeric{})
		require.ErrorIs(t, err, pgconv.ErrInvalidNumericValue)

		_, err = pgconv.DecimalFromNumeric(pgtype.Numeric{NaN: true, Valid: true})
		require.ErrorIs(t, err, pgconv.ErrInvalidNumericValue)
	})
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, pgconv.IsNoRows(pgx.ErrNoRows))
	assert.True(t, pgconv.IsNoRows(sql.ErrNoRows))
	assert.True(t, pgconv.IsNoRows(errs.Wrap(pgx.ErrNoRows, "query failed")))
	assert.False(t, pgconv.IsNoRows(errs.New("other failure")))
	assert.False(t, pgconv.IsNoRows(nil))
}
