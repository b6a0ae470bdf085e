//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// OfferFixture describes an offers row inserted directly, bypassing the API.
// Useful for seeding terminal or already-expired states the create endpoint
// would reject.
type OfferFixture struct {
	Price       decimal.Decimal
	Currency    string
	ExpiryDate  time.Time
	Name        string
	Description string
	Status      string
}

func InsertOffer(t *testing.T, db DBLike, f OfferFixture) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	ctx := context.Background()
	err := db.QueryRow(ctx, `
		INSERT INTO offers (price, currency, expiry_date, name, description, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		f.Price, f.Currency, f.ExpiryDate, f.Name, f.Description, f.Status,
	).Scan(&id)
	require.NoError(t, err, "Failed to insert offer fixture")

	return id
}

func CountOffersByStatus(t *testing.T, db DBLike, status string) int {
	t.Helper()

	var count int
	err := db.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM offers WHERE status = $1", status).Scan(&count)
	require.NoError(t, err)

	return count
}

func OfferStatus(t *testing.T, db DBLike, id uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(),
		"SELECT status FROM offers WHERE id = $1", id).Scan(&status)
	require.NoError(t, err)

	return status
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables so each subtest starts from a clean slate
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
