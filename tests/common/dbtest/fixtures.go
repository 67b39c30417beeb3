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
	"github.com/stretchr/testify/require"
)

func CreateTestPartner(t *testing.T, db DBLike, name string, envelope int64) uuid.UUID {
	t.Helper()

	partnerID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO partners (id, name, envelope, active) VALUES ($1, $2, $3, true)",
		partnerID, name, envelope)
	require.NoError(t, err)

	_, err = db.Exec(ctx, "INSERT INTO partner_capacity (partner_id, reserved) VALUES ($1, 0)", partnerID)
	require.NoError(t, err)

	return partnerID
}

func CreateTestProduct(t *testing.T, db DBLike, partnerID uuid.UUID, title string) uuid.UUID {
	t.Helper()

	productID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO products (id, partner_id, category, title) VALUES ($1, $2, 'autocall', $3)",
		productID, partnerID, title)
	require.NoError(t, err)

	return productID
}

// ReservedFor reads the persisted committed amount of a partner.
func ReservedFor(t *testing.T, db DBLike, partnerID uuid.UUID) int64 {
	t.Helper()

	var reserved int64
	err := db.QueryRow(context.Background(),
		"SELECT reserved FROM partner_capacity WHERE partner_id = $1", partnerID).Scan(&reserved)
	require.NoError(t, err)
	return reserved
}

// ActiveTotalFor sums active reservation amounts of a partner.
func ActiveTotalFor(t *testing.T, db DBLike, partnerID uuid.UUID) int64 {
	t.Helper()

	var total int64
	err := db.QueryRow(context.Background(),
		"SELECT COALESCE(SUM(amount), 0)::bigint FROM reservations WHERE partner_id = $1 AND status = 'active'",
		partnerID).Scan(&total)
	require.NoError(t, err)
	return total
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
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
