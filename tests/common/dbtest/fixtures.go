//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"supplier-quotes/internal/domain/quote"
	"supplier-quotes/internal/infra/pgquery"
	"supplier-quotes/internal/infra/repository/converter"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InsertQuote writes q with its deal and supplier. Deals and suppliers that
// already exist are left as they are.
func InsertQuote(ctx context.Context, db DBLike, q *quote.Quote) error {
	deal := q.Deal()
	if _, err := db.Exec(ctx,
		"INSERT INTO deals (id, title, stage) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING",
		deal.ID, deal.Title, deal.Stage); err != nil {
		return fmt.Errorf("insert deal: %w", err)
	}

	sup := q.Supplier()
	if _, err := db.Exec(ctx,
		"INSERT INTO suppliers (id, name, city) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING",
		sup.ID, sup.Name, sup.City); err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}

	p, err := converter.QuoteToInsertParams(q)
	if err != nil {
		return err
	}
	err = pgquery.New().InsertQuoteRow(ctx, db, p)
	if err != nil {
		return fmt.Errorf("insert quote %s: %w", q.Number(), err)
	}
	return nil
}

func SeedQuotes(pool *pgxpool.Pool, quotes []*quote.Quote) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, q := range quotes {
		if err := InsertQuote(ctx, pool, q); err != nil {
			return err
		}
	}
	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates all tables and reseeds them with quotes.
func ResetDB(pool *pgxpool.Pool, quotes []*quote.Quote) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'`)
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
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedQuotes(pool, quotes)
}
