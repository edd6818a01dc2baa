// Package seed fills the sales schema with deterministic pseudo-random data.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/guttosm/salespulse/internal/domain/apperr"
	"github.com/guttosm/salespulse/internal/logger"
	pq "github.com/lib/pq"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Config sizes a seeding run. The same RandomSeed always produces the same data
// relative to the run's start time.
type Config struct {
	Schema     string
	Customers  int
	Products   int
	Orders     int
	OrderItems int
	RandomSeed int64
}

// Result reports how many rows of each table were written.
type Result struct {
	Customers  int `json:"customers"`
	Products   int `json:"products"`
	Orders     int `json:"orders"`
	OrderItems int `json:"orderItems"`
}

// now is swapped in tests.
var now = func() time.Time { return time.Now().UTC() }

// Validate rejects empty schemas and non-positive table sizes.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Schema) == "" {
		return apperr.InvalidRequestf("seed schema must not be empty")
	}
	sizes := map[string]int{
		"customers":   c.Customers,
		"products":    c.Products,
		"orders":      c.Orders,
		"order_items": c.OrderItems,
	}
	for _, table := range []string{"customers", "products", "orders", "order_items"} {
		if sizes[table] <= 0 {
			return apperr.InvalidRequestf("seed size for %s must be positive, got %d", table, sizes[table])
		}
	}
	return nil
}

// Run truncates the four sales tables in cfg.Schema and refills them inside a
// single transaction. Either every table is replaced or nothing changes.
func Run(ctx context.Context, db *sql.DB, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	logger.L().Info().
		Str("schema", cfg.Schema).
		Int("customers", cfg.Customers).
		Int("products", cfg.Products).
		Int("orders", cfg.Orders).
		Int("order_items", cfg.OrderItems).
		Int64("random_seed", cfg.RandomSeed).
		Msg("seeding start")

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperr.Seeding(fmt.Errorf("begin: %w", err))
	}

	res, err := populate(ctx, tx, cfg, rand.New(rand.NewSource(cfg.RandomSeed)))
	if err != nil {
		_ = tx.Rollback()
		logger.L().Error().Err(err).Str("schema", cfg.Schema).Msg("seeding failed, rolled back")
		return nil, apperr.Seeding(err)
	}
	if err := tx.Commit(); err != nil {
		logger.L().Error().Err(err).Str("schema", cfg.Schema).Msg("seeding commit failed")
		return nil, apperr.Seeding(fmt.Errorf("commit: %w", err))
	}

	logger.L().Info().
		Str("schema", cfg.Schema).
		Int("orders", res.Orders).
		Int("order_items", res.OrderItems).
		Dur("elapsed", time.Since(start)).
		Msg("seeding done")
	return res, nil
}

type pricedProduct struct {
	id    int64
	price decimal.Decimal
}

func populate(ctx context.Context, tx *sql.Tx, cfg Config, rng *rand.Rand) (*Result, error) {
	if _, err := tx.ExecContext(ctx, "SET LOCAL search_path TO "+pq.QuoteIdentifier(cfg.Schema)); err != nil {
		return nil, fmt.Errorf("set search_path: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "TRUNCATE order_items, orders, products, customers RESTART IDENTITY"); err != nil {
		return nil, fmt.Errorf("truncate: %w", err)
	}

	customers := lo.Times(cfg.Customers, func(i int) []any {
		return []any{fmt.Sprintf("User%d", i+1), fmt.Sprintf("user%d@example.com", i+1)}
	})
	if err := copyRows(ctx, tx, "customers", []string{"name", "email"}, customers); err != nil {
		return nil, err
	}
	customerIDs, err := queryIDs(ctx, tx, "SELECT id FROM customers ORDER BY id")
	if err != nil {
		return nil, err
	}

	products := lo.Times(cfg.Products, func(i int) []any {
		price := decimal.NewFromInt(10 + rng.Int63n(490))
		return []any{fmt.Sprintf("Product%d", i+1), price, 1 + rng.Int63n(99)}
	})
	if err := copyRows(ctx, tx, "products", []string{"name", "price", "quantity"}, products); err != nil {
		return nil, err
	}
	priced, err := queryPrices(ctx, tx)
	if err != nil {
		return nil, err
	}

	base := now()
	orders := lo.Times(cfg.Orders, func(i int) []any {
		return []any{customerIDs[rng.Intn(len(customerIDs))], base.AddDate(0, 0, -i)}
	})
	if err := copyRows(ctx, tx, "orders", []string{"customer_id", "order_date"}, orders); err != nil {
		return nil, err
	}
	orderIDs, err := queryIDs(ctx, tx, "SELECT id FROM orders ORDER BY id")
	if err != nil {
		return nil, err
	}

	items := lo.Times(cfg.OrderItems, func(int) []any {
		p := priced[rng.Intn(len(priced))]
		return []any{orderIDs[rng.Intn(len(orderIDs))], p.id, 1 + rng.Int63n(4), p.price}
	})
	if err := copyRows(ctx, tx, "order_items", []string{"order_id", "product_id", "quantity", "price"}, items); err != nil {
		return nil, err
	}

	return &Result{
		Customers:  len(customerIDs),
		Products:   len(priced),
		Orders:     len(orderIDs),
		OrderItems: len(items),
	}, nil
}

// copyRows streams rows into table with COPY FROM STDIN.
func copyRows(ctx context.Context, tx *sql.Tx, table string, columns []string, rows [][]any) error {
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(table, columns...))
	if err != nil {
		return fmt.Errorf("prepare copy %s: %w", table, err)
	}
	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			_ = stmt.Close()
			return fmt.Errorf("copy %s: %w", table, err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		return fmt.Errorf("flush copy %s: %w", table, err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("close copy %s: %w", table, err)
	}
	return nil
}

func queryIDs(ctx context.Context, tx *sql.Tx, query string) ([]int64, error) {
	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("read back ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("read back ids: no rows for %q", query)
	}
	return ids, nil
}

func queryPrices(ctx context.Context, tx *sql.Tx) ([]pricedProduct, error) {
	rows, err := tx.QueryContext(ctx, "SELECT id, price FROM products ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("read back products: %w", err)
	}
	defer rows.Close()

	var out []pricedProduct
	for rows.Next() {
		var p pricedProduct
		if err := rows.Scan(&p.id, &p.price); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("read back products: no rows")
	}
	return out, nil
}
