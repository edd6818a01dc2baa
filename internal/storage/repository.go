package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/salespulse/internal/domain/models"
	pq "github.com/lib/pq"
	"github.com/samber/mo"
)

// OrderQuery filters orders. Zero-valued fields do not filter.
//
// From and To are inclusive. ProductIDs keeps orders that contain at least
// one item of any of the listed products.
type OrderQuery struct {
	IDs         []int64
	CustomerIDs []int64
	From        *time.Time
	To          *time.Time
	ProductIDs  []int64
}

// OrderItemQuery filters order items. Nil slices do not filter.
type OrderItemQuery struct {
	OrderIDs   []int64
	ProductIDs []int64
}

// Reader is the read-only view of the sales dataset used by the summary engine.
type Reader interface {
	// FindProduct returns nil, nil when the product does not exist.
	FindProduct(ctx context.Context, id int64) (*models.Product, error)
	FindCustomers(ctx context.Context, ids []int64) ([]models.Customer, error)
	QueryOrders(ctx context.Context, q OrderQuery) ([]models.Order, error)
	QueryOrderItems(ctx context.Context, q OrderItemQuery) ([]models.OrderItem, error)
}

// Store hands out consistent snapshots of the dataset.
type Store interface {
	// ReadSnapshot runs fn inside one read-only transaction so that every
	// read made through the Reader sees the same state.
	ReadSnapshot(ctx context.Context, fn func(Reader) error) error
	Ping(ctx context.Context) error
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type salesRepository struct {
	db *sql.DB
}

// NewSalesRepository returns a PostgreSQL-backed Store.
func NewSalesRepository(db *sql.DB) Store {
	return &salesRepository{db: db}
}

func (r *salesRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// ReadSnapshot opens a REPEATABLE READ, read-only transaction; it is always
// rolled back or committed before returning.
func (r *salesRepository) ReadSnapshot(ctx context.Context, fn func(Reader) error) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	if err := fn(&pgReader{q: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

type pgReader struct {
	q queryer
}

func (r *pgReader) FindProduct(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	err := r.q.QueryRowContext(ctx,
		`SELECT id, name, price, quantity FROM products WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Price, &p.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product %d: %w", id, err)
	}
	return &p, nil
}

func (r *pgReader) FindCustomers(ctx context.Context, ids []int64) ([]models.Customer, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, name, email FROM customers WHERE id = ANY($1) ORDER BY id`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Customer
	for rows.Next() {
		var (
			c     models.Customer
			name  sql.NullString
			email sql.NullString
		)
		if err := rows.Scan(&c.ID, &name, &email); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		c.Name = mo.TupleToOption(name.String, name.Valid)
		c.Email = email.String
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *pgReader) QueryOrders(ctx context.Context, q OrderQuery) ([]models.Order, error) {
	// Build dynamic conditions; placeholders are numbered in append order.
	var (
		conditions = "TRUE"
		args       []any
	)
	add := func(format string, arg any) {
		args = append(args, arg)
		conditions += fmt.Sprintf(" AND "+format, len(args))
	}
	if q.IDs != nil {
		add("o.id = ANY($%d)", pq.Array(q.IDs))
	}
	if q.CustomerIDs != nil {
		add("o.customer_id = ANY($%d)", pq.Array(q.CustomerIDs))
	}
	if q.From != nil {
		add("o.order_date >= $%d", *q.From)
	}
	if q.To != nil {
		add("o.order_date <= $%d", *q.To)
	}
	if q.ProductIDs != nil {
		add("EXISTS (SELECT 1 FROM order_items oi WHERE oi.order_id = o.id AND oi.product_id = ANY($%d))", pq.Array(q.ProductIDs))
	}

	query := fmt.Sprintf(`
		SELECT o.id, o.customer_id, o.order_date
		FROM orders o
		WHERE %s
		ORDER BY o.id`, conditions)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.OrderDate); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *pgReader) QueryOrderItems(ctx context.Context, q OrderItemQuery) ([]models.OrderItem, error) {
	var (
		conditions = "TRUE"
		args       []any
	)
	if q.OrderIDs != nil {
		args = append(args, pq.Array(q.OrderIDs))
		conditions += fmt.Sprintf(" AND order_id = ANY($%d)", len(args))
	}
	if q.ProductIDs != nil {
		args = append(args, pq.Array(q.ProductIDs))
		conditions += fmt.Sprintf(" AND product_id = ANY($%d)", len(args))
	}

	query := fmt.Sprintf(`
		SELECT id, order_id, product_id, quantity, price
		FROM order_items
		WHERE %s
		ORDER BY id`, conditions)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.OrderItem
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
