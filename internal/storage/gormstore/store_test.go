package gormstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guttosm/salespulse/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{Conn: db, SkipInitializeWithVersion: true}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return New(gdb), mock
}

func TestReadSnapshot_FindProduct(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `products` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "quantity"}).AddRow(1, "Product1", "10.00", 50))
	mock.ExpectCommit()

	err := s.ReadSnapshot(context.Background(), func(r storage.Reader) error {
		p, err := r.FindProduct(context.Background(), 1)
		require.NoError(t, err)
		require.NotNil(t, p)
		require.Equal(t, int64(50), p.Quantity)
		require.True(t, p.Price.Equal(decimal.NewFromInt(10)))
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReadSnapshot_RollsBack(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := s.ReadSnapshot(context.Background(), func(storage.Reader) error { return boom })
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindProduct_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("FROM `products`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "quantity"}))

	p, err := (&reader{db: s.db}).FindProduct(context.Background(), 404)
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestFindCustomers_NullName(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT \\* FROM `customers` WHERE id IN \\(\\?,\\?\\) ORDER BY id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).
			AddRow(1, "User1", "u1@example.com").
			AddRow(2, nil, "u2@example.com"))

	out, err := (&reader{db: s.db}).FindCustomers(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "User1", out[0].DisplayName())
	require.Equal(t, "Unknown User", out[1].DisplayName())
}

func TestQueryOrders_DateRangeAndProducts(t *testing.T) {
	s, mock := newMockStore(t)
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT \\* FROM `orders` WHERE order_date >= \\? AND order_date <= \\? AND \\(EXISTS \\(SELECT 1 FROM order_items oi WHERE oi.order_id = orders.id AND oi.product_id IN \\(\\?\\)\\)\\) ORDER BY id").
		WithArgs(from, to, int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "order_date"}).AddRow(5, 2, from))

	out, err := (&reader{db: s.db}).QueryOrders(context.Background(), storage.OrderQuery{From: &from, To: &to, ProductIDs: []int64{7}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, int64(5), out[0].ID)
	require.Equal(t, int64(2), out[0].CustomerID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryOrderItems(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT \\* FROM `order_items` WHERE order_id IN \\(\\?,\\?\\) ORDER BY id").
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "quantity", "price"}).
			AddRow(1, 1, 3, 2, "5.50").
			AddRow(2, 2, 3, 1, "5.50"))

	out, err := (&reader{db: s.db}).QueryOrderItems(context.Background(), storage.OrderItemQuery{OrderIDs: []int64{1, 2}})
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.True(t, out[0].LineTotal().Equal(decimal.RequireFromString("11")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRowSchema_ForeignKeys(t *testing.T) {
	cases := []struct {
		model    any
		relation string
		table    string
		column   string
		onDelete string
	}{
		{model: &orderRow{}, relation: "Customer", table: "customers", column: "customer_id", onDelete: "RESTRICT"},
		{model: &orderItemRow{}, relation: "Order", table: "orders", column: "order_id", onDelete: "CASCADE"},
		{model: &orderItemRow{}, relation: "Product", table: "products", column: "product_id", onDelete: "RESTRICT"},
	}
	for _, tc := range cases {
		t.Run(tc.relation, func(t *testing.T) {
			sch, err := schema.Parse(tc.model, &sync.Map{}, schema.NamingStrategy{})
			require.NoError(t, err)

			rel, ok := sch.Relationships.Relations[tc.relation]
			require.True(t, ok, "missing relation %s", tc.relation)
			c := rel.ParseConstraint()
			require.NotNil(t, c, "relation %s creates no foreign key", tc.relation)
			require.Equal(t, tc.table, c.ReferenceSchema.Table)
			require.Len(t, c.ForeignKeys, 1)
			require.Equal(t, tc.column, c.ForeignKeys[0].DBName)
			require.Equal(t, tc.onDelete, c.OnDelete)
		})
	}
}
