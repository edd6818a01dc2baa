package seed

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guttosm/salespulse/internal/domain/apperr"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func smallConfig() Config {
	return Config{Schema: "public", Customers: 2, Products: 2, Orders: 2, OrderItems: 3, RandomSeed: 42}
}

func fixedNow(t *testing.T) time.Time {
	t.Helper()
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
	return at
}

// expectCopy registers the PREPARE/EXEC sequence database/sql issues for a
// pq.CopyIn statement: one exec per row, then the flushing exec.
func expectCopy(mock sqlmock.Sqlmock, table string, rows int) {
	prep := mock.ExpectPrepare(regexp.QuoteMeta(`COPY "` + table + `"`))
	for i := 0; i < rows; i++ {
		prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	}
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 0))
}

func TestRun_Success(t *testing.T) {
	fixedNow(t)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`SET LOCAL search_path TO "public"`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("TRUNCATE order_items, orders, products, customers RESTART IDENTITY")).WillReturnResult(sqlmock.NewResult(0, 0))
	expectCopy(mock, "customers", 2)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM customers ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(2)))
	expectCopy(mock, "products", 2)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, price FROM products ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "price"}).AddRow(int64(1), "120.00").AddRow(int64(2), "35.00"))
	expectCopy(mock, "orders", 2)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM orders ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(2)))
	expectCopy(mock, "order_items", 3)
	mock.ExpectCommit()

	res, err := Run(context.Background(), db, smallConfig())
	require.NoError(t, err)
	require.Equal(t, &Result{Customers: 2, Products: 2, Orders: 2, OrderItems: 3}, res)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_RollsBackOnFailure(t *testing.T) {
	cases := []struct {
		name   string
		script func(mock sqlmock.Sqlmock)
	}{
		{
			name: "search_path",
			script: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("SET LOCAL search_path").WillReturnError(errBoom)
			},
		},
		{
			name: "truncate",
			script: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("SET LOCAL search_path").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("TRUNCATE").WillReturnError(errBoom)
			},
		},
		{
			name: "customer copy row",
			script: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("SET LOCAL search_path").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("TRUNCATE").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectPrepare(`COPY "customers"`).ExpectExec().WillReturnError(errBoom)
			},
		},
		{
			name: "order id read back",
			script: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("SET LOCAL search_path").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("TRUNCATE").WillReturnResult(sqlmock.NewResult(0, 0))
				expectCopy(mock, "customers", 2)
				mock.ExpectQuery("SELECT id FROM customers").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(2)))
				expectCopy(mock, "products", 2)
				mock.ExpectQuery("SELECT id, price FROM products").
					WillReturnRows(sqlmock.NewRows([]string{"id", "price"}).AddRow(int64(1), "10.00").AddRow(int64(2), "11.00"))
				expectCopy(mock, "orders", 2)
				mock.ExpectQuery("SELECT id FROM orders").WillReturnError(errBoom)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fixedNow(t)
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectBegin()
			tc.script(mock)
			mock.ExpectRollback()

			res, err := Run(context.Background(), db, smallConfig())
			require.Nil(t, res)
			require.Equal(t, apperr.SeedingFailure, apperr.KindOf(err))
			require.ErrorIs(t, err, errBoom)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRun_BeginFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errBoom)
	_, err = Run(context.Background(), db, smallConfig())
	require.True(t, apperr.Is(err, apperr.SeedingFailure))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_InvalidConfigTouchesNothing(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "empty schema", mutate: func(c *Config) { c.Schema = " " }, want: "schema"},
		{name: "zero customers", mutate: func(c *Config) { c.Customers = 0 }, want: "customers"},
		{name: "negative products", mutate: func(c *Config) { c.Products = -1 }, want: "products"},
		{name: "zero orders", mutate: func(c *Config) { c.Orders = 0 }, want: "orders"},
		{name: "zero items", mutate: func(c *Config) { c.OrderItems = 0 }, want: "order_items"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			cfg := smallConfig()
			tc.mutate(&cfg)
			_, err = Run(context.Background(), db, cfg)
			require.Equal(t, apperr.InvalidRequest, apperr.KindOf(err))
			require.Contains(t, err.Error(), tc.want)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
