// Package gormstore is the MySQL-backed storage.Store, built on gorm.
package gormstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/guttosm/salespulse/internal/storage"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/shopspring/decimal"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type customerRow struct {
	ID    int64   `gorm:"primaryKey;autoIncrement"`
	Name  *string `gorm:"size:128"`
	Email string  `gorm:"size:256"`
}

func (customerRow) TableName() string { return "customers" }

type productRow struct {
	ID       int64           `gorm:"primaryKey;autoIncrement"`
	Name     string          `gorm:"size:128;not null"`
	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity int64           `gorm:"not null"`
}

func (productRow) TableName() string { return "products" }

type orderRow struct {
	ID         int64       `gorm:"primaryKey;autoIncrement"`
	CustomerID int64       `gorm:"not null;index:idx_orders_customer_id"`
	Customer   customerRow `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	OrderDate  time.Time   `gorm:"not null;index:idx_orders_order_date"`
}

func (orderRow) TableName() string { return "orders" }

// The association fields only carry foreign keys for AutoMigrate; readers
// never preload them.
type orderItemRow struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"not null;index:idx_order_items_order_id"`
	Order     orderRow        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	ProductID int64           `gorm:"not null;index:idx_order_items_product_id"`
	Product   productRow      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Quantity  int64           `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (orderItemRow) TableName() string { return "order_items" }

// Store implements storage.Store on top of *gorm.DB.
type Store struct {
	db *gorm.DB
}

var _ storage.Store = (*Store)(nil)

// Open connects to MySQL with the given DSN and tunes the pool.
func Open(dsn string) (*Store, error) {
	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get mysql pool: %w", err)
	}
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	return New(gdb), nil
}

// New wraps an existing gorm handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates or updates the four sales tables.
func (s *Store) EnsureSchema(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&customerRow{}, &productRow{}, &orderRow{}, &orderItemRow{})
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) ReadSnapshot(ctx context.Context, fn func(storage.Reader) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&reader{db: tx})
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
}

type reader struct {
	db *gorm.DB
}

func (r *reader) FindProduct(ctx context.Context, id int64) (*models.Product, error) {
	var row productRow
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product %d: %w", id, err)
	}
	return &models.Product{ID: row.ID, Name: row.Name, Price: row.Price, Quantity: row.Quantity}, nil
}

func (r *reader) FindCustomers(ctx context.Context, ids []int64) ([]models.Customer, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []customerRow
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	return lo.Map(rows, func(c customerRow, _ int) models.Customer {
		return models.Customer{ID: c.ID, Name: mo.PointerToOption(c.Name), Email: c.Email}
	}), nil
}

func (r *reader) QueryOrders(ctx context.Context, q storage.OrderQuery) ([]models.Order, error) {
	tx := r.db.WithContext(ctx).Model(&orderRow{})
	if q.IDs != nil {
		tx = tx.Where("id IN ?", q.IDs)
	}
	if q.CustomerIDs != nil {
		tx = tx.Where("customer_id IN ?", q.CustomerIDs)
	}
	if q.From != nil {
		tx = tx.Where("order_date >= ?", *q.From)
	}
	if q.To != nil {
		tx = tx.Where("order_date <= ?", *q.To)
	}
	if q.ProductIDs != nil {
		tx = tx.Where("EXISTS (SELECT 1 FROM order_items oi WHERE oi.order_id = orders.id AND oi.product_id IN ?)", q.ProductIDs)
	}

	var rows []orderRow
	if err := tx.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	return lo.Map(rows, func(o orderRow, _ int) models.Order {
		return models.Order{ID: o.ID, CustomerID: o.CustomerID, OrderDate: o.OrderDate}
	}), nil
}

func (r *reader) QueryOrderItems(ctx context.Context, q storage.OrderItemQuery) ([]models.OrderItem, error) {
	tx := r.db.WithContext(ctx).Model(&orderItemRow{})
	if q.OrderIDs != nil {
		tx = tx.Where("order_id IN ?", q.OrderIDs)
	}
	if q.ProductIDs != nil {
		tx = tx.Where("product_id IN ?", q.ProductIDs)
	}

	var rows []orderItemRow
	if err := tx.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	return lo.Map(rows, func(it orderItemRow, _ int) models.OrderItem {
		return models.OrderItem{ID: it.ID, OrderID: it.OrderID, ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price}
	}), nil
}
