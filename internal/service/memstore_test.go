package service

import (
	"context"
	"slices"
	"sync/atomic"

	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/guttosm/salespulse/internal/storage"
	"github.com/samber/lo"
)

// memStore is an in-memory storage.Store with the same filter semantics as
// the SQL stores. snapshots counts ReadSnapshot calls.
type memStore struct {
	customers []models.Customer
	products  []models.Product
	orders    []models.Order
	items     []models.OrderItem

	snapshots atomic.Int32
	failWith  error
}

var _ storage.Store = (*memStore)(nil)

func (m *memStore) Ping(context.Context) error { return nil }

func (m *memStore) ReadSnapshot(_ context.Context, fn func(storage.Reader) error) error {
	m.snapshots.Add(1)
	if m.failWith != nil {
		return m.failWith
	}
	return fn(m)
}

func (m *memStore) FindProduct(_ context.Context, id int64) (*models.Product, error) {
	p, ok := lo.Find(m.products, func(p models.Product) bool { return p.ID == id })
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memStore) FindCustomers(_ context.Context, ids []int64) ([]models.Customer, error) {
	return lo.Filter(m.customers, func(c models.Customer, _ int) bool { return slices.Contains(ids, c.ID) }), nil
}

func (m *memStore) QueryOrders(_ context.Context, q storage.OrderQuery) ([]models.Order, error) {
	out := lo.Filter(m.orders, func(o models.Order, _ int) bool {
		if q.IDs != nil && !slices.Contains(q.IDs, o.ID) {
			return false
		}
		if q.CustomerIDs != nil && !slices.Contains(q.CustomerIDs, o.CustomerID) {
			return false
		}
		if q.From != nil && o.OrderDate.Before(*q.From) {
			return false
		}
		if q.To != nil && o.OrderDate.After(*q.To) {
			return false
		}
		if q.ProductIDs != nil && !lo.ContainsBy(m.items, func(it models.OrderItem) bool {
			return it.OrderID == o.ID && slices.Contains(q.ProductIDs, it.ProductID)
		}) {
			return false
		}
		return true
	})
	slices.SortFunc(out, func(a, b models.Order) int { return int(a.ID - b.ID) })
	return out, nil
}

func (m *memStore) QueryOrderItems(_ context.Context, q storage.OrderItemQuery) ([]models.OrderItem, error) {
	out := lo.Filter(m.items, func(it models.OrderItem, _ int) bool {
		if q.OrderIDs != nil && !slices.Contains(q.OrderIDs, it.OrderID) {
			return false
		}
		if q.ProductIDs != nil && !slices.Contains(q.ProductIDs, it.ProductID) {
			return false
		}
		return true
	})
	slices.SortFunc(out, func(a, b models.OrderItem) int { return int(a.ID - b.ID) })
	return out, nil
}
