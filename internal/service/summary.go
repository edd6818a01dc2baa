package service

import (
	"context"
	"slices"

	"github.com/guttosm/salespulse/internal/domain/apperr"
	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/guttosm/salespulse/internal/logger"
	"github.com/guttosm/salespulse/internal/storage"
	"github.com/samber/lo"
)

// SummaryService computes read-only sales summaries.
//
// Every call runs inside exactly one storage snapshot and either returns the
// complete result or an error. Implementations hold no state between calls
// and are safe for concurrent use.
type SummaryService interface {
	// ProductSales returns remaining stock and the orders containing productID.
	ProductSales(ctx context.Context, productID int64) (*models.ProductSales, error)
	// SalesByProducts returns every in-range order containing any of the
	// requested products, broken down per product.
	SalesByProducts(ctx context.Context, q models.SalesQuery) (*models.SalesReport, error)
	// SalesByCustomers rolls up in-range orders per customer.
	SalesByCustomers(ctx context.Context, r models.DateRange) (*models.CustomerReport, error)
}

type summaryService struct {
	store storage.Store
}

func NewSummaryService(store storage.Store) SummaryService {
	return &summaryService{store: store}
}

func (s *summaryService) ProductSales(ctx context.Context, productID int64) (*models.ProductSales, error) {
	if err := ValidateProductID(productID); err != nil {
		return nil, err
	}

	var out *models.ProductSales
	err := s.store.ReadSnapshot(ctx, func(r storage.Reader) error {
		product, err := r.FindProduct(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return apperr.NotFoundf("product %d not found", productID)
		}

		items, err := r.QueryOrderItems(ctx, storage.OrderItemQuery{ProductIDs: []int64{productID}})
		if err != nil {
			return err
		}
		orders, err := ordersOf(ctx, r, items)
		if err != nil {
			return err
		}
		names, err := customerNames(ctx, r, orders)
		if err != nil {
			return err
		}

		byOrder := lo.GroupBy(items, func(it models.OrderItem) int64 { return it.OrderID })
		rows := lo.Map(orders, func(o models.Order, _ int) models.ProductOrder {
			group := byOrder[o.ID]
			return models.ProductOrder{
				OrderID:    o.ID,
				OrderDate:  o.OrderDate,
				Count:      sumQuantity(group),
				TotalPrice: sumTotal(group),
				UserName:   names(o.CustomerID),
			}
		})

		sold := lo.SumBy(rows, func(o models.ProductOrder) int64 { return o.Count })
		out = &models.ProductSales{
			ProductID: productID,
			LeftCount: leftCount(product.Quantity, sold),
			Orders:    rows,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Debug().
		Int64("product_id", productID).
		Int("orders", len(out.Orders)).
		Int64("left_count", out.LeftCount).
		Msg("product sales summary")
	return out, nil
}

func (s *summaryService) SalesByProducts(ctx context.Context, q models.SalesQuery) (*models.SalesReport, error) {
	productIDs, err := ValidateSalesQuery(q)
	if err != nil {
		return nil, err
	}
	from, to := q.Range.Start, q.Range.End

	out := &models.SalesReport{Orders: []models.OrderSales{}}
	err = s.store.ReadSnapshot(ctx, func(r storage.Reader) error {
		orders, err := r.QueryOrders(ctx, storage.OrderQuery{From: &from, To: &to, ProductIDs: productIDs})
		if err != nil || len(orders) == 0 {
			return err
		}
		items, err := r.QueryOrderItems(ctx, storage.OrderItemQuery{
			OrderIDs:   lo.Map(orders, idOfOrder),
			ProductIDs: productIDs,
		})
		if err != nil {
			return err
		}
		names, err := customerNames(ctx, r, orders)
		if err != nil {
			return err
		}

		byOrder := lo.GroupBy(items, func(it models.OrderItem) int64 { return it.OrderID })
		out.Orders = lo.FilterMap(orders, func(o models.Order, _ int) (models.OrderSales, bool) {
			group, ok := byOrder[o.ID]
			if !ok {
				return models.OrderSales{}, false
			}
			return models.OrderSales{
				OrderID:    o.ID,
				OrderDate:  o.OrderDate,
				UserName:   names(o.CustomerID),
				Count:      sumQuantity(group),
				TotalPrice: sumTotal(group),
				Products:   groupByProduct(group),
			}, true
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Debug().
		Ints64("product_ids", productIDs).
		Int("orders", len(out.Orders)).
		Msg("multi-product sales summary")
	return out, nil
}

func (s *summaryService) SalesByCustomers(ctx context.Context, dr models.DateRange) (*models.CustomerReport, error) {
	if err := ValidateDateRange(dr); err != nil {
		return nil, err
	}
	from, to := dr.Start, dr.End

	out := &models.CustomerReport{Users: []models.CustomerSales{}}
	err := s.store.ReadSnapshot(ctx, func(r storage.Reader) error {
		orders, err := r.QueryOrders(ctx, storage.OrderQuery{From: &from, To: &to})
		if err != nil || len(orders) == 0 {
			return err
		}
		items, err := r.QueryOrderItems(ctx, storage.OrderItemQuery{OrderIDs: lo.Map(orders, idOfOrder)})
		if err != nil {
			return err
		}
		names, err := customerNames(ctx, r, orders)
		if err != nil {
			return err
		}

		itemsByOrder := lo.GroupBy(items, func(it models.OrderItem) int64 { return it.OrderID })
		ordersByCustomer := lo.GroupBy(orders, func(o models.Order) int64 { return o.CustomerID })

		customerIDs := lo.Uniq(lo.Map(orders, customerIDOfOrder))
		slices.Sort(customerIDs)

		out.Users = lo.FilterMap(customerIDs, func(cid int64, _ int) (models.CustomerSales, bool) {
			own := ordersByCustomer[cid]
			if len(own) == 0 {
				return models.CustomerSales{}, false
			}
			u := models.CustomerSales{CustomerID: cid, Name: names(cid)}
			u.Orders = lo.Map(own, func(o models.Order, _ int) models.CustomerOrder {
				group := itemsByOrder[o.ID]
				summ := sumTotal(group)
				u.Summ = u.Summ.Add(summ)
				u.Count += sumQuantity(group)
				return models.CustomerOrder{
					OrderID:   o.ID,
					OrderDate: o.OrderDate,
					Summ:      summ,
					Products:  groupByProduct(group),
				}
			})
			return u, true
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Debug().
		Time("date_start", from).
		Time("date_end", to).
		Int("users", len(out.Users)).
		Msg("customer sales summary")
	return out, nil
}

// ordersOf loads the orders referenced by items, ascending by id.
func ordersOf(ctx context.Context, r storage.Reader, items []models.OrderItem) ([]models.Order, error) {
	ids := lo.Uniq(lo.Map(items, orderIDOf))
	if len(ids) == 0 {
		return nil, nil
	}
	return r.QueryOrders(ctx, storage.OrderQuery{IDs: ids})
}

// customerNames resolves the owners of orders in one batch and returns a
// lookup that falls back to models.UnknownUserName.
func customerNames(ctx context.Context, r storage.Reader, orders []models.Order) (func(int64) string, error) {
	customers, err := r.FindCustomers(ctx, lo.Uniq(lo.Map(orders, customerIDOfOrder)))
	if err != nil {
		return nil, err
	}
	byID := lo.KeyBy(customers, func(c models.Customer) int64 { return c.ID })
	return func(id int64) string {
		if c, ok := byID[id]; ok {
			return c.DisplayName()
		}
		return models.UnknownUserName
	}, nil
}
