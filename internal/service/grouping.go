package service

import (
	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

func orderIDOf(it models.OrderItem, _ int) int64    { return it.OrderID }
func productIDOf(it models.OrderItem, _ int) int64  { return it.ProductID }
func idOfOrder(o models.Order, _ int) int64         { return o.ID }
func customerIDOfOrder(o models.Order, _ int) int64 { return o.CustomerID }

func sumQuantity(items []models.OrderItem) int64 {
	return lo.SumBy(items, func(it models.OrderItem) int64 { return it.Quantity })
}

func sumTotal(items []models.OrderItem) decimal.Decimal {
	return lo.Reduce(items, func(acc decimal.Decimal, it models.OrderItem, _ int) decimal.Decimal {
		return acc.Add(it.LineTotal())
	}, decimal.Zero)
}

// groupByProduct collapses items into one line per product, in order of
// first appearance. Quantities are summed; the price is taken from the
// group's first item and never summed.
func groupByProduct(items []models.OrderItem) []models.ProductLine {
	byProduct := lo.GroupBy(items, func(it models.OrderItem) int64 { return it.ProductID })
	return lo.Map(lo.Uniq(lo.Map(items, productIDOf)), func(id int64, _ int) models.ProductLine {
		group := byProduct[id]
		return models.ProductLine{
			ProductID: id,
			Quantity:  sumQuantity(group),
			Price:     group[0].Price,
		}
	})
}

// leftCount is on-hand stock minus sold quantity, never negative.
func leftCount(onHand, sold int64) int64 {
	return max(0, onHand-sold)
}
