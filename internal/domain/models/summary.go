package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateRange is an inclusive [Start, End] interval on order dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within the range, both ends included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// SalesQuery selects orders within Range that contain any of ProductIDs.
type SalesQuery struct {
	ProductIDs []int64
	Range      DateRange
}

// ProductSales is the single-product summary.
//
// LeftCount is the on-hand quantity minus everything sold, floored at zero.
type ProductSales struct {
	ProductID int64
	LeftCount int64
	Orders    []ProductOrder
}

// ProductOrder is one order's contribution to a single product's sales.
type ProductOrder struct {
	OrderID    int64
	OrderDate  time.Time
	Count      int64
	TotalPrice decimal.Decimal
	UserName   string
}

// ProductLine groups an order's items of one product.
//
// Price comes from the first item of the group. If the same product was
// recorded at two different prices in one order only the first is reported.
type ProductLine struct {
	ProductID int64
	Quantity  int64
	Price     decimal.Decimal
}

// OrderSales is one qualifying order of the multi-product summary.
type OrderSales struct {
	OrderID    int64
	OrderDate  time.Time
	UserName   string
	Count      int64
	TotalPrice decimal.Decimal
	Products   []ProductLine
}

// SalesReport is the multi-product summary.
type SalesReport struct {
	Orders []OrderSales
}

// CustomerOrder is one order nested under a customer rollup.
type CustomerOrder struct {
	OrderID   int64
	OrderDate time.Time
	Summ      decimal.Decimal
	Products  []ProductLine
}

// CustomerSales rolls up one customer's orders within a date range.
type CustomerSales struct {
	CustomerID int64
	Name       string
	Summ       decimal.Decimal
	Count      int64
	Orders     []CustomerOrder
}

// CustomerReport is the customer summary. Customers without orders in range
// are never present.
type CustomerReport struct {
	Users []CustomerSales
}
