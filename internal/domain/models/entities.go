package models

import (
	"time"

	"github.com/samber/mo"
	"github.com/shopspring/decimal"
)

// UnknownUserName is reported wherever a customer's name is absent.
const UnknownUserName = "Unknown User"

// Customer is a buyer. Name is optional in storage.
type Customer struct {
	ID    int64
	Name  mo.Option[string]
	Email string
}

// DisplayName returns the customer's name or UnknownUserName.
func (c Customer) DisplayName() string {
	return c.Name.OrElse(UnknownUserName)
}

// Product is a sellable item. Quantity is the on-hand stock.
type Product struct {
	ID       int64
	Name     string
	Price    decimal.Decimal
	Quantity int64
}

// Order belongs to exactly one customer.
type Order struct {
	ID         int64
	CustomerID int64
	OrderDate  time.Time
}

// OrderItem is one line of an order. Price is captured at sale time and is
// never re-read from the product.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int64
	Price     decimal.Decimal
}

// LineTotal is Quantity × Price.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}
