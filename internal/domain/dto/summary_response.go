package dto

import (
	"time"

	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/samber/lo"
)

// The response shapes below are the public contract and are deliberately
// decoupled from the domain models. Money is rendered as a JSON number.

// ProductSalesResponse is returned by GET /api/v1/summary/sales/products/{id}.
type ProductSalesResponse struct {
	LeftCount int64               `json:"leftCount" example:"45"`
	Orders    []ProductOrderEntry `json:"orders"`
}

type ProductOrderEntry struct {
	OrderID    int64     `json:"orderId" example:"7"`
	OrderDate  time.Time `json:"orderDate"`
	Count      int64     `json:"count" example:"3"`
	TotalPrice float64   `json:"totalPrice" example:"30"`
	UserName   string    `json:"userName" example:"User1"`
}

// SalesSummaryResponse is returned by POST /api/v1/summary/sales/products.
type SalesSummaryResponse struct {
	Orders []SalesOrderEntry `json:"orders"`
}

type SalesOrderEntry struct {
	OrderID    int64              `json:"orderId" example:"7"`
	OrderDate  time.Time          `json:"orderDate"`
	UserName   string             `json:"userName" example:"User1"`
	Count      int64              `json:"count" example:"5"`
	TotalPrice float64            `json:"totalPrice" example:"50"`
	Products   []SalesProductLine `json:"products"`
}

type SalesProductLine struct {
	ProductID int64   `json:"productId" example:"1"`
	Quantity  int64   `json:"quantity" example:"3"`
	Price     float64 `json:"price" example:"10"`
}

// UserSalesSummaryResponse is returned by POST /api/v1/summary/sales.
type UserSalesSummaryResponse struct {
	Users []UserSalesEntry `json:"users"`
}

type UserSalesEntry struct {
	Name   string           `json:"name" example:"User1"`
	Summ   float64          `json:"summ" example:"120"`
	Count  int64            `json:"count" example:"12"`
	Orders []UserOrderEntry `json:"orders"`
}

type UserOrderEntry struct {
	OrderID   int64             `json:"orderId" example:"7"`
	OrderDate time.Time         `json:"orderDate"`
	Summ      float64           `json:"summ" example:"50"`
	Products  []UserProductLine `json:"products"`
}

type UserProductLine struct {
	ProductID int64   `json:"productId" example:"1"`
	Count     int64   `json:"count" example:"3"`
	Price     float64 `json:"price" example:"10"`
}

// NewProductSalesResponse maps the single-product summary to its response.
func NewProductSalesResponse(s *models.ProductSales) ProductSalesResponse {
	return ProductSalesResponse{
		LeftCount: s.LeftCount,
		Orders: lo.Map(s.Orders, func(o models.ProductOrder, _ int) ProductOrderEntry {
			return ProductOrderEntry{
				OrderID:    o.OrderID,
				OrderDate:  o.OrderDate,
				Count:      o.Count,
				TotalPrice: o.TotalPrice.InexactFloat64(),
				UserName:   o.UserName,
			}
		}),
	}
}

// NewSalesSummaryResponse maps the multi-product summary to its response.
func NewSalesSummaryResponse(r *models.SalesReport) SalesSummaryResponse {
	return SalesSummaryResponse{
		Orders: lo.Map(r.Orders, func(o models.OrderSales, _ int) SalesOrderEntry {
			return SalesOrderEntry{
				OrderID:    o.OrderID,
				OrderDate:  o.OrderDate,
				UserName:   o.UserName,
				Count:      o.Count,
				TotalPrice: o.TotalPrice.InexactFloat64(),
				Products: lo.Map(o.Products, func(p models.ProductLine, _ int) SalesProductLine {
					return SalesProductLine{ProductID: p.ProductID, Quantity: p.Quantity, Price: p.Price.InexactFloat64()}
				}),
			}
		}),
	}
}

// NewUserSalesSummaryResponse maps the customer summary to its response.
// Per-order products use "count" instead of "quantity", matching the public contract.
func NewUserSalesSummaryResponse(r *models.CustomerReport) UserSalesSummaryResponse {
	return UserSalesSummaryResponse{
		Users: lo.Map(r.Users, func(u models.CustomerSales, _ int) UserSalesEntry {
			return UserSalesEntry{
				Name:  u.Name,
				Summ:  u.Summ.InexactFloat64(),
				Count: u.Count,
				Orders: lo.Map(u.Orders, func(o models.CustomerOrder, _ int) UserOrderEntry {
					return UserOrderEntry{
						OrderID:   o.OrderID,
						OrderDate: o.OrderDate,
						Summ:      o.Summ.InexactFloat64(),
						Products: lo.Map(o.Products, func(p models.ProductLine, _ int) UserProductLine {
							return UserProductLine{ProductID: p.ProductID, Count: p.Quantity, Price: p.Price.InexactFloat64()}
						}),
					}
				}),
			}
		}),
	}
}
