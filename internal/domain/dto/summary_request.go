package dto

import "time"

// SalesSummaryRequest is the body of POST /api/v1/summary/sales/products.
type SalesSummaryRequest struct {
	ProductIDs []int64   `json:"productIds" example:"1,2,3"`
	DateStart  time.Time `json:"dateStart" example:"2025-01-01T00:00:00Z"`
	DateEnd    time.Time `json:"dateEnd" example:"2025-01-31T23:59:59Z"`
}

// UserSalesSummaryRequest is the body of POST /api/v1/summary/sales.
type UserSalesSummaryRequest struct {
	DateStart time.Time `json:"dateStart" example:"2025-01-01T00:00:00Z"`
	DateEnd   time.Time `json:"dateEnd" example:"2025-01-31T23:59:59Z"`
}
