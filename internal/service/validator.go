package service

import (
	"github.com/guttosm/salespulse/internal/domain/apperr"
	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/samber/lo"
)

// ValidateProductID rejects non-positive product ids.
func ValidateProductID(id int64) error {
	if id <= 0 {
		return apperr.InvalidRequestf("invalid product id %d", id)
	}
	return nil
}

// ValidateDateRange rejects ranges whose start is after their end.
// Equal bounds are a valid single-instant range.
func ValidateDateRange(r models.DateRange) error {
	if r.Start.After(r.End) {
		return apperr.InvalidRequestf("invalid date range: dateStart %s is after dateEnd %s",
			r.Start.Format("2006-01-02T15:04:05Z07:00"), r.End.Format("2006-01-02T15:04:05Z07:00"))
	}
	return nil
}

// ValidateSalesQuery checks a multi-product request and returns its
// deduplicated product ids in first-seen order.
func ValidateSalesQuery(q models.SalesQuery) ([]int64, error) {
	if len(q.ProductIDs) == 0 {
		return nil, apperr.InvalidRequestf("empty product id list")
	}
	for _, id := range q.ProductIDs {
		if err := ValidateProductID(id); err != nil {
			return nil, err
		}
	}
	if err := ValidateDateRange(q.Range); err != nil {
		return nil, err
	}
	return lo.Uniq(q.ProductIDs), nil
}
