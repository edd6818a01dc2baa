package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/guttosm/salespulse/internal/domain/apperr"
	"github.com/guttosm/salespulse/internal/domain/dto"
	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/guttosm/salespulse/internal/service"
	"github.com/tidwall/gjson"
)

// Handler provides HTTP handlers for the sales summary endpoints.
//
// Responsibilities:
//   - Decode path parameters and JSON bodies
//   - Delegate to the summary service
//   - Translate results into response DTOs
//
// Errors are attached with c.Error and rendered by middleware.ErrorHandler.
type Handler struct {
	svc service.SummaryService
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.SummaryService) *Handler {
	return &Handler{svc: svc}
}

// GetProductSales godoc
// @Summary      Single-product sales summary
// @Description  Remaining stock and every order containing the product
// @Tags         summary
// @Produce      json
// @Param        id   path      int  true  "Product id" example(1)
// @Success      200  {object}  dto.ProductSalesResponse  "Success"
// @Failure      400  {object}  dto.ErrorResponse         "Bad Request"
// @Failure      404  {object}  dto.ErrorResponse         "Not Found"
// @Failure      500  {object}  dto.ErrorResponse         "Internal Error"
// @Router       /api/v1/summary/sales/products/{id} [get]
func (h *Handler) GetProductSales(c *gin.Context) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		_ = c.Error(apperr.InvalidRequestf("invalid product id %q", raw))
		return
	}

	res, err := h.svc.ProductSales(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductSalesResponse(res))
}

// PostSalesByProducts godoc
// @Summary      Multi-product sales summary
// @Description  Orders in the date range containing any of the products, broken down per product
// @Tags         summary
// @Accept       json
// @Produce      json
// @Param        request  body      dto.SalesSummaryRequest   true  "Products and inclusive date range"
// @Success      200      {object}  dto.SalesSummaryResponse  "Success"
// @Failure      400      {object}  dto.ErrorResponse         "Bad Request"
// @Failure      500      {object}  dto.ErrorResponse         "Internal Error"
// @Router       /api/v1/summary/sales/products [post]
func (h *Handler) PostSalesByProducts(c *gin.Context) {
	var req dto.SalesSummaryRequest
	if err := decodeBody(c, &req, "productIds", "dateStart", "dateEnd"); err != nil {
		_ = c.Error(err)
		return
	}

	res, err := h.svc.SalesByProducts(c.Request.Context(), models.SalesQuery{
		ProductIDs: req.ProductIDs,
		Range:      models.DateRange{Start: req.DateStart, End: req.DateEnd},
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSalesSummaryResponse(res))
}

// PostSalesByCustomers godoc
// @Summary      Per-customer sales summary
// @Description  Orders in the date range rolled up per customer
// @Tags         summary
// @Accept       json
// @Produce      json
// @Param        request  body      dto.UserSalesSummaryRequest   true  "Inclusive date range"
// @Success      200      {object}  dto.UserSalesSummaryResponse  "Success"
// @Failure      400      {object}  dto.ErrorResponse             "Bad Request"
// @Failure      500      {object}  dto.ErrorResponse             "Internal Error"
// @Router       /api/v1/summary/sales [post]
func (h *Handler) PostSalesByCustomers(c *gin.Context) {
	var req dto.UserSalesSummaryRequest
	if err := decodeBody(c, &req, "dateStart", "dateEnd"); err != nil {
		_ = c.Error(err)
		return
	}

	res, err := h.svc.SalesByCustomers(c.Request.Context(), models.DateRange{Start: req.DateStart, End: req.DateEnd})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserSalesSummaryResponse(res))
}

// decodeBody rejects malformed JSON and missing fields before binding into dst.
func decodeBody(c *gin.Context, dst any, required ...string) error {
	body, err := c.GetRawData()
	if err != nil {
		return apperr.InvalidRequestf("unreadable request body")
	}
	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsObject() {
		return apperr.InvalidRequestf("malformed JSON body")
	}
	for _, field := range required {
		if !gjson.GetBytes(body, field).Exists() {
			return apperr.InvalidRequestf("missing field %s", field)
		}
	}
	if err := binding.JSON.BindBody(body, dst); err != nil {
		return apperr.InvalidRequestf("invalid request body: %v", err)
	}
	return nil
}
