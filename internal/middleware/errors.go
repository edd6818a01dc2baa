package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/salespulse/internal/domain/apperr"
	"github.com/guttosm/salespulse/internal/domain/dto"
)

// ErrorHandler turns the last error attached with c.Error into a JSON
// ErrorResponse, unless the handler already wrote a body.
//
// Status mapping:
//   - apperr.NotFound       -> 404
//   - apperr.InvalidRequest -> 400
//   - context deadline      -> 504
//   - anything else         -> 500
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	err := c.Errors.Last().Err
	status, message := classify(err)

	// Server-side failures keep their cause out of the body; RequestLogger
	// records it from c.Errors.
	var details error
	if status < http.StatusInternalServerError {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			details = ae.Err
		}
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, details))
}

func classify(err error) (int, string) {
	switch apperr.KindOf(err) {
	case apperr.NotFound:
		return http.StatusNotFound, messageOf(err)
	case apperr.InvalidRequest:
		return http.StatusBadRequest, messageOf(err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, "Request timed out"
	}
	return http.StatusInternalServerError, "Internal server error"
}

func messageOf(err error) string {
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return err.Error()
}
