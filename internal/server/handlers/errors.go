package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/freshstock/internal/repository"
	"github.com/mamadbah2/freshstock/internal/service/inventory"
	"github.com/mamadbah2/freshstock/internal/service/orders"
	"github.com/mamadbah2/freshstock/internal/service/reporting"
	"github.com/mamadbah2/freshstock/internal/service/transfer"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, inventory.ErrItemNotFound), errors.Is(err, transfer.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, inventory.ErrInvalidItem), errors.Is(err, inventory.ErrInvalidFilter), errors.Is(err, orders.ErrInvalidOrder):
		return http.StatusBadRequest
	case errors.Is(err, reporting.ErrExportDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, repository.ErrStoreUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON body. Server-side failures are logged.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
