package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/freshstock/internal/domain/models"
	"github.com/mamadbah2/freshstock/internal/service/transfer"
)

// OrderService is the transfer order surface exposed over HTTP.
type OrderService interface {
	List(ctx context.Context, filter models.OrderFilter) ([]models.OrderView, error)
	Place(ctx context.Context, order models.Order) (models.OrderView, error)
	Receive(ctx context.Context, index int) (models.Order, error)
}

// OrdersHandler serves pending transfer orders.
type OrdersHandler struct {
	svc    OrderService
	logger *zap.Logger
}

// NewOrdersHandler constructs the HTTP handler adapter.
func NewOrdersHandler(svc OrderService, logger *zap.Logger) *OrdersHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrdersHandler{svc: svc, logger: logger}
}

// List handles GET /orders.
func (h *OrdersHandler) List(c *gin.Context) {
	var filter models.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query"})
		return
	}

	views, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// Place handles POST /orders.
func (h *OrdersHandler) Place(c *gin.Context) {
	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		h.logger.Warn("invalid order payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	placed, err := h.svc.Place(c.Request.Context(), order)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, placed)
}

// Receive handles POST /orders/:index/receive.
func (h *OrdersHandler) Receive(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return
	}

	order, err := h.svc.Receive(c.Request.Context(), index)
	if err != nil {
		if errors.Is(err, transfer.ErrPartialTransfer) {
			h.logger.Error("order left pending after stock moved", zap.Int("index", index), zap.Error(err))
		}
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": order})
}
