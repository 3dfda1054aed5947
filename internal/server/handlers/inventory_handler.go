package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/freshstock/internal/domain/models"
	"github.com/mamadbah2/freshstock/internal/service/inventory"
)

// InventoryService is the item surface exposed over HTTP.
type InventoryService interface {
	List(ctx context.Context, filter models.ItemFilter) ([]models.ItemView, error)
	Get(ctx context.Context, id int64) (models.ItemView, error)
	Dashboard(ctx context.Context) (models.Dashboard, error)
	Register(ctx context.Context, item models.Item) (models.Item, error)
	Update(ctx context.Context, id int64, item models.Item) (models.Item, error)
	Delete(ctx context.Context, id int64) error
}

// InventoryHandler serves item management and the dashboard.
type InventoryHandler struct {
	svc    InventoryService
	logger *zap.Logger
}

// NewInventoryHandler constructs the HTTP handler adapter.
func NewInventoryHandler(svc InventoryService, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{svc: svc, logger: logger}
}

// List handles GET /items.
func (h *InventoryHandler) List(c *gin.Context) {
	var filter models.ItemFilter
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

// Get handles GET /items/:id.
func (h *InventoryHandler) Get(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	view, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Quote handles GET /items/:id/quote.
func (h *InventoryHandler) Quote(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	view, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":              view.ID,
		"status":          view.Status,
		"daysUntilExpiry": view.DaysUntilExpiry,
		"expiryText":      view.ExpiryText,
		"sellingPrice":    view.SellingPrice,
		"discountedPrice": view.DiscountedPrice,
		"remark":          view.Remark,
	})
}

// Dashboard handles GET /dashboard.
func (h *InventoryHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// Create handles POST /items.
func (h *InventoryHandler) Create(c *gin.Context) {
	var item models.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		h.logger.Warn("invalid item payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.svc.Register(c.Request.Context(), item)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /items/:id.
func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	var item models.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		h.logger.Warn("invalid item payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), id, item)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /items/:id.
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func itemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%v: id %q", inventory.ErrInvalidItem, c.Param("id"))})
		return 0, false
	}
	return id, true
}
