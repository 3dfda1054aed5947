package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/freshstock/internal/server/handlers"
)

// Handlers groups the HTTP adapters mounted by the router. Reports may be nil.
type Handlers struct {
	Inventory *handlers.InventoryHandler
	Orders    *handlers.OrdersHandler
	Reports   *handlers.ReportsHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	api.GET("/dashboard", h.Inventory.Dashboard)

	items := api.Group("/items")
	items.GET("", h.Inventory.List)
	items.POST("", h.Inventory.Create)
	items.GET("/:id", h.Inventory.Get)
	items.PUT("/:id", h.Inventory.Update)
	items.DELETE("/:id", h.Inventory.Delete)
	items.GET("/:id/quote", h.Inventory.Quote)

	orders := api.Group("/orders")
	orders.GET("", h.Orders.List)
	orders.POST("", h.Orders.Place)
	orders.POST("/:index/receive", h.Orders.Receive)

	if h.Reports != nil {
		api.GET("/reports/digest", h.Reports.Digest)
		api.POST("/reports/valuation", h.Reports.Export)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
