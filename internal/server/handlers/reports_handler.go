package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReportService builds the digest and the valuation export on demand.
type ReportService interface {
	DailyDigest(ctx context.Context, now time.Time) (string, error)
	ExportValuation(ctx context.Context, now time.Time) (int, error)
}

// ReportsHandler exposes the digest and export outside of the schedule.
type ReportsHandler struct {
	svc    ReportService
	logger *zap.Logger
	now    func() time.Time
}

// NewReportsHandler constructs the HTTP handler adapter.
func NewReportsHandler(svc ReportService, logger *zap.Logger) *ReportsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportsHandler{svc: svc, logger: logger, now: time.Now}
}

// Digest handles GET /reports/digest.
func (h *ReportsHandler) Digest(c *gin.Context) {
	digest, err := h.svc.DailyDigest(c.Request.Context(), h.now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"digest": digest})
}

// Export handles POST /reports/valuation.
func (h *ReportsHandler) Export(c *gin.Context) {
	rows, err := h.svc.ExportValuation(c.Request.Context(), h.now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"rows": rows})
}
