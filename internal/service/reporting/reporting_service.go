package reporting

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/freshstock/internal/domain/models"
	"github.com/mamadbah2/freshstock/internal/repository"
	"github.com/mamadbah2/freshstock/internal/repository/sheets"
	"github.com/mamadbah2/freshstock/internal/service/inventory"
	"github.com/mamadbah2/freshstock/internal/valuation"
)

// ValuationRange is the sheet range valuation rows are appended to.
const ValuationRange = "Valuation!A:H"

// ErrExportDisabled is returned when no spreadsheet is configured.
var ErrExportDisabled = errors.New("valuation export disabled")

// Service builds the daily digest and the valuation export.
type Service struct {
	items      repository.ItemRepository
	sheet      sheets.Repository
	thresholds inventory.Thresholds
	logger     *zap.Logger
}

// NewService wires a new reporting service instance. sheet may be nil, in
// which case ExportValuation returns ErrExportDisabled.
func NewService(items repository.ItemRepository, sheet sheets.Repository, thresholds inventory.Thresholds, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	defaults := inventory.DefaultThresholds()
	if thresholds.List <= 0 {
		thresholds.List = defaults.List
	}
	if thresholds.Dashboard <= 0 {
		thresholds.Dashboard = defaults.Dashboard
	}
	return &Service{items: items, sheet: sheet, thresholds: thresholds, logger: logger}
}

// DailyDigest summarizes stock health at now and lists the items currently
// sold at a discount.
func (s *Service) DailyDigest(ctx context.Context, now time.Time) (string, error) {
	items, err := s.items.LoadAll(ctx)
	if err != nil {
		return "", fmt.Errorf("load items: %w", err)
	}

	stats := inventory.ComputeStats(items, now, s.thresholds.Dashboard)

	var b strings.Builder
	fmt.Fprintf(&b, "Stock digest %s\n", now.Format(valuation.DateLayout))
	fmt.Fprintf(&b, "Items: %d | Fresh: %d | Expiring soon: %d | Expired: %d | Out of stock: %d\n",
		stats.Total, stats.Fresh, stats.ExpiringSoon, stats.Expired, stats.OutOfStock)

	var discounted []models.ItemView
	for _, item := range items {
		view := valuation.Evaluate(item, now, s.thresholds.List)
		if view.DaysUntilExpiry == nil {
			continue
		}
		if days := *view.DaysUntilExpiry; days == 1 || days == 2 {
			discounted = append(discounted, view)
		}
	}

	if len(discounted) == 0 {
		b.WriteString("No items in the discount window.")
		return b.String(), nil
	}

	b.WriteString("Discount window:")
	for _, view := range discounted {
		fmt.Fprintf(&b, "\n- %s @ %s: %s, %.2f (%s)",
			view.Name, view.Walmart, view.ExpiryText, view.DiscountedPrice, view.Remark)
	}
	return b.String(), nil
}

// ValuationRows evaluates every item at now for export.
func (s *Service) ValuationRows(ctx context.Context, now time.Time) ([]models.ValuationRow, error) {
	items, err := s.items.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}

	date := now.Format(valuation.DateLayout)
	rows := make([]models.ValuationRow, 0, len(items))
	for _, item := range items {
		view := valuation.Evaluate(item, now, s.thresholds.List)
		days := ""
		if view.DaysUntilExpiry != nil {
			days = strconv.Itoa(*view.DaysUntilExpiry)
		}
		rows = append(rows, models.ValuationRow{
			Date:            date,
			Name:            item.Name,
			Walmart:         item.Walmart,
			Quantity:        item.Quantity,
			Status:          view.Status,
			DaysUntilExpiry: days,
			DiscountedPrice: view.DiscountedPrice,
			Remark:          view.Remark,
		})
	}
	return rows, nil
}

// ExportValuation appends the valuation rows at now to the spreadsheet and
// returns how many were written.
func (s *Service) ExportValuation(ctx context.Context, now time.Time) (int, error) {
	if s.sheet == nil {
		return 0, ErrExportDisabled
	}

	rows, err := s.ValuationRows(ctx, now)
	if err != nil {
		return 0, err
	}

	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		values = append(values, row.Values())
	}
	if err := s.sheet.AppendRows(ctx, ValuationRange, values); err != nil {
		return 0, fmt.Errorf("export valuation: %w", err)
	}

	s.logger.Info("valuation exported", zap.Int("rows", len(values)))
	return len(values), nil
}
