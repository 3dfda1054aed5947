package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/freshstock/internal/domain/models"
	"github.com/mamadbah2/freshstock/internal/repository"
	"github.com/mamadbah2/freshstock/internal/valuation"
)

// ErrItemNotFound indicates no item carries the requested id.
var ErrItemNotFound = errors.New("item not found")

// ErrInvalidItem indicates the item payload is missing required fields.
var ErrInvalidItem = errors.New("invalid item")

// ErrInvalidFilter indicates an unknown status filter.
var ErrInvalidFilter = errors.New("invalid filter")

// RecentLimit is how many items the dashboard lists.
const RecentLimit = 5

// Thresholds are the expiring windows, in days, used by each view.
type Thresholds struct {
	List      int
	Dashboard int
}

// DefaultThresholds match the management list badge and the dashboard stats.
func DefaultThresholds() Thresholds {
	return Thresholds{List: valuation.ListThresholdDays, Dashboard: valuation.DashboardThresholdDays}
}

// IDSource issues fresh item ids.
type IDSource interface {
	Next() int64
	Observe(id int64)
}

// Service lists, aggregates and edits grocery items.
type Service struct {
	items      repository.ItemRepository
	ids        IDSource
	mu         sync.Locker
	thresholds Thresholds
	logger     *zap.Logger
	now        func() time.Time
}

// NewService wires an inventory service. mu must be shared with every other
// writer of the item document.
func NewService(items repository.ItemRepository, ids IDSource, mu sync.Locker, thresholds Thresholds, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if mu == nil {
		mu = &sync.Mutex{}
	}
	defaults := DefaultThresholds()
	if thresholds.List <= 0 {
		thresholds.List = defaults.List
	}
	if thresholds.Dashboard <= 0 {
		thresholds.Dashboard = defaults.Dashboard
	}
	return &Service{
		items:      items,
		ids:        ids,
		mu:         mu,
		thresholds: thresholds,
		logger:     logger,
		now:        time.Now,
	}
}

// List returns the items matching filter with their derived values.
func (s *Service) List(ctx context.Context, filter models.ItemFilter) ([]models.ItemView, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: status %q", ErrInvalidFilter, filter.Status)
	}

	items, err := s.items.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	views := make([]models.ItemView, 0, len(items))

	for _, item := range items {
		if search != "" &&
			!strings.Contains(strings.ToLower(item.Name), search) &&
			!strings.Contains(strings.ToLower(item.Category), search) {
			continue
		}
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}

		view := valuation.Evaluate(item, now, s.thresholds.List)
		if filter.Status != "" && view.Status != filter.Status {
			continue
		}
		views = append(views, view)
	}

	return views, nil
}

// Get returns one item with its derived values.
func (s *Service) Get(ctx context.Context, id int64) (models.ItemView, error) {
	items, err := s.items.LoadAll(ctx)
	if err != nil {
		return models.ItemView{}, err
	}

	idx := indexByID(items, id)
	if idx < 0 {
		return models.ItemView{}, fmt.Errorf("%w: %d", ErrItemNotFound, id)
	}
	return valuation.Evaluate(items[idx], s.now(), s.thresholds.List), nil
}

// Dashboard aggregates the inventory and lists the latest registrations.
func (s *Service) Dashboard(ctx context.Context) (models.Dashboard, error) {
	items, err := s.items.LoadAll(ctx)
	if err != nil {
		return models.Dashboard{}, err
	}

	now := s.now()
	return models.Dashboard{
		Stats:  ComputeStats(items, now, s.thresholds.Dashboard),
		Recent: recent(items, now, s.thresholds.Dashboard, RecentLimit),
	}, nil
}

// ComputeStats counts items per status using thresholdDays as the expiring
// window. Items without a readable expiry date count as fresh.
func ComputeStats(items []models.Item, now time.Time, thresholdDays int) models.Stats {
	stats := models.Stats{Total: len(items)}
	for _, item := range items {
		if item.Quantity == 0 {
			stats.OutOfStock++
		}

		expiry, err := valuation.ParseDate(item.ExpiryDate)
		if err != nil {
			stats.Fresh++
			continue
		}

		switch valuation.Classify(expiry, now, thresholdDays) {
		case models.StatusExpired:
			stats.Expired++
		case models.StatusExpiring:
			stats.ExpiringSoon++
		default:
			stats.Fresh++
		}
	}
	return stats
}

func recent(items []models.Item, now time.Time, thresholdDays int, limit int) []models.ItemView {
	start := len(items) - limit
	if start < 0 {
		start = 0
	}

	views := make([]models.ItemView, 0, len(items)-start)
	for i := len(items) - 1; i >= start; i-- {
		views = append(views, valuation.Evaluate(items[i], now, thresholdDays))
	}
	return views
}

// Register validates and appends a new item, assigning its id and creation time.
func (s *Service) Register(ctx context.Context, item models.Item) (models.Item, error) {
	if err := validate(item); err != nil {
		return models.Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.items.LoadAll(ctx)
	if err != nil {
		return models.Item{}, err
	}
	for _, existing := range items {
		s.ids.Observe(existing.ID)
	}

	created := s.now().UTC()
	item.ID = s.ids.Next()
	item.CreatedAt = &created

	if err := s.items.SaveAll(ctx, append(items, item)); err != nil {
		return models.Item{}, err
	}

	s.logger.Info("item registered", zap.Int64("id", item.ID), zap.String("name", item.Name), zap.String("walmart", item.Walmart))
	return item, nil
}

// Update replaces the item carrying id. The id and creation time are kept.
func (s *Service) Update(ctx context.Context, id int64, item models.Item) (models.Item, error) {
	if err := validate(item); err != nil {
		return models.Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.items.LoadAll(ctx)
	if err != nil {
		return models.Item{}, err
	}

	idx := indexByID(items, id)
	if idx < 0 {
		return models.Item{}, fmt.Errorf("%w: %d", ErrItemNotFound, id)
	}

	item.ID = id
	item.CreatedAt = items[idx].CreatedAt
	items[idx] = item

	if err := s.items.SaveAll(ctx, items); err != nil {
		return models.Item{}, err
	}

	s.logger.Info("item updated", zap.Int64("id", id))
	return item, nil
}

// Delete removes the item carrying id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.items.LoadAll(ctx)
	if err != nil {
		return err
	}

	idx := indexByID(items, id)
	if idx < 0 {
		return fmt.Errorf("%w: %d", ErrItemNotFound, id)
	}

	if err := s.items.SaveAll(ctx, append(items[:idx], items[idx+1:]...)); err != nil {
		return err
	}

	s.logger.Info("item deleted", zap.Int64("id", id))
	return nil
}

func validate(item models.Item) error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidItem)
	}
	if _, err := valuation.ParseDate(item.ExpiryDate); err != nil {
		return fmt.Errorf("%w: expiryDate: %v", ErrInvalidItem, err)
	}
	if item.PurchaseDate != "" {
		if _, err := valuation.ParseDate(item.PurchaseDate); err != nil {
			return fmt.Errorf("%w: purchaseDate: %v", ErrInvalidItem, err)
		}
	}
	if item.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidItem)
	}
	if item.SellingPrice < 0 || item.PurchasingPrice < 0 {
		return fmt.Errorf("%w: prices must not be negative", ErrInvalidItem)
	}
	for _, pct := range []float64{item.DiscountDay1, item.DiscountDay2} {
		if pct < 0 || pct > 100 {
			return fmt.Errorf("%w: discount must be between 0 and 100", ErrInvalidItem)
		}
	}
	return nil
}

func indexByID(items []models.Item, id int64) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
