package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/freshstock/internal/domain/models"
)

// ItemRepository reads and writes the item collection wholesale.
type ItemRepository interface {
	LoadAll(ctx context.Context) ([]models.Item, error)
	SaveAll(ctx context.Context, items []models.Item) error
}

// DocumentItemRepository keeps items as a single JSON array document.
type DocumentItemRepository struct {
	store  DocumentStore
	logger *zap.Logger
}

// NewItemRepository builds an item repository over the given store.
func NewItemRepository(store DocumentStore, logger *zap.Logger) *DocumentItemRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentItemRepository{store: store, logger: logger}
}

// itemDocument is the persisted item shape. Every field tolerates loosely
// typed values written by older clients.
type itemDocument struct {
	ID              flexNumber `json:"id"`
	Name            flexString `json:"name"`
	Category        flexString `json:"category"`
	Quantity        flexNumber `json:"quantity"`
	Unit            flexString `json:"unit"`
	PurchaseDate    flexString `json:"purchaseDate"`
	ExpiryDate      flexString `json:"expiryDate"`
	Location        flexString `json:"location"`
	Notes           flexString `json:"notes"`
	DiscountDay1    flexNumber `json:"discount1"`
	DiscountDay2    flexNumber `json:"discount2"`
	PurchasingPrice flexNumber `json:"purchasing_price"`
	SellingPrice    flexNumber `json:"selling_price"`
	Walmart         flexString `json:"walmart"`
	CreatedAt       flexString `json:"createdAt"`
}

func (d itemDocument) normalize() models.Item {
	item := models.Item{
		ID:              int64(d.ID),
		Name:            string(d.Name),
		Category:        string(d.Category),
		Quantity:        float64(d.Quantity),
		Unit:            string(d.Unit),
		PurchaseDate:    string(d.PurchaseDate),
		ExpiryDate:      string(d.ExpiryDate),
		Location:        string(d.Location),
		Notes:           string(d.Notes),
		DiscountDay1:    float64(d.DiscountDay1),
		DiscountDay2:    float64(d.DiscountDay2),
		PurchasingPrice: float64(d.PurchasingPrice),
		SellingPrice:    float64(d.SellingPrice),
		Walmart:         string(d.Walmart),
	}
	if created, err := time.Parse(time.RFC3339, string(d.CreatedAt)); err == nil {
		item.CreatedAt = &created
	}
	return item
}

// LoadAll returns every stored item. A missing or malformed document reads
// as an empty collection and malformed elements are skipped.
func (r *DocumentItemRepository) LoadAll(ctx context.Context) ([]models.Item, error) {
	elements, err := loadSequence(ctx, r.store, ItemsKey, r.logger)
	if err != nil {
		return nil, err
	}

	items := make([]models.Item, 0, len(elements))
	for i, raw := range elements {
		var doc itemDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			r.logger.Warn("skip malformed item", zap.Int("position", i), zap.Error(err))
			continue
		}
		items = append(items, doc.normalize())
	}
	return items, nil
}

// SaveAll replaces the stored collection.
func (r *DocumentItemRepository) SaveAll(ctx context.Context, items []models.Item) error {
	if items == nil {
		items = []models.Item{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	if err := r.store.Set(ctx, ItemsKey, payload); err != nil {
		return fmt.Errorf("save %s: %w", ItemsKey, err)
	}
	r.logger.Debug("items saved", zap.Int("count", len(items)))
	return nil
}
