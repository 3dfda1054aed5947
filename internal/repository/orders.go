package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/freshstock/internal/domain/models"
)

// OrderRepository reads and writes the pending order collection wholesale.
type OrderRepository interface {
	LoadAll(ctx context.Context) ([]models.Order, error)
	SaveAll(ctx context.Context, orders []models.Order) error
}

// DocumentOrderRepository keeps orders as a single JSON array document.
type DocumentOrderRepository struct {
	store  DocumentStore
	logger *zap.Logger
}

// NewOrderRepository builds an order repository over the given store.
func NewOrderRepository(store DocumentStore, logger *zap.Logger) *DocumentOrderRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentOrderRepository{store: store, logger: logger}
}

type orderDocument struct {
	Item     flexString `json:"item"`
	Quantity flexNumber `json:"quantity"`
	From     flexString `json:"from"`
	To       flexString `json:"to"`
}

// LoadAll returns the pending orders in stored order.
func (r *DocumentOrderRepository) LoadAll(ctx context.Context) ([]models.Order, error) {
	elements, err := loadSequence(ctx, r.store, OrdersKey, r.logger)
	if err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(elements))
	for i, raw := range elements {
		var doc orderDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			r.logger.Warn("skip malformed order", zap.Int("position", i), zap.Error(err))
			continue
		}
		orders = append(orders, models.Order{
			Item:     string(doc.Item),
			Quantity: float64(doc.Quantity),
			From:     string(doc.From),
			To:       string(doc.To),
		})
	}
	return orders, nil
}

// SaveAll replaces the stored collection.
func (r *DocumentOrderRepository) SaveAll(ctx context.Context, orders []models.Order) error {
	if orders == nil {
		orders = []models.Order{}
	}
	payload, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}
	if err := r.store.Set(ctx, OrdersKey, payload); err != nil {
		return fmt.Errorf("save %s: %w", OrdersKey, err)
	}
	r.logger.Debug("orders saved", zap.Int("count", len(orders)))
	return nil
}
