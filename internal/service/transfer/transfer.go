package transfer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/mamadbah2/freshstock/internal/domain/models"
	"github.com/mamadbah2/freshstock/internal/repository"
)

// ErrOrderNotFound indicates the order position does not exist.
var ErrOrderNotFound = errors.New("order not found")

// ErrPartialTransfer is returned when the item document was updated but the
// fulfilled order could not be removed. Retrying would apply the transfer twice.
var ErrPartialTransfer = errors.New("stock moved but order was not removed")

// Overrides lists the fields replaced on a cloned item.
type Overrides struct {
	ID       int64
	Walmart  string
	Quantity float64
}

// CloneWithOverrides returns a copy of source with the overridden fields set.
// The source value is left untouched.
func CloneWithOverrides(source models.Item, o Overrides) models.Item {
	clone := source
	if source.CreatedAt != nil {
		created := *source.CreatedAt
		clone.CreatedAt = &created
	}
	clone.ID = o.ID
	clone.Walmart = o.Walmart
	clone.Quantity = o.Quantity
	return clone
}

// Fulfill applies order to items and returns the updated collection. The
// first item named order.Item at order.From is debited and the first at
// order.To is credited. When the destination has no record one is cloned
// from the source (or from an empty item when the source is missing too).
// Quantities are not floored at zero.
func Fulfill(order models.Order, items []models.Item, newID func() int64) []models.Item {
	updated := make([]models.Item, len(items), len(items)+1)
	copy(updated, items)

	src := indexOf(updated, order.Item, order.From)
	dst := indexOf(updated, order.Item, order.To)

	if src >= 0 {
		updated[src].Quantity -= order.Quantity
	}
	if dst >= 0 {
		updated[dst].Quantity += order.Quantity
		return updated
	}

	var reference models.Item
	if src >= 0 {
		reference = updated[src]
	}
	return append(updated, CloneWithOverrides(reference, Overrides{
		ID:       newID(),
		Walmart:  order.To,
		Quantity: order.Quantity,
	}))
}

func indexOf(items []models.Item, name, walmart string) int {
	for i := range items {
		if items[i].Name == name && items[i].Walmart == walmart {
			return i
		}
	}
	return -1
}

// IDSource issues fresh item ids.
type IDSource interface {
	Next() int64
	Observe(id int64)
}

// Coordinator receives pending orders against the item and order stores.
type Coordinator struct {
	items  repository.ItemRepository
	orders repository.OrderRepository
	ids    IDSource
	mu     sync.Locker
	logger *zap.Logger
}

// NewCoordinator wires a coordinator. mu guards every read-modify-write of
// the two documents and must be shared with other writers of the same stores.
func NewCoordinator(items repository.ItemRepository, orders repository.OrderRepository, ids IDSource, mu sync.Locker, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if mu == nil {
		mu = &sync.Mutex{}
	}
	return &Coordinator{items: items, orders: orders, ids: ids, mu: mu, logger: logger}
}

// Receive fulfills the order at position index and removes it from the
// order document. The item write happens first; if the order write then
// fails the error wraps ErrPartialTransfer and nothing is rolled back.
func (c *Coordinator) Receive(ctx context.Context, index int) (models.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	orders, err := c.orders.LoadAll(ctx)
	if err != nil {
		return models.Order{}, err
	}
	if index < 0 || index >= len(orders) {
		return models.Order{}, fmt.Errorf("%w: position %d of %d", ErrOrderNotFound, index, len(orders))
	}
	order := orders[index]

	items, err := c.items.LoadAll(ctx)
	if err != nil {
		return models.Order{}, err
	}
	for _, item := range items {
		c.ids.Observe(item.ID)
	}

	updated := Fulfill(order, items, c.ids.Next)
	if err := c.items.SaveAll(ctx, updated); err != nil {
		return models.Order{}, err
	}

	remaining := make([]models.Order, 0, len(orders)-1)
	remaining = append(remaining, orders[:index]...)
	remaining = append(remaining, orders[index+1:]...)
	if err := c.orders.SaveAll(ctx, remaining); err != nil {
		c.logger.Error("order removal failed after stock transfer",
			zap.String("item", order.Item),
			zap.String("from", order.From),
			zap.String("to", order.To),
			zap.Error(err))
		return models.Order{}, fmt.Errorf("%w: %w", ErrPartialTransfer, err)
	}

	c.logger.Info("order received",
		zap.String("item", order.Item),
		zap.Float64("quantity", order.Quantity),
		zap.String("from", order.From),
		zap.String("to", order.To),
		zap.Bool("created_destination", len(updated) > len(items)))
	return order, nil
}
