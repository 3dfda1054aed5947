package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mamadbah2/freshstock/internal/domain/models"
	"github.com/mamadbah2/freshstock/internal/repository"
)

// ErrInvalidOrder indicates the order payload cannot be placed.
var ErrInvalidOrder = errors.New("invalid order")

// Receiver fulfills the order stored at a given position.
type Receiver interface {
	Receive(ctx context.Context, index int) (models.Order, error)
}

// Service lists, places and receives transfer orders.
type Service struct {
	orders   repository.OrderRepository
	receiver Receiver
	mu       sync.Locker
	logger   *zap.Logger
}

// NewService wires an order service. mu must be the lock shared with the receiver.
func NewService(orders repository.OrderRepository, receiver Receiver, mu sync.Locker, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if mu == nil {
		mu = &sync.Mutex{}
	}
	return &Service{orders: orders, receiver: receiver, mu: mu, logger: logger}
}

// List returns the pending orders matching filter, each tagged with its
// position in the full collection.
func (s *Service) List(ctx context.Context, filter models.OrderFilter) ([]models.OrderView, error) {
	orders, err := s.orders.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	views := make([]models.OrderView, 0, len(orders))
	for i, order := range orders {
		if search != "" && !strings.Contains(strings.ToLower(order.Item), search) {
			continue
		}
		if filter.From != "" && order.From != filter.From {
			continue
		}
		if filter.To != "" && order.To != filter.To {
			continue
		}
		views = append(views, models.OrderView{Order: order, Index: i})
	}
	return views, nil
}

// Place appends a new pending order.
func (s *Service) Place(ctx context.Context, order models.Order) (models.OrderView, error) {
	order.Item = strings.TrimSpace(order.Item)
	switch {
	case order.Item == "":
		return models.OrderView{}, fmt.Errorf("%w: item is required", ErrInvalidOrder)
	case order.From == "" || order.To == "":
		return models.OrderView{}, fmt.Errorf("%w: from and to are required", ErrInvalidOrder)
	case order.From == order.To:
		return models.OrderView{}, fmt.Errorf("%w: from and to must differ", ErrInvalidOrder)
	case !(order.Quantity > 0):
		return models.OrderView{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidOrder)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.orders.LoadAll(ctx)
	if err != nil {
		return models.OrderView{}, err
	}
	if err := s.orders.SaveAll(ctx, append(orders, order)); err != nil {
		return models.OrderView{}, err
	}

	s.logger.Info("order placed",
		zap.String("item", order.Item),
		zap.Float64("quantity", order.Quantity),
		zap.String("from", order.From),
		zap.String("to", order.To))
	return models.OrderView{Order: order, Index: len(orders)}, nil
}

// Receive marks the order at index as received, moving its stock.
func (s *Service) Receive(ctx context.Context, index int) (models.Order, error) {
	return s.receiver.Receive(ctx, index)
}
