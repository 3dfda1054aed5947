package transfer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mamadbah2/freshstock/internal/domain/models"
	"github.com/mamadbah2/freshstock/internal/idgen"
	"github.com/mamadbah2/freshstock/internal/repository"
	"github.com/mamadbah2/freshstock/internal/repository/memory"
)

func fixedIDs(ids ...int64) func() int64 {
	return func() int64 {
		id := ids[0]
		ids = ids[1:]
		return id
	}
}

func TestFulfillCreatesMissingDestination(t *testing.T) {
	items := []models.Item{
		{ID: 1, Name: "Eggs", Category: "Dairy & Eggs", Unit: "dozen", Quantity: 20, Walmart: "StoreA", ExpiryDate: "2024-05-10", SellingPrice: 6, DiscountDay1: 20},
	}
	order := models.Order{Item: "Eggs", Quantity: 12, From: "StoreA", To: "StoreB"}

	updated := Fulfill(order, items, fixedIDs(99))

	if len(updated) != 2 {
		t.Fatalf("expected a new destination record, got %d items", len(updated))
	}
	if updated[0].Quantity != 8 {
		t.Fatalf("expected source quantity 8, got %v", updated[0].Quantity)
	}
	if items[0].Quantity != 20 {
		t.Fatalf("input slice was mutated: %v", items[0].Quantity)
	}

	created := updated[1]
	if created.ID != 99 || created.Walmart != "StoreB" || created.Quantity != 12 {
		t.Fatalf("unexpected overrides on %+v", created)
	}
	expected := updated[0]
	expected.ID, expected.Walmart, expected.Quantity = 99, "StoreB", 12
	if created != expected {
		t.Fatalf("expected non-overridden fields copied from source\nwant %+v\ngot  %+v", expected, created)
	}
}

func TestFulfillConservesQuantityBetweenExistingRecords(t *testing.T) {
	items := []models.Item{
		{ID: 1, Name: "Rice", Quantity: 5.5, Walmart: "StoreA"},
		{ID: 2, Name: "Rice", Quantity: 1.25, Walmart: "StoreB"},
	}
	order := models.Order{Item: "Rice", Quantity: 2, From: "StoreA", To: "StoreB"}

	updated := Fulfill(order, items, func() int64 {
		t.Fatalf("no id should be issued when the destination exists")
		return 0
	})

	if len(updated) != 2 {
		t.Fatalf("expected no new records, got %d", len(updated))
	}
	before := items[0].Quantity + items[1].Quantity
	after := updated[0].Quantity + updated[1].Quantity
	if before != after {
		t.Fatalf("total changed from %v to %v", before, after)
	}
	if updated[0].Quantity != 3.5 || updated[1].Quantity != 3.25 {
		t.Fatalf("unexpected quantities %v / %v", updated[0].Quantity, updated[1].Quantity)
	}
}

func TestFulfillMissingSourceStillCreditsDestination(t *testing.T) {
	items := []models.Item{
		{ID: 1, Name: "Milk", Quantity: 4, Walmart: "StoreB"},
	}
	order := models.Order{Item: "Milk", Quantity: 3, From: "Nowhere", To: "StoreB"}

	updated := Fulfill(order, items, fixedIDs(7))
	if len(updated) != 1 || updated[0].Quantity != 7 {
		t.Fatalf("expected destination credited to 7, got %+v", updated)
	}
}

func TestFulfillWithoutAnyRecordSynthesizesEmptyItem(t *testing.T) {
	order := models.Order{Item: "Tea", Quantity: 2, From: "StoreA", To: "StoreB"}

	updated := Fulfill(order, nil, fixedIDs(5))
	if len(updated) != 1 {
		t.Fatalf("expected one record, got %d", len(updated))
	}
	want := models.Item{ID: 5, Walmart: "StoreB", Quantity: 2}
	if updated[0] != want {
		t.Fatalf("expected %+v, got %+v", want, updated[0])
	}
}

func TestFulfillAllowsNegativeStock(t *testing.T) {
	items := []models.Item{
		{ID: 1, Name: "Eggs", Quantity: 3, Walmart: "StoreA"},
		{ID: 2, Name: "Eggs", Quantity: 0, Walmart: "StoreB"},
	}
	updated := Fulfill(models.Order{Item: "Eggs", Quantity: 5, From: "StoreA", To: "StoreB"}, items, fixedIDs(3))
	if updated[0].Quantity != -2 {
		t.Fatalf("expected -2, got %v", updated[0].Quantity)
	}
}

func TestFulfillUsesFirstMatch(t *testing.T) {
	items := []models.Item{
		{ID: 1, Name: "Eggs", Quantity: 10, Walmart: "StoreA"},
		{ID: 2, Name: "Eggs", Quantity: 10, Walmart: "StoreA"},
	}
	updated := Fulfill(models.Order{Item: "Eggs", Quantity: 4, From: "StoreA", To: "StoreA2"}, items, fixedIDs(3))
	if updated[0].Quantity != 6 || updated[1].Quantity != 10 {
		t.Fatalf("expected only the first match debited, got %v / %v", updated[0].Quantity, updated[1].Quantity)
	}
}

func TestCloneWithOverridesDoesNotAliasSource(t *testing.T) {
	created := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	source := models.Item{ID: 1, Name: "Bread", Walmart: "StoreA", Quantity: 3, CreatedAt: &created}

	clone := CloneWithOverrides(source, Overrides{ID: 2, Walmart: "StoreB", Quantity: 1})
	if source.ID != 1 || source.Walmart != "StoreA" || source.Quantity != 3 {
		t.Fatalf("source mutated: %+v", source)
	}
	if clone.CreatedAt == source.CreatedAt {
		t.Fatalf("clone shares the createdAt pointer with its source")
	}
	if !clone.CreatedAt.Equal(created) {
		t.Fatalf("expected createdAt copied, got %v", clone.CreatedAt)
	}
}

func newTestCoordinator(t *testing.T, items []models.Item, orders []models.Order) (*Coordinator, *repository.DocumentItemRepository, *repository.DocumentOrderRepository) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	itemRepo := repository.NewItemRepository(store, nil)
	orderRepo := repository.NewOrderRepository(store, nil)
	if err := itemRepo.SaveAll(ctx, items); err != nil {
		t.Fatalf("seed items: %v", err)
	}
	if err := orderRepo.SaveAll(ctx, orders); err != nil {
		t.Fatalf("seed orders: %v", err)
	}
	ids := idgen.New(func() time.Time { return time.UnixMilli(1000) })
	return NewCoordinator(itemRepo, orderRepo, ids, nil, nil), itemRepo, orderRepo
}

func TestReceiveAppliesTransferAndRemovesOrder(t *testing.T) {
	ctx := context.Background()
	coord, itemRepo, orderRepo := newTestCoordinator(t,
		[]models.Item{{ID: 1714521600000, Name: "Eggs", Quantity: 20, Walmart: "StoreA"}},
		[]models.Order{
			{Item: "Milk", Quantity: 1, From: "StoreA", To: "StoreC"},
			{Item: "Eggs", Quantity: 12, From: "StoreA", To: "StoreB"},
		})

	received, err := coord.Receive(ctx, 1)
	if err != nil {
		t.Fatalf("receive failed: %v", err)
	}
	if received.Item != "Eggs" {
		t.Fatalf("received the wrong order %+v", received)
	}

	items, _ := itemRepo.LoadAll(ctx)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Quantity != 8 || items[1].Walmart != "StoreB" || items[1].Quantity != 12 {
		t.Fatalf("unexpected items %+v", items)
	}
	if items[1].ID <= items[0].ID {
		t.Fatalf("expected new id above existing ids, got %d", items[1].ID)
	}

	orders, _ := orderRepo.LoadAll(ctx)
	if len(orders) != 1 || orders[0].Item != "Milk" {
		t.Fatalf("expected only the milk order to remain, got %+v", orders)
	}
}

func TestReceiveUnknownPosition(t *testing.T) {
	coord, _, _ := newTestCoordinator(t, nil, []models.Order{{Item: "Eggs", Quantity: 1, From: "A", To: "B"}})

	for _, index := range []int{-1, 1, 5} {
		if _, err := coord.Receive(context.Background(), index); !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("index %d: expected ErrOrderNotFound, got %v", index, err)
		}
	}
}

type failingOrders struct {
	repository.OrderRepository
}

func (failingOrders) SaveAll(context.Context, []models.Order) error {
	return repository.ErrStoreUnavailable
}

func TestReceivePartialFailureIsReported(t *testing.T) {
	ctx := context.Background()
	_, itemRepo, orderRepo := newTestCoordinator(t,
		[]models.Item{{ID: 1, Name: "Eggs", Quantity: 20, Walmart: "StoreA"}},
		[]models.Order{{Item: "Eggs", Quantity: 5, From: "StoreA", To: "StoreB"}})

	coord := NewCoordinator(itemRepo, failingOrders{orderRepo}, idgen.New(nil), nil, nil)
	_, err := coord.Receive(ctx, 0)
	if !errors.Is(err, ErrPartialTransfer) || !errors.Is(err, repository.ErrStoreUnavailable) {
		t.Fatalf("expected partial transfer error, got %v", err)
	}

	items, _ := itemRepo.LoadAll(ctx)
	if items[0].Quantity != 15 {
		t.Fatalf("expected the item write to stand, got %v", items[0].Quantity)
	}
}
