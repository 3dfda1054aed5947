package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mamadbah2/freshstock/internal/domain/models"
	"github.com/mamadbah2/freshstock/internal/repository"
	"github.com/mamadbah2/freshstock/internal/repository/memory"
)

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, repository.ErrStoreUnavailable
}

func (failingStore) Set(context.Context, string, []byte) error {
	return repository.ErrStoreUnavailable
}

func TestItemsMissingDocumentIsEmpty(t *testing.T) {
	repo := repository.NewItemRepository(memory.NewStore(), nil)

	items, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", items)
	}
}

func TestItemsMalformedDocumentIsEmpty(t *testing.T) {
	ctx := context.Background()
	for _, payload := range []string{`{"name":"Milk"}`, `not json`, `42`, `"[]"`} {
		store := memory.NewStore()
		_ = store.Set(ctx, repository.ItemsKey, []byte(payload))

		items, err := repository.NewItemRepository(store, nil).LoadAll(ctx)
		if err != nil {
			t.Fatalf("payload %q: unexpected error %v", payload, err)
		}
		if len(items) != 0 {
			t.Fatalf("payload %q: expected no items, got %d", payload, len(items))
		}
	}
}

func TestItemsNormalizeLooseFields(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	payload := `[
		{"id": 1714521600000, "name": "Milk", "category": "Dairy & Eggs", "quantity": 3,
		 "expiryDate": "2024-05-02", "discount1": "10", "discount2": "", "purchasing_price": "20",
		 "selling_price": "50", "walmart": "123 Main St, Springfield", "createdAt": "2024-04-28T10:00:00Z"},
		null,
		7,
		{"id": "1714521600001", "name": 12, "quantity": "abc", "discount1": "NaN", "selling_price": null}
	]`
	if err := store.Set(ctx, repository.ItemsKey, []byte(payload)); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	items, err := repository.NewItemRepository(store, nil).LoadAll(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items after skipping malformed elements, got %d", len(items))
	}

	milk := items[0]
	if milk.ID != 1714521600000 || milk.Name != "Milk" || milk.Quantity != 3 {
		t.Fatalf("unexpected milk %+v", milk)
	}
	if milk.DiscountDay1 != 10 || milk.DiscountDay2 != 0 || milk.PurchasingPrice != 20 || milk.SellingPrice != 50 {
		t.Fatalf("expected numeric strings to normalize, got %+v", milk)
	}
	if milk.CreatedAt == nil || milk.CreatedAt.Year() != 2024 {
		t.Fatalf("expected createdAt to parse, got %v", milk.CreatedAt)
	}

	odd := items[1]
	if odd.ID != 1714521600001 || odd.Name != "12" {
		t.Fatalf("unexpected coercion %+v", odd)
	}
	if odd.Quantity != 0 || odd.DiscountDay1 != 0 || odd.SellingPrice != 0 {
		t.Fatalf("expected unparseable numbers to default to 0, got %+v", odd)
	}
}

func TestItemsRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewItemRepository(memory.NewStore(), nil)

	want := []models.Item{
		{ID: 1, Name: "Eggs", Quantity: 20, Walmart: "StoreA", DiscountDay1: 15, SellingPrice: 4.5},
		{ID: 2, Name: "Bread", Quantity: -2, Walmart: "StoreB"},
	}
	if err := repo.SaveAll(ctx, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("item %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestOrdersLoadAndSave(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	_ = store.Set(ctx, repository.OrdersKey, []byte(`[{"item":"Eggs","quantity":"12","from":"StoreA","to":"StoreB"},"junk"]`))

	repo := repository.NewOrderRepository(store, nil)
	orders, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
	if orders[0] != (models.Order{Item: "Eggs", Quantity: 12, From: "StoreA", To: "StoreB"}) {
		t.Fatalf("unexpected order %+v", orders[0])
	}

	if err := repo.SaveAll(ctx, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	raw, _, _ := store.Get(ctx, repository.OrdersKey)
	if string(raw) != "[]" {
		t.Fatalf("expected empty array document, got %s", raw)
	}
}

func TestStoreFailuresAreWrapped(t *testing.T) {
	ctx := context.Background()

	_, err := repository.NewItemRepository(failingStore{}, nil).LoadAll(ctx)
	if !errors.Is(err, repository.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	err = repository.NewOrderRepository(failingStore{}, nil).SaveAll(ctx, []models.Order{})
	if !errors.Is(err, repository.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
