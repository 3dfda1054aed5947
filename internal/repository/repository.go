package repository

import (
	"context"
	"errors"
)

// Document keys holding the two collections.
const (
	ItemsKey  = "groceryItems"
	OrdersKey = "orders"
)

// ErrStoreUnavailable marks failures of the underlying document store.
var ErrStoreUnavailable = errors.New("document store unavailable")

// DocumentStore is an opaque key-value store of whole JSON documents. Get
// reports found=false when the key has never been written.
type DocumentStore interface {
	Get(ctx context.Context, key string) (payload []byte, found bool, err error)
	Set(ctx context.Context, key string, payload []byte) error
}
