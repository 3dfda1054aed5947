package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mamadbah2/freshstock/internal/repository"
)

// DocumentStore implements repository.DocumentStore with one redis string
// per document.
type DocumentStore struct {
	client *goredis.Client
	prefix string
}

// NewDocumentStore builds a store. Keys are namespaced with prefix.
func NewDocumentStore(addr string, password string, db int, prefix string) *DocumentStore {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &DocumentStore{client: client, prefix: prefix}
}

func (s *DocumentStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *DocumentStore) Close() error {
	return s.client.Close()
}

func (s *DocumentStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: get %s: %v", repository.ErrStoreUnavailable, key, err)
	}
	return val, true, nil
}

func (s *DocumentStore) Set(ctx context.Context, key string, payload []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, payload, 0).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", repository.ErrStoreUnavailable, key, err)
	}
	return nil
}
