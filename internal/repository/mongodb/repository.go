package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/freshstock/internal/repository"
)

// document is one stored key. The payload is kept as the raw JSON text so
// the store stays opaque to its contents.
type document struct {
	Key       string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// DocumentStore implements repository.DocumentStore on a MongoDB collection.
type DocumentStore struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewDocumentStore connects to MongoDB and verifies the connection.
func NewDocumentStore(ctx context.Context, uri string, dbName string) (*DocumentStore, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &DocumentStore{
		client:   client,
		dbName:   dbName,
		collName: "documents",
	}, nil
}

func (s *DocumentStore) collection() *mongo.Collection {
	return s.client.Database(s.dbName).Collection(s.collName)
}

// Get loads the payload stored under key.
func (s *DocumentStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc document
	err := s.collection().FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: find %s: %v", repository.ErrStoreUnavailable, key, err)
	}
	return []byte(doc.Payload), true, nil
}

// Set upserts the payload stored under key.
func (s *DocumentStore) Set(ctx context.Context, key string, payload []byte) error {
	doc := document{Key: key, Payload: string(payload), UpdatedAt: time.Now().UTC()}
	_, err := s.collection().ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%w: replace %s: %v", repository.ErrStoreUnavailable, key, err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (s *DocumentStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
