package authenticator

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStorage implements Storage as a MongoDB collection with one document
// per slot: {_id: <key>, value: <serialized document>}.
type MongoStorage struct {
	collection *mongo.Collection
}

type mongoSlot struct {
	ID    string `bson:"_id"`
	Value string `bson:"value"`
}

// NewMongoStorage wraps a collection of an established client (see pkg/mongo.New).
func NewMongoStorage(collection *mongo.Collection) *MongoStorage {
	return &MongoStorage{collection: collection}
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (m *MongoStorage) Get(ctx context.Context, key string) (string, error) {
	var slot mongoSlot
	if err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&slot); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrKeyNotFound
		}
		return "", err
	}
	return slot.Value, nil
}

// Set upserts the value for key.
func (m *MongoStorage) Set(ctx context.Context, key, value string) error {
	_, err := m.collection.ReplaceOne(ctx,
		bson.M{"_id": key},
		mongoSlot{ID: key, Value: value},
		options.Replace().SetUpsert(true),
	)
	return err
}
