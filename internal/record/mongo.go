package record

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo keeps one document per collection, keyed by collection name, with
// the serialized collection as its payload. ReplaceOne with upsert gives
// the same full-overwrite semantics as the other adapters.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type collectionDoc struct {
	Name string `bson:"_id"`
	Data []byte `bson:"data"`
}

func NewMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &Mongo{
		client: client,
		coll:   client.Database(database).Collection("collections"),
	}, nil
}

func (m *Mongo) Get(ctx context.Context, collection string) ([]byte, error) {
	var doc collectionDoc
	err := m.coll.FindOne(ctx, bson.M{"_id": collection}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", collection, err)
	}
	return doc.Data, nil
}

func (m *Mongo) Put(ctx context.Context, collection string, data []byte) error {
	if data == nil {
		if _, err := m.coll.DeleteOne(ctx, bson.M{"_id": collection}); err != nil {
			return fmt.Errorf("delete %s: %w", collection, err)
		}
		return nil
	}
	doc := collectionDoc{Name: collection, Data: data}
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": collection}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("put %s: %w", collection, err)
	}
	return nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
