package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/afterclass/commitgoblin/goblin/config"
	"github.com/afterclass/commitgoblin/goblin/database/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoDocument struct {
	ID        string    `bson:"_id"`
	Body      string    `bson:"body"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoRepository stores the document as one record of a collection.
type MongoRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
	id     string
}

// OpenMongo connects to uri and pings the primary.
func OpenMongo(ctx context.Context, uri, database, collection, documentID string) (*MongoRepository, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo uri is required")
	}
	if database == "" {
		database = config.DefaultMongoDatabase
	}
	if collection == "" {
		collection = config.DefaultMongoCollection
	}

	ctx, cancel := context.WithTimeout(ctx, config.NetworkDialTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoRepository{
		client: client,
		coll:   client.Database(database).Collection(collection),
		id:     documentID,
	}, nil
}

func (r *MongoRepository) Name() string { return "mongo:" + r.coll.Name() }

func (r *MongoRepository) Load(ctx context.Context) (*models.Document, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var stored mongoDocument
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: r.id}}).Decode(&stored)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, handleError("load", r.Name(), err)
	}
	doc, err := DecodeDocument([]byte(stored.Body))
	return doc, handleError("load", r.Name(), err)
}

func (r *MongoRepository) Save(ctx context.Context, doc *models.Document) error {
	data, err := EncodeDocument(doc)
	if err != nil {
		return handleError("save", r.Name(), err)
	}
	stored := mongoDocument{ID: r.id, Body: string(data)}
	touch(&stored.UpdatedAt)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err = r.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: r.id}},
		stored,
		options.Replace().SetUpsert(true),
	)
	return handleError("save", r.Name(), err)
}

func (r *MongoRepository) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), config.NetworkDialTimeout)
	defer cancel()
	return r.client.Disconnect(ctx)
}
