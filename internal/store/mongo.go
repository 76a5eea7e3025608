package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"portfolio-simulator/internal/models"
)

// MongoStore backs portfolios with a MongoDB collection. It implements
// the same PortfolioStore contract as MemoryStore and is selected with
// STORE_BACKEND=mongo.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore connects, pings and returns a store over the
// "portfolios" collection of the given database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo store requires MONGODB_URI")
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection("portfolios"),
	}, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&portfolio)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &portfolio, nil
}

func (s *MongoStore) Put(ctx context.Context, portfolio *models.Portfolio) error {
	_, err := s.collection.ReplaceOne(
		ctx,
		bson.M{"_id": portfolio.ID},
		portfolio,
		options.Replace().SetUpsert(true),
	)
	return err
}

// Close releases the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
