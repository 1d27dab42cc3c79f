package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/amanjaiswal-07/youtube-backend/composer"
	"github.com/amanjaiswal-07/youtube-backend/config"
	"github.com/amanjaiswal-07/youtube-backend/logger"
)

// Connect opens a client for cfg.MongoURI and verifies it with a ping.
func Connect(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	log := logger.L().WithField("db", cfg.MongoDB)

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerSelectionTimeout(60 * time.Second).
		SetConnectTimeout(60 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	log.Debug("🔍 [Connect] connection established")

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	log.Info("🚀 MongoDB connected successfully")
	return client, nil
}

// Store owns every write path and hands out read sources for views.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	now    func() time.Time
}

func NewStore(client *mongo.Client, dbName string) *Store {
	return &Store{
		client: client,
		db:     client.Database(dbName),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// Source returns the named collection as a view source.
func (s *Store) Source(name string) composer.Source {
	return s.db.Collection(name)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func findByID[T any](ctx context.Context, coll *mongo.Collection, id primitive.ObjectID) (*T, error) {
	var out T
	if err := coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// updateByID applies set to the document and returns it as stored afterwards.
func updateByID[T any](ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, update bson.D) (*T, error) {
	var out T
	err := coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// setWithTimestamp is a $set of fields plus updatedAt.
func (s *Store) setWithTimestamp(fields bson.D) bson.D {
	set := append(bson.D{}, fields...)
	set = append(set, bson.E{Key: "updatedAt", Value: s.now()})
	return bson.D{{Key: "$set", Value: set}}
}

func insertedID(res *mongo.InsertOneResult) (primitive.ObjectID, error) {
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("unexpected inserted id type")
	}
	return id, nil
}
