package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/amanjaiswal-07/youtube-backend/models"
)

// edgeWriter is the part of a collection toggleEdge needs.
type edgeWriter interface {
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

// toggleEdge flips the existence of the edge identified by key and reports
// whether it exists afterwards. An existing edge is deleted; otherwise it is
// upserted. The collection must carry a unique index over key's fields so a
// racing upsert fails with a duplicate key error, which means another request
// created the edge first.
func toggleEdge(ctx context.Context, coll edgeWriter, key bson.D, now time.Time) (bool, error) {
	del, err := coll.DeleteOne(ctx, key)
	if err != nil {
		return false, fmt.Errorf("delete edge: %w", err)
	}
	if del.DeletedCount > 0 {
		return false, nil
	}

	_, err = coll.UpdateOne(ctx, key,
		bson.D{{Key: "$setOnInsert", Value: bson.D{{Key: "createdAt", Value: now}}}},
		options.Update().SetUpsert(true),
	)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return false, fmt.Errorf("upsert edge: %w", err)
	}
	return true, nil
}

func (s *Store) likes() *mongo.Collection { return s.db.Collection(models.LikesCollection) }

func (s *Store) subscriptions() *mongo.Collection {
	return s.db.Collection(models.SubscriptionsCollection)
}

// likeKey identifies the like from user on parent. Together with createdAt
// it is the whole stored models.Like.
func likeKey(parent models.Parent, user primitive.ObjectID) bson.D {
	return append(parent.Filter(), bson.E{Key: "likedBy", Value: user})
}

// ToggleLike likes or unlikes parent for userID and reports whether it is
// liked afterwards.
func (s *Store) ToggleLike(ctx context.Context, parent models.Parent, userID primitive.ObjectID) (bool, error) {
	return toggleEdge(ctx, s.likes(), likeKey(parent, userID), s.now())
}

// ToggleSubscription subscribes or unsubscribes subscriber to channel and
// reports whether the subscription exists afterwards.
func (s *Store) ToggleSubscription(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error) {
	key := bson.D{{Key: "subscriber", Value: subscriber}, {Key: "channel", Value: channel}}
	return toggleEdge(ctx, s.subscriptions(), key, s.now())
}

// ParentExists reports whether the entity a comment or like points at exists.
func (s *Store) ParentExists(ctx context.Context, parent models.Parent) (bool, error) {
	var coll *mongo.Collection
	switch parent.Kind {
	case models.ParentVideo:
		coll = s.videos()
	case models.ParentComment:
		coll = s.comments()
	case models.ParentTweet:
		coll = s.tweets()
	default:
		return false, fmt.Errorf("unknown parent kind %q", parent.Kind)
	}
	n, err := coll.CountDocuments(ctx, bson.D{{Key: "_id", Value: parent.ID}}, options.Count().SetLimit(1))
	return n > 0, err
}
