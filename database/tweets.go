package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/amanjaiswal-07/youtube-backend/models"
)

func (s *Store) tweets() *mongo.Collection { return s.db.Collection(models.TweetsCollection) }

func (s *Store) CreateTweet(ctx context.Context, t *models.Tweet) error {
	now := s.now()
	t.ID = primitive.NilObjectID
	t.CreatedAt, t.UpdatedAt = now, now

	res, err := s.tweets().InsertOne(ctx, t)
	if err != nil {
		return err
	}
	t.ID, err = insertedID(res)
	return err
}

func (s *Store) TweetByID(ctx context.Context, id primitive.ObjectID) (*models.Tweet, error) {
	return findByID[models.Tweet](ctx, s.tweets(), id)
}

func (s *Store) UpdateTweet(ctx context.Context, id primitive.ObjectID, fields bson.D) (*models.Tweet, error) {
	return updateByID[models.Tweet](ctx, s.tweets(), id, s.setWithTimestamp(fields))
}

// DeleteTweet removes the tweet with its likes and comments.
func (s *Store) DeleteTweet(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.tweets().DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return s.deleteChildren(ctx, models.Parent{Kind: models.ParentTweet, ID: id})
}
