package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/amanjaiswal-07/youtube-backend/models"
)

func (s *Store) videos() *mongo.Collection { return s.db.Collection(models.VideosCollection) }

func (s *Store) CreateVideo(ctx context.Context, v *models.Video) error {
	now := s.now()
	v.ID = primitive.NilObjectID
	v.CreatedAt, v.UpdatedAt = now, now

	res, err := s.videos().InsertOne(ctx, v)
	if err != nil {
		return err
	}
	v.ID, err = insertedID(res)
	return err
}

func (s *Store) VideoByID(ctx context.Context, id primitive.ObjectID) (*models.Video, error) {
	return findByID[models.Video](ctx, s.videos(), id)
}

func (s *Store) UpdateVideo(ctx context.Context, id primitive.ObjectID, fields bson.D) (*models.Video, error) {
	return updateByID[models.Video](ctx, s.videos(), id, s.setWithTimestamp(fields))
}

// DeleteVideo removes the video row along with its likes and comments.
func (s *Store) DeleteVideo(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.videos().DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return s.deleteChildren(ctx, models.Parent{Kind: models.ParentVideo, ID: id})
}

// IncrementViews bumps the view counter by one.
func (s *Store) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.videos().UpdateByID(ctx, id, bson.D{{Key: "$inc", Value: bson.D{{Key: "views", Value: 1}}}})
	return err
}
