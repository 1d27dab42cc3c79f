package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/amanjaiswal-07/youtube-backend/models"
)

func (s *Store) comments() *mongo.Collection { return s.db.Collection(models.CommentsCollection) }

func (s *Store) CreateComment(ctx context.Context, parent models.Parent, owner primitive.ObjectID, content string) (*models.Comment, error) {
	c, err := models.NewComment(parent, owner, content, s.now())
	if err != nil {
		return nil, err
	}
	res, err := s.comments().InsertOne(ctx, c)
	if err != nil {
		return nil, err
	}
	if c.ID, err = insertedID(res); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) CommentByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	return findByID[models.Comment](ctx, s.comments(), id)
}

func (s *Store) UpdateComment(ctx context.Context, id primitive.ObjectID, content string) (*models.Comment, error) {
	return updateByID[models.Comment](ctx, s.comments(), id,
		s.setWithTimestamp(bson.D{{Key: "content", Value: content}}))
}

// DeleteComment removes the comment and the likes on it.
func (s *Store) DeleteComment(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.comments().DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	_, err = s.likes().DeleteMany(ctx, models.Parent{Kind: models.ParentComment, ID: id}.Filter())
	return err
}

// deleteChildren removes the likes and comments hanging off parent, and the
// likes on those comments.
func (s *Store) deleteChildren(ctx context.Context, parent models.Parent) error {
	if _, err := s.likes().DeleteMany(ctx, parent.Filter()); err != nil {
		return err
	}

	ids, err := s.comments().Distinct(ctx, "_id", parent.Filter())
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	if _, err := s.likes().DeleteMany(ctx, bson.D{{Key: "comment", Value: bson.D{{Key: "$in", Value: ids}}}}); err != nil {
		return err
	}
	_, err = s.comments().DeleteMany(ctx, parent.Filter())
	return err
}
