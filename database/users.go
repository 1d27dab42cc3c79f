package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/amanjaiswal-07/youtube-backend/models"
)

func (s *Store) users() *mongo.Collection { return s.db.Collection(models.UsersCollection) }

// CreateUser inserts u and fills in its id and timestamps.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	now := s.now()
	u.ID = primitive.NilObjectID
	u.CreatedAt, u.UpdatedAt = now, now
	if u.WatchHistory == nil {
		u.WatchHistory = []primitive.ObjectID{}
	}

	res, err := s.users().InsertOne(ctx, u)
	if err != nil {
		return err
	}
	u.ID, err = insertedID(res)
	return err
}

func (s *Store) UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return findByID[models.User](ctx, s.users(), id)
}

// UserByLogin finds a user by username or email, whichever is given.
func (s *Store) UserByLogin(ctx context.Context, username, email string) (*models.User, error) {
	or := bson.A{}
	if username != "" {
		or = append(or, bson.D{{Key: "username", Value: username}})
	}
	if email != "" {
		or = append(or, bson.D{{Key: "email", Value: email}})
	}
	if len(or) == 0 {
		return nil, mongo.ErrNoDocuments
	}

	var u models.User
	if err := s.users().FindOne(ctx, bson.D{{Key: "$or", Value: or}}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UserTaken reports whether a user already holds username or email.
func (s *Store) UserTaken(ctx context.Context, username, email string) (bool, error) {
	n, err := s.users().CountDocuments(ctx, bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "username", Value: username}},
		bson.D{{Key: "email", Value: email}},
	}}})
	return n > 0, err
}

// UpdateUser sets fields on the user and returns the updated document.
func (s *Store) UpdateUser(ctx context.Context, id primitive.ObjectID, fields bson.D) (*models.User, error) {
	return updateByID[models.User](ctx, s.users(), id, s.setWithTimestamp(fields))
}

// SetRefreshToken stores token on the user. An empty token clears it.
func (s *Store) SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error {
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "refreshToken", Value: token}}}}
	if token == "" {
		update = bson.D{{Key: "$unset", Value: bson.D{{Key: "refreshToken", Value: ""}}}}
	}
	res, err := s.users().UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AddToWatchHistory appends videoID unless it is already present.
func (s *Store) AddToWatchHistory(ctx context.Context, userID, videoID primitive.ObjectID) error {
	_, err := s.users().UpdateByID(ctx, userID, bson.D{
		{Key: "$addToSet", Value: bson.D{{Key: "watchHistory", Value: videoID}}},
	})
	return err
}

// ClearWatchHistory empties the user's watch history.
func (s *Store) ClearWatchHistory(ctx context.Context, userID primitive.ObjectID) error {
	res, err := s.users().UpdateByID(ctx, userID, bson.D{
		{Key: "$set", Value: bson.D{{Key: "watchHistory", Value: bson.A{}}}},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
