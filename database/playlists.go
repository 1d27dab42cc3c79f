package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/amanjaiswal-07/youtube-backend/models"
)

func (s *Store) playlists() *mongo.Collection { return s.db.Collection(models.PlaylistsCollection) }

func (s *Store) CreatePlaylist(ctx context.Context, p *models.Playlist) error {
	now := s.now()
	p.ID = primitive.NilObjectID
	p.CreatedAt, p.UpdatedAt = now, now
	if p.Videos == nil {
		p.Videos = []primitive.ObjectID{}
	}

	res, err := s.playlists().InsertOne(ctx, p)
	if err != nil {
		return err
	}
	p.ID, err = insertedID(res)
	return err
}

func (s *Store) PlaylistByID(ctx context.Context, id primitive.ObjectID) (*models.Playlist, error) {
	return findByID[models.Playlist](ctx, s.playlists(), id)
}

func (s *Store) UpdatePlaylist(ctx context.Context, id primitive.ObjectID, fields bson.D) (*models.Playlist, error) {
	return updateByID[models.Playlist](ctx, s.playlists(), id, s.setWithTimestamp(fields))
}

func (s *Store) DeletePlaylist(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.playlists().DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AddVideoToPlaylist appends videoID with set semantics.
func (s *Store) AddVideoToPlaylist(ctx context.Context, playlistID, videoID primitive.ObjectID) (*models.Playlist, error) {
	return updateByID[models.Playlist](ctx, s.playlists(), playlistID, bson.D{
		{Key: "$addToSet", Value: bson.D{{Key: "videos", Value: videoID}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: s.now()}}},
	})
}

func (s *Store) RemoveVideoFromPlaylist(ctx context.Context, playlistID, videoID primitive.ObjectID) (*models.Playlist, error) {
	return updateByID[models.Playlist](ctx, s.playlists(), playlistID, bson.D{
		{Key: "$pull", Value: bson.D{{Key: "videos", Value: videoID}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: s.now()}}},
	})
}
