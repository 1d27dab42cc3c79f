package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/amanjaiswal-07/youtube-backend/logger"
	"github.com/amanjaiswal-07/youtube-backend/models"
)

func likeIndex(parent models.ParentKind) mongo.IndexModel {
	field := string(parent)
	return mongo.IndexModel{
		Keys: bson.D{{Key: field, Value: 1}, {Key: "likedBy", Value: 1}},
		Options: options.Index().
			SetName("uniq_" + field + "_likedBy").
			SetUnique(true).
			SetPartialFilterExpression(bson.D{{Key: field, Value: bson.D{{Key: "$exists", Value: true}}}}),
	}
}

// indexSpecs lists every index the application relies on, by collection.
func indexSpecs() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		models.UsersCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetName("uniq_username").SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName("uniq_email").SetUnique(true)},
		},
		models.VideosCollection: {
			{
				Keys:    bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}},
				Options: options.Index().SetName("text_title_description"),
			},
			{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("owner_createdAt")},
		},
		models.CommentsCollection: {
			{Keys: bson.D{{Key: "video", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("video_createdAt")},
			{Keys: bson.D{{Key: "tweet", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("tweet_createdAt")},
		},
		models.LikesCollection: {
			likeIndex(models.ParentVideo),
			likeIndex(models.ParentComment),
			likeIndex(models.ParentTweet),
		},
		models.SubscriptionsCollection: {
			{
				Keys:    bson.D{{Key: "subscriber", Value: 1}, {Key: "channel", Value: 1}},
				Options: options.Index().SetName("uniq_subscriber_channel").SetUnique(true),
			},
			{Keys: bson.D{{Key: "channel", Value: 1}}, Options: options.Index().SetName("channel")},
		},
		models.TweetsCollection: {
			{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("owner_createdAt")},
		},
		models.PlaylistsCollection: {
			{Keys: bson.D{{Key: "owner", Value: 1}}, Options: options.Index().SetName("owner")},
		},
	}
}

// EnsureIndexes creates missing indexes. Existing indexes with the same name
// and keys are left alone by the server.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	for coll, specs := range indexSpecs() {
		names, err := s.db.Collection(coll).Indexes().CreateMany(ctx, specs)
		if err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
		logger.L().WithField("collection", coll).Debugf("✅ indexes ready: %v", names)
	}
	return nil
}
