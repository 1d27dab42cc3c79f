package controllers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amanjaiswal-07/youtube-backend/composer"
	"github.com/amanjaiswal-07/youtube-backend/helpers"
	"github.com/amanjaiswal-07/youtube-backend/models"
)

// Sources hands out read sources for aggregation views by collection name.
type Sources interface {
	Source(name string) composer.Source
}

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UserByLogin(ctx context.Context, username, email string) (*models.User, error)
	UserTaken(ctx context.Context, username, email string) (bool, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, fields bson.D) (*models.User, error)
	SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error
	ClearWatchHistory(ctx context.Context, userID primitive.ObjectID) error
}

type VideoStore interface {
	CreateVideo(ctx context.Context, v *models.Video) error
	VideoByID(ctx context.Context, id primitive.ObjectID) (*models.Video, error)
	UpdateVideo(ctx context.Context, id primitive.ObjectID, fields bson.D) (*models.Video, error)
	DeleteVideo(ctx context.Context, id primitive.ObjectID) error
	IncrementViews(ctx context.Context, id primitive.ObjectID) error
	AddToWatchHistory(ctx context.Context, userID, videoID primitive.ObjectID) error
}

// ParentChecker reports whether the entity a comment or like points at exists.
type ParentChecker interface {
	ParentExists(ctx context.Context, parent models.Parent) (bool, error)
}

type CommentStore interface {
	CreateComment(ctx context.Context, parent models.Parent, owner primitive.ObjectID, content string) (*models.Comment, error)
	CommentByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	UpdateComment(ctx context.Context, id primitive.ObjectID, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, id primitive.ObjectID) error
	ParentChecker
}

type LikeStore interface {
	ToggleLike(ctx context.Context, parent models.Parent, userID primitive.ObjectID) (bool, error)
	ParentChecker
}

type TweetStore interface {
	CreateTweet(ctx context.Context, t *models.Tweet) error
	TweetByID(ctx context.Context, id primitive.ObjectID) (*models.Tweet, error)
	UpdateTweet(ctx context.Context, id primitive.ObjectID, fields bson.D) (*models.Tweet, error)
	DeleteTweet(ctx context.Context, id primitive.ObjectID) error
}

type SubscriptionStore interface {
	ToggleSubscription(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error)
	UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type PlaylistStore interface {
	CreatePlaylist(ctx context.Context, p *models.Playlist) error
	PlaylistByID(ctx context.Context, id primitive.ObjectID) (*models.Playlist, error)
	UpdatePlaylist(ctx context.Context, id primitive.ObjectID, fields bson.D) (*models.Playlist, error)
	DeletePlaylist(ctx context.Context, id primitive.ObjectID) error
	AddVideoToPlaylist(ctx context.Context, playlistID, videoID primitive.ObjectID) (*models.Playlist, error)
	RemoveVideoFromPlaylist(ctx context.Context, playlistID, videoID primitive.ObjectID) (*models.Playlist, error)
	VideoByID(ctx context.Context, id primitive.ObjectID) (*models.Video, error)
}

// TokenIssuer signs and checks session tokens.
type TokenIssuer interface {
	GenerateTokens(sub helpers.TokenSubject) (access, refresh string, err error)
	ValidateRefreshToken(signed string) (*helpers.RefreshClaims, error)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}

// Uploader spools multipart files to local paths.
type Uploader interface {
	Spool(c *gin.Context, field string) (*helpers.SpooledFile, error)
	Require(c *gin.Context, field string) (*helpers.SpooledFile, error)
}
