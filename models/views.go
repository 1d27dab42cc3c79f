package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Read models. These are the shapes the aggregation views decode into and
// the API renders; none of them is ever written back.

// OwnerCard is the public slice of a user embedded in other documents.
type OwnerCard struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Username string             `bson:"username" json:"username"`
	Fullname string             `bson:"fullname,omitempty" json:"fullname,omitempty"`
	Avatar   Asset              `bson:"avatar" json:"avatar"`
}

// ChannelOwner is an OwnerCard with the viewer's subscription state.
type ChannelOwner struct {
	ID               primitive.ObjectID `bson:"_id" json:"_id"`
	Username         string             `bson:"username" json:"username"`
	Avatar           Asset              `bson:"avatar" json:"avatar"`
	SubscribersCount int64              `bson:"subscribersCount" json:"subscribersCount"`
	IsSubscribed     bool               `bson:"isSubscribed" json:"isSubscribed"`
}

type ChannelProfile struct {
	ID                        primitive.ObjectID `bson:"_id" json:"_id"`
	Username                  string             `bson:"username" json:"username"`
	Fullname                  string             `bson:"fullname" json:"fullname"`
	Email                     string             `bson:"email" json:"email"`
	Avatar                    Asset              `bson:"avatar" json:"avatar"`
	Coverimage                *Asset             `bson:"coverimage,omitempty" json:"coverimage,omitempty"`
	SubscribersCount          int64              `bson:"subscribersCount" json:"subscribersCount"`
	ChannelsSubscribedToCount int64              `bson:"channelsSubscribedToCount" json:"channelsSubscribedToCount"`
	IsSubscribed              bool               `bson:"isSubscribed" json:"isSubscribed"`
	CreatedAt                 time.Time          `bson:"createdAt" json:"createdAt"`
}

// VideoCard is a video as it appears in listings.
type VideoCard struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Thumbnail   Asset              `bson:"thumbnail" json:"thumbnail"`
	VideoFile   *Asset             `bson:"videoFile,omitempty" json:"videoFile,omitempty"`
	Duration    float64            `bson:"duration" json:"duration"`
	Views       int64              `bson:"views" json:"views"`
	IsPublished bool               `bson:"isPublished" json:"isPublished"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	Owner       *OwnerCard         `bson:"ownerDetails" json:"ownerDetails"`
}

type VideoDetail struct {
	ID            primitive.ObjectID `bson:"_id" json:"_id"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	VideoFile     Asset              `bson:"videoFile" json:"videoFile"`
	Thumbnail     Asset              `bson:"thumbnail" json:"thumbnail"`
	Duration      float64            `bson:"duration" json:"duration"`
	Views         int64              `bson:"views" json:"views"`
	IsPublished   bool               `bson:"isPublished" json:"isPublished"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
	Owner         *ChannelOwner      `bson:"ownerDetails" json:"ownerDetails"`
	LikesCount    int64              `bson:"likesCount" json:"likesCount"`
	IsLiked       bool               `bson:"isLiked" json:"isLiked"`
	CommentsCount int64              `bson:"commentsCount" json:"commentsCount"`
	Comments      []CommentView      `bson:"comments" json:"comments"`
}

type CommentView struct {
	ID         primitive.ObjectID `bson:"_id" json:"_id"`
	Content    string             `bson:"content" json:"content"`
	Owner      *OwnerCard         `bson:"owner" json:"owner"`
	LikesCount int64              `bson:"likesCount" json:"likesCount"`
	IsLiked    bool               `bson:"isLiked" json:"isLiked"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type TweetView struct {
	ID         primitive.ObjectID `bson:"_id" json:"_id"`
	Content    string             `bson:"content" json:"content"`
	Image      *Asset             `bson:"image,omitempty" json:"image,omitempty"`
	Owner      *OwnerCard         `bson:"owner" json:"owner"`
	LikesCount int64              `bson:"likesCount" json:"likesCount"`
	IsLiked    bool               `bson:"isLiked" json:"isLiked"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type PlaylistView struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Owner       *OwnerCard         `bson:"owner" json:"owner"`
	Videos      []VideoCard        `bson:"videos" json:"videos"`
	VideosCount int64              `bson:"videosCount" json:"videosCount"`
	TotalViews  int64              `bson:"totalViews" json:"totalViews"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserCard is a user row in subscriber and subscription listings.
type UserCard struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	Username     string             `bson:"username" json:"username"`
	Fullname     string             `bson:"fullname" json:"fullname"`
	Avatar       Asset              `bson:"avatar" json:"avatar"`
	SubscribedAt time.Time          `bson:"subscribedAt" json:"subscribedAt"`
}

type WatchHistory struct {
	Videos []VideoCard `bson:"watchHistory" json:"watchHistory"`
}
