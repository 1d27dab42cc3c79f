package composer

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amanjaiswal-07/youtube-backend/models"
)

// VideoSortable are the fields video listings may be sorted by.
var VideoSortable = Sortable{"createdAt", "views", "duration", "title"}

// DetailCommentLimit caps the comments embedded in VideoDetail.
const DetailCommentLimit int64 = 20

func ownerCard(localField, as string) Join {
	return Join{
		From:         models.UsersCollection,
		LocalField:   localField,
		ForeignField: "_id",
		As:           as,
		Fields:       []string{"username", "fullname", "avatar"},
		One:          true,
	}
}

func likesOf(kind models.ParentKind) Join {
	return Join{
		From:         models.LikesCollection,
		LocalField:   "_id",
		ForeignField: string(kind),
		As:           "likes",
		Fields:       []string{"likedBy"},
	}
}

// liked adds likesCount and isLiked from a likesOf join.
func liked(actor primitive.ObjectID) []Field {
	return []Field{
		Count("likesCount", "likes"),
		Membership("isLiked", "likes.likedBy", actor),
	}
}

// flattenTo replaces each row by the embedded object at field, skipping rows
// whose join found nothing. extra fields of the outer row are merged in.
func flattenTo(field string, extra bson.D) []bson.D {
	root := any(ref(field))
	if len(extra) > 0 {
		root = bson.D{{Key: "$mergeObjects", Value: bson.A{ref(field), extra}}}
	}
	return []bson.D{
		{{Key: "$match", Value: bson.D{{Key: field, Value: bson.D{{Key: "$ne", Value: nil}}}}}},
		{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: root}}}},
	}
}

var videoCardFields = []string{"title", "description", "thumbnail", "duration", "views", "isPublished", "createdAt", "ownerDetails"}

// ChannelProfile is one user's public profile with subscription counts.
func ChannelProfile(username string, actor primitive.ObjectID) View {
	return View{
		Match: bson.D{{Key: "username", Value: strings.ToLower(strings.TrimSpace(username))}},
		Joins: []Join{
			{
				From:         models.SubscriptionsCollection,
				LocalField:   "_id",
				ForeignField: "channel",
				As:           "subscribers",
				Fields:       []string{"subscriber"},
			},
			{
				From:         models.SubscriptionsCollection,
				LocalField:   "_id",
				ForeignField: "subscriber",
				As:           "subscribedTo",
				Fields:       []string{"channel"},
			},
		},
		Derive: []Field{
			Count("subscribersCount", "subscribers"),
			Count("channelsSubscribedToCount", "subscribedTo"),
			Membership("isSubscribed", "subscribers.subscriber", actor),
		},
		Project: []string{
			"username", "fullname", "email", "avatar", "coverimage",
			"subscribersCount", "channelsSubscribedToCount", "isSubscribed", "createdAt",
		},
	}
}

// VideoDetail is a single video with its owner's channel summary, like
// rollup and its newest DetailCommentLimit comments; the rest are paged
// through CommentListing. Unpublished videos only match for their owner.
func VideoDetail(videoID, actor primitive.ObjectID) View {
	match := bson.D{{Key: "_id", Value: videoID}}
	if actor.IsZero() {
		match = append(match, bson.E{Key: "isPublished", Value: true})
	} else {
		match = append(match, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "isPublished", Value: true}},
			bson.D{{Key: "owner", Value: actor}},
		}})
	}

	return View{
		Match: match,
		Joins: []Join{
			{
				From:         models.UsersCollection,
				LocalField:   "owner",
				ForeignField: "_id",
				As:           "ownerDetails",
				Fields:       []string{"username", "avatar"},
				One:          true,
				Nested: []Join{{
					From:         models.SubscriptionsCollection,
					LocalField:   "_id",
					ForeignField: "channel",
					As:           "subscribers",
					Fields:       []string{"subscriber"},
				}},
				Derive: []Field{
					Count("subscribersCount", "subscribers"),
					Membership("isSubscribed", "subscribers.subscriber", actor),
				},
			},
			likesOf(models.ParentVideo),
			{
				From:         models.CommentsCollection,
				LocalField:   "_id",
				ForeignField: "video",
				As:           "comments",
				Fields:       []string{"content", "owner", "createdAt", "updatedAt"},
				Nested:       []Join{ownerCard("owner", "owner")},
				Sort:         Newest(),
				Limit:        DetailCommentLimit,
			},
			{
				From:         models.CommentsCollection,
				LocalField:   "_id",
				ForeignField: "video",
				As:           "commentIds",
				Fields:       []string{"_id"},
			},
		},
		Derive: append(liked(actor), Count("commentsCount", "commentIds")),
		Project: []string{
			"title", "description", "videoFile", "thumbnail", "duration", "views",
			"isPublished", "createdAt", "updatedAt", "ownerDetails",
			"likesCount", "isLiked", "commentsCount", "comments",
		},
	}
}

// VideoListing lists videos matching f with their owner card embedded.
func VideoListing(f Filter, sort bson.D) (View, error) {
	match, err := Match(f)
	if err != nil {
		return View{}, err
	}
	return View{
		Match:   match,
		Sort:    sort,
		Joins:   []Join{ownerCard("owner", "ownerDetails")},
		Project: append([]string{"videoFile"}, videoCardFields...),
	}, nil
}

// CommentListing lists the comments under one parent, newest first.
func CommentListing(parent models.Parent, actor primitive.ObjectID) (View, error) {
	match, err := Match(Filter{Parent: &parent})
	if err != nil {
		return View{}, err
	}
	return View{
		Match:   match,
		Sort:    Newest(),
		Joins:   []Join{ownerCard("owner", "owner"), likesOf(models.ParentComment)},
		Derive:  liked(actor),
		Project: []string{"content", "owner", "likesCount", "isLiked", "createdAt", "updatedAt"},
	}, nil
}

// LikedVideos lists the videos actor has liked, most recent like first. It
// runs against the likes collection.
func LikedVideos(actor primitive.ObjectID) View {
	return View{
		Match: bson.D{
			{Key: "likedBy", Value: actor},
			{Key: "video", Value: bson.D{{Key: "$exists", Value: true}}},
		},
		Sort: Newest(),
		Joins: []Join{{
			From:         models.VideosCollection,
			LocalField:   "video",
			ForeignField: "_id",
			As:           "video",
			Fields:       videoCardFields,
			Nested:       []Join{ownerCard("owner", "ownerDetails")},
			One:          true,
		}},
		Stages: flattenTo("video", nil),
	}
}

// UserTweets lists one user's tweets with like rollups.
func UserTweets(ownerID, actor primitive.ObjectID) View {
	return View{
		Match:   bson.D{{Key: "owner", Value: ownerID}},
		Sort:    Newest(),
		Joins:   []Join{ownerCard("owner", "owner"), likesOf(models.ParentTweet)},
		Derive:  liked(actor),
		Project: []string{"content", "image", "owner", "likesCount", "isLiked", "createdAt", "updatedAt"},
	}
}

func subscriptionEdges(matchField, cardField string, id primitive.ObjectID) View {
	return View{
		Match: bson.D{{Key: matchField, Value: id}},
		Sort:  Newest(),
		Joins: []Join{{
			From:         models.UsersCollection,
			LocalField:   cardField,
			ForeignField: "_id",
			As:           cardField,
			Fields:       []string{"username", "fullname", "avatar"},
			One:          true,
		}},
		Stages: flattenTo(cardField, bson.D{{Key: "subscribedAt", Value: "$createdAt"}}),
	}
}

// Subscribers lists the users subscribed to channelID as user cards. It runs
// against the subscriptions collection.
func Subscribers(channelID primitive.ObjectID) View {
	return subscriptionEdges("channel", "subscriber", channelID)
}

// SubscribedChannels lists the channels subscriberID follows.
func SubscribedChannels(subscriberID primitive.ObjectID) View {
	return subscriptionEdges("subscriber", "channel", subscriberID)
}

func playlistView(match bson.D, videoOwners bool) View {
	videos := Join{
		From:          models.VideosCollection,
		LocalField:    "videos",
		ForeignField:  "_id",
		As:            "videos",
		Fields:        []string{"title", "thumbnail", "duration", "views", "createdAt"},
		PreserveOrder: true,
	}
	if videoOwners {
		videos.Fields = videoCardFields
		videos.Nested = []Join{ownerCard("owner", "ownerDetails")}
	}

	return View{
		Match: match,
		Sort:  Newest(),
		Joins: []Join{ownerCard("owner", "owner"), videos},
		Derive: []Field{
			Count("videosCount", "videos"),
			Sum("totalViews", "videos.views"),
		},
		Project: []string{"name", "description", "owner", "videos", "videosCount", "totalViews", "createdAt", "updatedAt"},
	}
}

// UserPlaylists lists ownerID's playlists with a projection of their videos.
func UserPlaylists(ownerID primitive.ObjectID) View {
	return playlistView(bson.D{{Key: "owner", Value: ownerID}}, false)
}

// PlaylistDetail is one playlist with its videos in stored order, each with
// its owner embedded.
func PlaylistDetail(playlistID primitive.ObjectID) View {
	return playlistView(bson.D{{Key: "_id", Value: playlistID}}, true)
}

// WatchHistory is userID's watch history in stored order.
func WatchHistory(userID primitive.ObjectID) View {
	return View{
		Match: bson.D{{Key: "_id", Value: userID}},
		Joins: []Join{{
			From:          models.VideosCollection,
			LocalField:    "watchHistory",
			ForeignField:  "_id",
			As:            "watchHistory",
			Fields:        videoCardFields,
			Nested:        []Join{ownerCard("owner", "ownerDetails")},
			PreserveOrder: true,
		}},
		Project: []string{"watchHistory"},
	}
}
