package controllers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amanjaiswal-07/youtube-backend/composer"
	"github.com/amanjaiswal-07/youtube-backend/models"
)

func TestToggleLikeAlternates(t *testing.T) {
	store := newMemStore()
	h := &LikeController{Likes: store, Views: fakeViews{}}
	user := primitive.NewObjectID()
	video := primitive.NewObjectID()
	store.videos[video] = &models.Video{ID: video}

	r := newRouter(user)
	r.POST("/likes/toggle/v/:videoId", h.ToggleVideoLike())

	for _, want := range []string{`{"isLiked":true}`, `{"isLiked":false}`, `{"isLiked":true}`} {
		rec, env := serve(t, r, http.MethodPost, "/likes/toggle/v/"+video.Hex(), nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, want, string(env.Data))
	}
	assert.Len(t, store.likes, 1)
}

func TestToggleLikeErrors(t *testing.T) {
	store := newMemStore()
	h := &LikeController{Likes: store, Views: fakeViews{}}
	r := newRouter(primitive.NewObjectID())
	r.POST("/likes/toggle/c/:commentId", h.ToggleCommentLike())
	r.POST("/likes/toggle/t/:tweetId", h.ToggleTweetLike())

	rec, _ := serve(t, r, http.MethodPost, "/likes/toggle/c/nope", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env := serve(t, r, http.MethodPost, "/likes/toggle/t/"+primitive.NewObjectID().Hex(), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "tweet not found", env.Message)
	assert.Empty(t, store.likes)

	anon := newRouter(primitive.NilObjectID)
	anon.POST("/likes/toggle/c/:commentId", h.ToggleCommentLike())
	rec, _ = serve(t, anon, http.MethodPost, "/likes/toggle/c/"+primitive.NewObjectID().Hex(), nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLikedVideosReadsLikes(t *testing.T) {
	views := fakeViews{}
	src := &fakeSource{total: 1, rows: []interface{}{
		bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "title", Value: "liked one"}},
	}}
	views[models.LikesCollection] = src
	user := primitive.NewObjectID()
	h := &LikeController{Likes: newMemStore(), Views: views}
	r := newRouter(user)
	r.GET("/likes/videos", h.GetLikedVideos())

	rec, env := serve(t, r, http.MethodGet, "/likes/videos", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[composer.Envelope[models.VideoCard]](t, env.Data)
	require.Len(t, page.Docs, 1)
	assert.Equal(t, "liked one", page.Docs[0].Title)
	assert.Equal(t, bson.D{
		{Key: "likedBy", Value: user},
		{Key: "video", Value: bson.D{{Key: "$exists", Value: true}}},
	}, src.filters[0])
}

func TestCommentsOnVideosAndTweets(t *testing.T) {
	store := newMemStore()
	views := fakeViews{}
	h := &CommentController{Comments: store, Views: views}
	user := primitive.NewObjectID()
	video := primitive.NewObjectID()
	tweet := primitive.NewObjectID()
	store.videos[video] = &models.Video{ID: video}
	store.tweets[tweet] = &models.Tweet{ID: tweet}

	r := newRouter(user)
	r.POST("/comments/video/:videoId", h.AddComment())
	r.POST("/comments/tweet/:tweetId", h.AddComment())
	r.GET("/comments/video/:videoId", h.GetComments())

	rec, env := serveJSON(t, r, http.MethodPost, "/comments/video/"+video.Hex(), map[string]string{"content": "  nice  "})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	c := decode[models.Comment](t, env.Data)
	assert.Equal(t, "nice", c.Content)
	require.NotNil(t, c.Video)
	assert.Equal(t, video, *c.Video)
	assert.Nil(t, c.Tweet)

	rec, env = serveJSON(t, r, http.MethodPost, "/comments/tweet/"+tweet.Hex(), map[string]string{"content": "agreed"})
	require.Equal(t, http.StatusCreated, rec.Code)
	c = decode[models.Comment](t, env.Data)
	require.NotNil(t, c.Tweet)
	assert.Nil(t, c.Video)

	rec, _ = serveJSON(t, r, http.MethodPost, "/comments/video/"+video.Hex(), map[string]string{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = serveJSON(t, r, http.MethodPost, "/comments/video/"+primitive.NewObjectID().Hex(), map[string]string{"content": "hi"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = serve(t, r, http.MethodGet, "/comments/video/"+video.Hex()+"?limit=5", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, bson.D{{Key: "video", Value: video}}, views[models.CommentsCollection].filters[0])
}

func TestCommentOwnership(t *testing.T) {
	store := newMemStore()
	h := &CommentController{Comments: store, Views: fakeViews{}}
	owner := primitive.NewObjectID()
	video := primitive.NewObjectID()
	comment, err := store.CreateComment(context.Background(), models.Parent{Kind: models.ParentVideo, ID: video}, owner, "first")
	require.NoError(t, err)

	stranger := newRouter(primitive.NewObjectID())
	stranger.PATCH("/comments/:commentId", h.UpdateComment())
	stranger.DELETE("/comments/:commentId", h.DeleteComment())

	rec, _ := serveJSON(t, stranger, http.MethodPatch, "/comments/"+comment.ID.Hex(), map[string]string{"content": "hijack"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec, _ = serve(t, stranger, http.MethodDelete, "/comments/"+comment.ID.Hex(), nil, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "first", store.comments[comment.ID].Content)

	r := newRouter(owner)
	r.PATCH("/comments/:commentId", h.UpdateComment())
	r.DELETE("/comments/:commentId", h.DeleteComment())

	rec, env := serveJSON(t, r, http.MethodPatch, "/comments/"+comment.ID.Hex(), map[string]string{"content": "edited"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "edited", decode[models.Comment](t, env.Data).Content)

	rec, _ = serve(t, r, http.MethodDelete, "/comments/"+comment.ID.Hex(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.comments)
}

func TestTweetLifecycle(t *testing.T) {
	store := newMemStore()
	assets := &fakeAssets{}
	h := &TweetController{Tweets: store, Views: fakeViews{}, Assets: assets, Uploads: spooler(t)}
	owner := primitive.NewObjectID()

	r := newRouter(owner)
	r.POST("/tweets", h.CreateTweet())
	r.PATCH("/tweets/:tweetId", h.UpdateTweet())
	r.DELETE("/tweets/:tweetId", h.DeleteTweet())

	rec, _ := serveJSON(t, r, http.MethodPost, "/tweets", map[string]string{"content": "hi"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body, ct := multipartBody(t, map[string]string{"content": "hello world"}, map[string]string{"image": "png"})
	rec, env := serve(t, r, http.MethodPost, "/tweets", body, ct)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	tweet := decode[models.Tweet](t, env.Data)
	require.NotNil(t, tweet.Image)
	assert.Equal(t, "tweets/1", tweet.Image.PublicID)

	rec, env = serveJSON(t, r, http.MethodPatch, "/tweets/"+tweet.ID.Hex(), map[string]string{"content": "edited tweet"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "edited tweet", decode[models.Tweet](t, env.Data).Content)

	stranger := newRouter(primitive.NewObjectID())
	stranger.DELETE("/tweets/:tweetId", h.DeleteTweet())
	rec, _ = serve(t, stranger, http.MethodDelete, "/tweets/"+tweet.ID.Hex(), nil, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, assets.destroyed)

	rec, _ = serve(t, r, http.MethodDelete, "/tweets/"+tweet.ID.Hex(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.tweets)
	require.Len(t, assets.destroyed, 1)
	assert.Equal(t, "tweets/1", assets.destroyed[0].PublicID)
}

func TestCreateTweetStoreFailureRemovesImage(t *testing.T) {
	store := newMemStore()
	store.createErr = errors.New("write failed")
	assets := &fakeAssets{}
	h := &TweetController{Tweets: store, Views: fakeViews{}, Assets: assets, Uploads: spooler(t)}
	r := newRouter(primitive.NewObjectID())
	r.POST("/tweets", h.CreateTweet())

	body, ct := multipartBody(t, map[string]string{"content": "hello world"}, map[string]string{"image": "png"})
	rec, env := serve(t, r, http.MethodPost, "/tweets", body, ct)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Something went wrong", env.Message)
	assert.Len(t, assets.destroyed, 1)
}

func TestUserTweetsAnonymousIsNotLiked(t *testing.T) {
	views := fakeViews{}
	src := &fakeSource{total: 1, rows: []interface{}{
		bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "content", Value: "hey"}, {Key: "isLiked", Value: false}},
	}}
	views[models.TweetsCollection] = src
	h := &TweetController{Tweets: newMemStore(), Views: views}
	owner := primitive.NewObjectID()

	r := newRouter(primitive.NilObjectID)
	r.GET("/tweets/user/:userId", h.GetUserTweets())
	rec, env := serve(t, r, http.MethodGet, "/tweets/user/"+owner.Hex(), nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[composer.Envelope[models.TweetView]](t, env.Data)
	require.Len(t, page.Docs, 1)
	assert.False(t, page.Docs[0].IsLiked)

	var derived bson.D
	for _, s := range src.pipelines[0] {
		if s[0].Key == "$addFields" {
			derived = s[0].Value.(bson.D)
		}
	}
	found := false
	for _, f := range derived {
		if f.Key == "isLiked" {
			found = true
			assert.Equal(t, bson.D{{Key: "$literal", Value: false}}, f.Value)
		}
	}
	assert.True(t, found)
}

func TestToggleSubscription(t *testing.T) {
	store := newMemStore()
	h := &SubscriptionController{Subscriptions: store, Views: fakeViews{}}
	me := primitive.NewObjectID()
	channel := primitive.NewObjectID()
	store.users[channel] = &models.User{ID: channel, Username: "chan"}

	r := newRouter(me)
	r.POST("/subscriptions/c/:channelId", h.ToggleSubscription())

	rec, env := serve(t, r, http.MethodPost, "/subscriptions/c/"+channel.Hex(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"subscribed":true}`, string(env.Data))

	_, env = serve(t, r, http.MethodPost, "/subscriptions/c/"+channel.Hex(), nil, "")
	assert.JSONEq(t, `{"subscribed":false}`, string(env.Data))
	assert.Empty(t, store.subs)

	rec, _ = serve(t, r, http.MethodPost, "/subscriptions/c/"+me.Hex(), nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = serve(t, r, http.MethodPost, "/subscriptions/c/"+primitive.NewObjectID().Hex(), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "channel not found", env.Message)
}

func TestSubscriptionListings(t *testing.T) {
	views := fakeViews{}
	src := &fakeSource{total: 1, rows: []interface{}{
		bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "username", Value: "fan"}},
	}}
	views[models.SubscriptionsCollection] = src
	h := &SubscriptionController{Subscriptions: newMemStore(), Views: views}
	channel := primitive.NewObjectID()

	r := newRouter(primitive.NewObjectID())
	r.GET("/subscriptions/c/:channelId/subscribers", h.GetChannelSubscribers())
	r.GET("/subscriptions/u/:subscriberId/channels", h.GetSubscribedChannels())

	rec, env := serve(t, r, http.MethodGet, "/subscriptions/c/"+channel.Hex()+"/subscribers", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[composer.Envelope[models.UserCard]](t, env.Data)
	require.Len(t, page.Docs, 1)
	assert.Equal(t, "fan", page.Docs[0].Username)
	assert.Equal(t, bson.D{{Key: "channel", Value: channel}}, src.filters[0])

	rec, _ = serve(t, r, http.MethodGet, "/subscriptions/u/bad/channels", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlaylistLifecycle(t *testing.T) {
	store := newMemStore()
	h := &PlaylistController{Playlists: store, Views: fakeViews{}}
	owner := primitive.NewObjectID()
	video := primitive.NewObjectID()
	store.videos[video] = &models.Video{ID: video}

	r := newRouter(owner)
	r.POST("/playlists", h.CreatePlaylist())
	r.PATCH("/playlists/:playlistId", h.UpdatePlaylist())
	r.DELETE("/playlists/:playlistId", h.DeletePlaylist())
	r.PATCH("/playlists/add/:videoId/:playlistId", h.AddVideoToPlaylist())
	r.PATCH("/playlists/remove/:videoId/:playlistId", h.RemoveVideoFromPlaylist())

	rec, env := serveJSON(t, r, http.MethodPost, "/playlists", map[string]string{"name": "mix", "description": "road"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	pl := decode[models.Playlist](t, env.Data)
	assert.Equal(t, "mix", pl.Name)

	add := "/playlists/add/" + video.Hex() + "/" + pl.ID.Hex()
	for i := 0; i < 2; i++ {
		rec, env = serve(t, r, http.MethodPatch, add, nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, []primitive.ObjectID{video}, decode[models.Playlist](t, env.Data).Videos)

	rec, _ = serve(t, r, http.MethodPatch, "/playlists/add/"+primitive.NewObjectID().Hex()+"/"+pl.ID.Hex(), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	stranger := newRouter(primitive.NewObjectID())
	stranger.PATCH("/playlists/add/:videoId/:playlistId", h.AddVideoToPlaylist())
	rec, _ = serve(t, stranger, http.MethodPatch, add, nil, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = serve(t, r, http.MethodPatch, "/playlists/remove/"+video.Hex()+"/"+pl.ID.Hex(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[models.Playlist](t, env.Data).Videos)

	rec, _ = serve(t, r, http.MethodPatch, "/playlists/remove/"+video.Hex()+"/"+pl.ID.Hex(), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = serveJSON(t, r, http.MethodPatch, "/playlists/"+pl.ID.Hex(), map[string]string{"name": "renamed"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "renamed", decode[models.Playlist](t, env.Data).Name)

	rec, _ = serve(t, r, http.MethodDelete, "/playlists/"+pl.ID.Hex(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.playlists)
}

func TestPlaylistDetail(t *testing.T) {
	views := fakeViews{}
	h := &PlaylistController{Playlists: newMemStore(), Views: views}
	r := newRouter(primitive.NewObjectID())
	r.GET("/playlists/:playlistId", h.GetPlaylistByID())

	rec, env := serve(t, r, http.MethodGet, "/playlists/"+primitive.NewObjectID().Hex(), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "playlist not found", env.Message)

	id := primitive.NewObjectID()
	views[models.PlaylistsCollection].rows = []interface{}{
		bson.D{{Key: "_id", Value: id}, {Key: "name", Value: "mix"}, {Key: "videosCount", Value: 2}},
	}
	rec, env = serve(t, r, http.MethodGet, "/playlists/"+id.Hex(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	pl := decode[models.PlaylistView](t, env.Data)
	assert.Equal(t, "mix", pl.Name)
	assert.EqualValues(t, 2, pl.VideosCount)
}

type failingPinger struct{ err error }

func (p failingPinger) Ping(context.Context) error { return p.err }

func TestHealthCheck(t *testing.T) {
	r := newRouter(primitive.NilObjectID)
	r.GET("/ok", (&HealthController{DB: newMemStore()}).HealthCheck())
	r.GET("/down", (&HealthController{DB: failingPinger{errors.New("no primary")}}).HealthCheck())

	rec, env := serve(t, r, http.MethodGet, "/ok", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, string(env.Data))

	rec, env = serve(t, r, http.MethodGet, "/down", nil, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, env.Message, "no primary")
}
