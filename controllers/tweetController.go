package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/amanjaiswal-07/youtube-backend/composer"
	"github.com/amanjaiswal-07/youtube-backend/helpers"
	"github.com/amanjaiswal-07/youtube-backend/middleware"
	"github.com/amanjaiswal-07/youtube-backend/models"
)

const tweetImageFolder = "tweets"

type TweetController struct {
	Tweets  TweetStore
	Views   Sources
	Assets  helpers.AssetHost
	Uploads Uploader
}

type tweetRequest struct {
	Content string `json:"content" form:"content" validate:"required,min=3,max=280"`
}

func (h *TweetController) CreateTweet() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		owner, err := currentUser(c)
		if err != nil {
			fail(c, err)
			return
		}
		var req tweetRequest
		if err := bind(c, &req); err != nil {
			fail(c, err)
			return
		}
		content := strings.TrimSpace(req.Content)
		if len(content) < 3 {
			fail(c, helpers.InvalidArgument("content must be at least 3 characters"))
			return
		}

		imageFile, err := h.Uploads.Spool(c, "image")
		if err != nil {
			fail(c, err)
			return
		}
		defer imageFile.Remove()

		tweet := &models.Tweet{Content: content, Owner: owner}
		if imageFile != nil {
			image, err := upload(ctx, h.Assets, imageFile, tweetImageFolder, models.ResourceImage)
			if err != nil {
				fail(c, err)
				return
			}
			tweet.Image = &image
		}

		if err := h.Tweets.CreateTweet(ctx, tweet); err != nil {
			if tweet.Image != nil {
				destroy(ctx, c, h.Assets, *tweet.Image)
			}
			fail(c, err)
			return
		}
		helpers.Respond(c, http.StatusCreated, tweet, "Tweet created successfully")
	}
}

func (h *TweetController) GetUserTweets() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		ownerID, err := composer.ParseID("userId", c.Param("userId"))
		if err != nil {
			fail(c, err)
			return
		}
		page, err := composer.ParsePage(c.Query("page"), c.Query("limit"))
		if err != nil {
			fail(c, err)
			return
		}

		tweets, err := composer.Paginate[models.TweetView](ctx,
			h.Views.Source(models.TweetsCollection),
			composer.UserTweets(ownerID, middleware.Actor(c)), page)
		if err != nil {
			fail(c, err)
			return
		}
		helpers.Respond(c, http.StatusOK, tweets, "Tweets fetched successfully")
	}
}

func (h *TweetController) ownedTweet(ctx context.Context, c *gin.Context) (*models.Tweet, error) {
	id, err := composer.ParseID("tweetId", c.Param("tweetId"))
	if err != nil {
		return nil, err
	}
	tweet, err := h.Tweets.TweetByID(ctx, id)
	if err != nil {
		return nil, helpers.FromStoreError(err, "tweet")
	}
	if err := requireOwner(c, tweet.Owner, "tweet"); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (h *TweetController) UpdateTweet() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		tweet, err := h.ownedTweet(ctx, c)
		if err != nil {
			fail(c, err)
			return
		}
		var req tweetRequest
		if err := bind(c, &req); err != nil {
			fail(c, err)
			return
		}
		content := strings.TrimSpace(req.Content)
		if len(content) < 3 {
			fail(c, helpers.InvalidArgument("content must be at least 3 characters"))
			return
		}

		updated, err := h.Tweets.UpdateTweet(ctx, tweet.ID, bson.D{{Key: "content", Value: content}})
		if err != nil {
			fail(c, helpers.FromStoreError(err, "tweet"))
			return
		}
		helpers.Respond(c, http.StatusOK, updated, "Tweet updated successfully")
	}
}

func (h *TweetController) DeleteTweet() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		tweet, err := h.ownedTweet(ctx, c)
		if err != nil {
			fail(c, err)
			return
		}
		if err := h.Tweets.DeleteTweet(ctx, tweet.ID); err != nil {
			fail(c, helpers.FromStoreError(err, "tweet"))
			return
		}
		if tweet.Image != nil {
			destroy(ctx, c, h.Assets, *tweet.Image)
		}
		helpers.Respond(c, http.StatusOK, gin.H{}, "Tweet deleted successfully")
	}
}
