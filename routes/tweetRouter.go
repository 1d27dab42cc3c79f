package routes

import (
	"github.com/gin-gonic/gin"
)

func TweetRoute(tweets *gin.RouterGroup, h Handlers) {
	tweets.Use(h.Auth)
	{
		tweets.POST("", h.Tweets.CreateTweet())
		tweets.GET("/user/:userId", h.Tweets.GetUserTweets())
		tweets.PATCH("/:tweetId", h.Tweets.UpdateTweet())
		tweets.DELETE("/:tweetId", h.Tweets.DeleteTweet())
	}
}
