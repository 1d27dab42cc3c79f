package routes

import (
	"github.com/gin-gonic/gin"
)

func CommentRoute(comments *gin.RouterGroup, h Handlers) {
	comments.Use(h.Auth)
	{
		comments.GET("/video/:videoId", h.Comments.GetComments())
		comments.POST("/video/:videoId", h.Comments.AddComment())
		comments.GET("/tweet/:tweetId", h.Comments.GetComments())
		comments.POST("/tweet/:tweetId", h.Comments.AddComment())
		comments.PATCH("/:commentId", h.Comments.UpdateComment())
		comments.DELETE("/:commentId", h.Comments.DeleteComment())
	}
}
