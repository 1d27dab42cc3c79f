package routes

import (
	"github.com/gin-gonic/gin"
)

func LikeRoute(likes *gin.RouterGroup, h Handlers) {
	likes.Use(h.Auth)
	{
		likes.POST("/toggle/v/:videoId", h.Likes.ToggleVideoLike())
		likes.POST("/toggle/c/:commentId", h.Likes.ToggleCommentLike())
		likes.POST("/toggle/t/:tweetId", h.Likes.ToggleTweetLike())
		likes.GET("/videos", h.Likes.GetLikedVideos())
	}
}
