package routes

import (
	"github.com/gin-gonic/gin"
)

func VideoRoute(videos *gin.RouterGroup, h Handlers) {
	// PUBLIC ROUTES (optional auth so owners see their unpublished videos)
	videos.GET("", h.OptionalAuth, h.Videos.GetAllVideos())
	videos.GET("/:videoId", h.OptionalAuth, h.Videos.GetVideoByID())

	// PROTECTED ROUTES
	secured := videos.Group("")
	secured.Use(h.Auth)
	{
		secured.POST("", h.Videos.PublishVideo())
		secured.PATCH("/:videoId", h.Videos.UpdateVideo())
		secured.DELETE("/:videoId", h.Videos.DeleteVideo())
		secured.PATCH("/toggle/publish/:videoId", h.Videos.TogglePublishStatus())
	}
}
