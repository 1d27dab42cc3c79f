package routes

import (
	"github.com/gin-gonic/gin"
)

func UserRoute(users *gin.RouterGroup, h Handlers) {
	users.GET("/channel/:username", h.OptionalAuth, h.Users.ChannelProfile())

	secured := users.Group("")
	secured.Use(h.Auth)
	{
		secured.GET("/current-user", h.Users.CurrentUser())
		secured.PATCH("/update-account-details", h.Users.UpdateAccountDetails())
		secured.PUT("/update-avatar", h.Users.UpdateAvatar())
		secured.PUT("/update-coverimage", h.Users.UpdateCoverImage())
		secured.GET("/watch-history", h.Users.WatchHistory())
		secured.DELETE("/watch-history", h.Users.ClearWatchHistory())
	}
}
