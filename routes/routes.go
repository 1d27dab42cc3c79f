package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/amanjaiswal-07/youtube-backend/controllers"
)

const APIPrefix = "/api/v1"

// Handlers is everything the router needs to serve the API.
type Handlers struct {
	Users         *controllers.UserController
	Videos        *controllers.VideoController
	Comments      *controllers.CommentController
	Likes         *controllers.LikeController
	Tweets        *controllers.TweetController
	Subscriptions *controllers.SubscriptionController
	Playlists     *controllers.PlaylistController
	Health        *controllers.HealthController

	// Auth rejects requests without a valid access token. OptionalAuth
	// identifies the caller when a token is present.
	Auth         gin.HandlerFunc
	OptionalAuth gin.HandlerFunc
}

// Register mounts every resource under APIPrefix.
func Register(router *gin.Engine, h Handlers) {
	api := router.Group(APIPrefix)

	api.GET("/healthcheck", h.Health.HealthCheck())

	AuthRoute(api.Group("/users"), h)
	UserRoute(api.Group("/users"), h)
	VideoRoute(api.Group("/videos"), h)
	CommentRoute(api.Group("/comments"), h)
	LikeRoute(api.Group("/likes"), h)
	TweetRoute(api.Group("/tweets"), h)
	SubscriptionRoute(api.Group("/subscriptions"), h)
	PlaylistRoute(api.Group("/playlists"), h)
}
