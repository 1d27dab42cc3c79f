package routes

import (
	"github.com/gin-gonic/gin"
)

func SubscriptionRoute(subs *gin.RouterGroup, h Handlers) {
	subs.Use(h.Auth)
	{
		subs.POST("/c/:channelId", h.Subscriptions.ToggleSubscription())
		subs.GET("/c/:channelId/subscribers", h.Subscriptions.GetChannelSubscribers())
		subs.GET("/u/:subscriberId/channels", h.Subscriptions.GetSubscribedChannels())
	}
}
