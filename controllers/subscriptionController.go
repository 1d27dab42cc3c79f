package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amanjaiswal-07/youtube-backend/composer"
	"github.com/amanjaiswal-07/youtube-backend/helpers"
	"github.com/amanjaiswal-07/youtube-backend/models"
)

type SubscriptionController struct {
	Subscriptions SubscriptionStore
	Views         Sources
}

func (h *SubscriptionController) ToggleSubscription() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		subscriber, err := currentUser(c)
		if err != nil {
			fail(c, err)
			return
		}
		channel, err := composer.ParseID("channelId", c.Param("channelId"))
		if err != nil {
			fail(c, err)
			return
		}
		if channel == subscriber {
			fail(c, helpers.InvalidArgument("You cannot subscribe to your own channel"))
			return
		}
		if _, err := h.Subscriptions.UserByID(ctx, channel); err != nil {
			fail(c, helpers.FromStoreError(err, "channel"))
			return
		}

		subscribed, err := h.Subscriptions.ToggleSubscription(ctx, subscriber, channel)
		if err != nil {
			fail(c, err)
			return
		}
		msg := "Unsubscribed successfully"
		if subscribed {
			msg = "Subscribed successfully"
		}
		helpers.Respond(c, http.StatusOK, gin.H{"subscribed": subscribed}, msg)
	}
}

// listing serves a paginated list of user cards built by view from the id
// in param.
func (h *SubscriptionController) listing(param, message string, view func(primitive.ObjectID) composer.View) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		id, err := composer.ParseID(param, c.Param(param))
		if err != nil {
			fail(c, err)
			return
		}
		page, err := composer.ParsePage(c.Query("page"), c.Query("limit"))
		if err != nil {
			fail(c, err)
			return
		}

		users, err := composer.Paginate[models.UserCard](ctx,
			h.Views.Source(models.SubscriptionsCollection), view(id), page)
		if err != nil {
			fail(c, err)
			return
		}
		helpers.Respond(c, http.StatusOK, users, message)
	}
}

func (h *SubscriptionController) GetChannelSubscribers() gin.HandlerFunc {
	return h.listing("channelId", "Subscribers fetched successfully", composer.Subscribers)
}

func (h *SubscriptionController) GetSubscribedChannels() gin.HandlerFunc {
	return h.listing("subscriberId", "Subscribed channels fetched successfully", composer.SubscribedChannels)
}
