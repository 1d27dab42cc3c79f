package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amanjaiswal-07/youtube-backend/composer"
	"github.com/amanjaiswal-07/youtube-backend/helpers"
	"github.com/amanjaiswal-07/youtube-backend/models"
)

type LikeController struct {
	Likes LikeStore
	Views Sources
}

// toggle flips the caller's like on the entity named by param.
func (h *LikeController) toggle(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		userID, err := currentUser(c)
		if err != nil {
			fail(c, err)
			return
		}

		refs := models.ParentRefs{}
		switch param {
		case "videoId":
			refs.Video = c.Param(param)
		case "commentId":
			refs.Comment = c.Param(param)
		case "tweetId":
			refs.Tweet = c.Param(param)
		}
		parent, err := existingParent(ctx, h.Likes, refs, models.LikeParents...)
		if err != nil {
			fail(c, err)
			return
		}

		liked, err := h.Likes.ToggleLike(ctx, parent, userID)
		if err != nil {
			fail(c, err)
			return
		}
		msg := "Like removed"
		if liked {
			msg = "Liked successfully"
		}
		helpers.Respond(c, http.StatusOK, gin.H{"isLiked": liked}, msg)
	}
}

func (h *LikeController) ToggleVideoLike() gin.HandlerFunc   { return h.toggle("videoId") }
func (h *LikeController) ToggleCommentLike() gin.HandlerFunc { return h.toggle("commentId") }
func (h *LikeController) ToggleTweetLike() gin.HandlerFunc   { return h.toggle("tweetId") }

func (h *LikeController) GetLikedVideos() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		userID, err := currentUser(c)
		if err != nil {
			fail(c, err)
			return
		}
		page, err := composer.ParsePage(c.Query("page"), c.Query("limit"))
		if err != nil {
			fail(c, err)
			return
		}

		videos, err := composer.Paginate[models.VideoCard](ctx,
			h.Views.Source(models.LikesCollection), composer.LikedVideos(userID), page)
		if err != nil {
			fail(c, err)
			return
		}
		helpers.Respond(c, http.StatusOK, videos, "Liked videos fetched successfully")
	}
}
