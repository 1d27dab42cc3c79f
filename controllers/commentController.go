package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/amanjaiswal-07/youtube-backend/composer"
	"github.com/amanjaiswal-07/youtube-backend/helpers"
	"github.com/amanjaiswal-07/youtube-backend/middleware"
	"github.com/amanjaiswal-07/youtube-backend/models"
)

type CommentController struct {
	Comments CommentStore
	Views    Sources
}

type commentRequest struct {
	Content string `json:"content" form:"content" validate:"required,max=1000"`
}

func (r commentRequest) content() (string, error) {
	content := strings.TrimSpace(r.Content)
	if content == "" {
		return "", helpers.InvalidArgument("content is required")
	}
	return content, nil
}

func commentParentRefs(c *gin.Context) models.ParentRefs {
	return models.ParentRefs{Video: c.Param("videoId"), Tweet: c.Param("tweetId")}
}

// existingParent resolves the parent named in the path and checks that it is
// still there.
func existingParent(ctx context.Context, store ParentChecker, refs models.ParentRefs, allowed ...models.ParentKind) (models.Parent, error) {
	parent, err := composer.ResolveParent(refs, allowed...)
	if err != nil {
		return models.Parent{}, err
	}
	ok, err := store.ParentExists(ctx, parent)
	if err != nil {
		return models.Parent{}, err
	}
	if !ok {
		return models.Parent{}, helpers.NotFound("%s not found", parent.Kind)
	}
	return parent, nil
}

func (h *CommentController) GetComments() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		page, err := composer.ParsePage(c.Query("page"), c.Query("limit"))
		if err != nil {
			fail(c, err)
			return
		}
		parent, err := existingParent(ctx, h.Comments, commentParentRefs(c), models.CommentParents...)
		if err != nil {
			fail(c, err)
			return
		}
		view, err := composer.CommentListing(parent, middleware.Actor(c))
		if err != nil {
			fail(c, err)
			return
		}

		comments, err := composer.Paginate[models.CommentView](ctx, h.Views.Source(models.CommentsCollection), view, page)
		if err != nil {
			fail(c, err)
			return
		}
		helpers.Respond(c, http.StatusOK, comments, "Comments fetched successfully")
	}
}

func (h *CommentController) AddComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		owner, err := currentUser(c)
		if err != nil {
			fail(c, err)
			return
		}
		var req commentRequest
		if err := bind(c, &req); err != nil {
			fail(c, err)
			return
		}
		content, err := req.content()
		if err != nil {
			fail(c, err)
			return
		}
		parent, err := existingParent(ctx, h.Comments, commentParentRefs(c), models.CommentParents...)
		if err != nil {
			fail(c, err)
			return
		}

		comment, err := h.Comments.CreateComment(ctx, parent, owner, content)
		if err != nil {
			fail(c, err)
			return
		}
		helpers.Respond(c, http.StatusCreated, comment, "Comment added successfully")
	}
}

func (h *CommentController) ownedComment(ctx context.Context, c *gin.Context) (*models.Comment, error) {
	id, err := composer.ParseID("commentId", c.Param("commentId"))
	if err != nil {
		return nil, err
	}
	comment, err := h.Comments.CommentByID(ctx, id)
	if err != nil {
		return nil, helpers.FromStoreError(err, "comment")
	}
	if err := requireOwner(c, comment.Owner, "comment"); err != nil {
		return nil, err
	}
	return comment, nil
}

func (h *CommentController) UpdateComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		comment, err := h.ownedComment(ctx, c)
		if err != nil {
			fail(c, err)
			return
		}
		var req commentRequest
		if err := bind(c, &req); err != nil {
			fail(c, err)
			return
		}
		content, err := req.content()
		if err != nil {
			fail(c, err)
			return
		}

		updated, err := h.Comments.UpdateComment(ctx, comment.ID, content)
		if err != nil {
			fail(c, helpers.FromStoreError(err, "comment"))
			return
		}
		helpers.Respond(c, http.StatusOK, updated, "Comment updated successfully")
	}
}

func (h *CommentController) DeleteComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		comment, err := h.ownedComment(ctx, c)
		if err != nil {
			fail(c, err)
			return
		}
		if err := h.Comments.DeleteComment(ctx, comment.ID); err != nil {
			fail(c, helpers.FromStoreError(err, "comment"))
			return
		}
		helpers.Respond(c, http.StatusOK, gin.H{}, "Comment deleted successfully")
	}
}
