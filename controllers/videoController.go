package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amanjaiswal-07/youtube-backend/composer"
	"github.com/amanjaiswal-07/youtube-backend/helpers"
	"github.com/amanjaiswal-07/youtube-backend/middleware"
	"github.com/amanjaiswal-07/youtube-backend/models"
)

const (
	videoFolder     = "videos"
	thumbnailFolder = "thumbnails"
	viewTimeout     = 5 * time.Second
)

type VideoController struct {
	Videos  VideoStore
	Views   Sources
	Assets  helpers.AssetHost
	Uploads Uploader

	// Go runs side effects that must not delay the response. nil means a
	// new goroutine.
	Go func(func())
}

type publishVideoRequest struct {
	Title       string  `form:"title" json:"title" validate:"required,min=3,max=200"`
	Description string  `form:"description" json:"description" validate:"required,min=3,max=5000"`
	Duration    float64 `form:"duration" json:"duration" validate:"gt=0"`
}

type updateVideoRequest struct {
	Title       string `form:"title" json:"title" validate:"omitempty,min=3,max=200"`
	Description string `form:"description" json:"description" validate:"omitempty,min=3,max=5000"`
}

func (h *VideoController) background(fn func()) {
	if h.Go != nil {
		h.Go(fn)
		return
	}
	go fn()
}

// -------------------- LIST --------------------
func (h *VideoController) GetAllVideos() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		page, err := composer.ParsePage(c.Query("page"), c.Query("limit"))
		if err != nil {
			fail(c, err)
			return
		}
		sort, err := composer.VideoSortable.Sort(c.Query("sortBy"), c.Query("sortType"))
		if err != nil {
			fail(c, err)
			return
		}

		ownerID := strings.TrimSpace(c.Query("userId"))
		view, err := composer.VideoListing(composer.Filter{
			Query:     c.Query("query"),
			OwnerID:   ownerID,
			Published: composer.VisibleTo(ownerID, middleware.Actor(c)),
		}, sort)
		if err != nil {
			fail(c, err)
			return
		}

		videos, err := composer.Paginate[models.VideoCard](ctx, h.Views.Source(models.VideosCollection), view, page)
		if err != nil {
			fail(c, err)
			return
		}
		helpers.Respond(c, http.StatusOK, videos, "Videos fetched successfully")
	}
}

// -------------------- PUBLISH --------------------
func (h *VideoController) PublishVideo() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		owner, err := currentUser(c)
		if err != nil {
			fail(c, err)
			return
		}
		var req publishVideoRequest
		if err := bind(c, &req); err != nil {
			fail(c, err)
			return
		}

		videoFile, err := h.Uploads.Require(c, "videoFile")
		if err != nil {
			fail(c, err)
			return
		}
		defer videoFile.Remove()
		thumbFile, err := h.Uploads.Require(c, "thumbnail")
		if err != nil {
			fail(c, err)
			return
		}
		defer thumbFile.Remove()

		videoAsset, err := upload(ctx, h.Assets, videoFile, videoFolder, models.ResourceVideo)
		if err != nil {
			fail(c, err)
			return
		}
		thumbAsset, err := upload(ctx, h.Assets, thumbFile, thumbnailFolder, models.ResourceImage)
		if err != nil {
			destroy(ctx, c, h.Assets, videoAsset)
			fail(c, err)
			return
		}

		video := &models.Video{
			VideoFile:   videoAsset,
			Thumbnail:   thumbAsset,
			Title:       strings.TrimSpace(req.Title),
			Description: strings.TrimSpace(req.Description),
			Duration:    req.Duration,
			IsPublished: true,
			Owner:       owner,
		}
		if err := h.Videos.CreateVideo(ctx, video); err != nil {
			destroy(ctx, c, h.Assets, videoAsset, thumbAsset)
			fail(c, err)
			return
		}

		helpers.Respond(c, http.StatusCreated, video, "Video published successfully")
	}
}

// -------------------- DETAIL --------------------
func (h *VideoController) GetVideoByID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		videoID, err := composer.ParseID("videoId", c.Param("videoId"))
		if err != nil {
			fail(c, err)
			return
		}
		actor := middleware.Actor(c)

		video, err := composer.One[models.VideoDetail](ctx,
			h.Views.Source(models.VideosCollection),
			composer.VideoDetail(videoID, actor))
		if err != nil {
			fail(c, helpers.FromStoreError(err, "video"))
			return
		}

		h.recordView(c, videoID, actor)
		helpers.Respond(c, http.StatusOK, video, "Video details fetched successfully")
	}
}

// recordView bumps the view counter and the viewer's watch history without
// holding up the response.
func (h *VideoController) recordView(c *gin.Context, videoID, viewer primitive.ObjectID) {
	log := middleware.Logger(c).WithField("video_id", videoID.Hex())
	h.background(func() {
		ctx, cancel := context.WithTimeout(context.Background(), viewTimeout)
		defer cancel()

		if err := h.Videos.IncrementViews(ctx, videoID); err != nil {
			log.WithError(err).Warn("failed to record view")
		}
		if viewer.IsZero() {
			return
		}
		if err := h.Videos.AddToWatchHistory(ctx, viewer, videoID); err != nil {
			log.WithError(err).Warn("failed to update watch history")
		}
	})
}

// ownedVideo loads the video named by the videoId param and checks that the
// caller owns it.
func (h *VideoController) ownedVideo(ctx context.Context, c *gin.Context) (*models.Video, error) {
	videoID, err := composer.ParseID("videoId", c.Param("videoId"))
	if err != nil {
		return nil, err
	}
	video, err := h.Videos.VideoByID(ctx, videoID)
	if err != nil {
		return nil, helpers.FromStoreError(err, "video")
	}
	if err := requireOwner(c, video.Owner, "video"); err != nil {
		return nil, err
	}
	return video, nil
}

// -------------------- UPDATE --------------------
func (h *VideoController) UpdateVideo() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		video, err := h.ownedVideo(ctx, c)
		if err != nil {
			fail(c, err)
			return
		}
		var req updateVideoRequest
		if err := bind(c, &req); err != nil {
			fail(c, err)
			return
		}

		set := bson.D{}
		if t := strings.TrimSpace(req.Title); t != "" {
			set = append(set, bson.E{Key: "title", Value: t})
		}
		if d := strings.TrimSpace(req.Description); d != "" {
			set = append(set, bson.E{Key: "description", Value: d})
		}

		thumbFile, err := h.Uploads.Spool(c, "thumbnail")
		if err != nil {
			fail(c, err)
			return
		}
		defer thumbFile.Remove()

		var newThumb models.Asset
		if thumbFile != nil {
			newThumb, err = upload(ctx, h.Assets, thumbFile, thumbnailFolder, models.ResourceImage)
			if err != nil {
				fail(c, err)
				return
			}
			set = append(set, bson.E{Key: "thumbnail", Value: newThumb})
		}
		if len(set) == 0 {
			fail(c, helpers.InvalidArgument("title, description or thumbnail is required"))
			return
		}

		updated, err := h.Videos.UpdateVideo(ctx, video.ID, set)
		if err != nil {
			destroy(ctx, c, h.Assets, newThumb)
			fail(c, helpers.FromStoreError(err, "video"))
			return
		}
		if thumbFile != nil {
			destroy(ctx, c, h.Assets, video.Thumbnail)
		}

		helpers.Respond(c, http.StatusOK, updated, "Video updated successfully")
	}
}

// -------------------- DELETE --------------------
func (h *VideoController) DeleteVideo() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		video, err := h.ownedVideo(ctx, c)
		if err != nil {
			fail(c, err)
			return
		}
		if err := h.Videos.DeleteVideo(ctx, video.ID); err != nil {
			fail(c, helpers.FromStoreError(err, "video"))
			return
		}
		destroy(ctx, c, h.Assets, video.Assets()...)

		helpers.Respond(c, http.StatusOK, gin.H{}, "Video deleted successfully")
	}
}

// -------------------- TOGGLE PUBLISH --------------------
func (h *VideoController) TogglePublishStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		video, err := h.ownedVideo(ctx, c)
		if err != nil {
			fail(c, err)
			return
		}
		updated, err := h.Videos.UpdateVideo(ctx, video.ID, bson.D{{Key: "isPublished", Value: !video.IsPublished}})
		if err != nil {
			fail(c, helpers.FromStoreError(err, "video"))
			return
		}

		helpers.Respond(c, http.StatusOK, gin.H{"isPublished": updated.IsPublished}, "Video publish status toggled")
	}
}
