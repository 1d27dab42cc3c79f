package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amanjaiswal-07/youtube-backend/composer"
	"github.com/amanjaiswal-07/youtube-backend/helpers"
	"github.com/amanjaiswal-07/youtube-backend/models"
)

type PlaylistController struct {
	Playlists PlaylistStore
	Views     Sources
}

type createPlaylistRequest struct {
	Name        string `json:"name" form:"name" validate:"required,max=100"`
	Description string `json:"description" form:"description" validate:"max=500"`
}

type updatePlaylistRequest struct {
	Name        string `json:"name" form:"name" validate:"omitempty,max=100"`
	Description string `json:"description" form:"description" validate:"omitempty,max=500"`
}

// -------------------- CREATE PLAYLIST --------------------
func (h *PlaylistController) CreatePlaylist() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		owner, err := currentUser(c)
		if err != nil {
			fail(c, err)
			return
		}
		var req createPlaylistRequest
		if err := bind(c, &req); err != nil {
			fail(c, err)
			return
		}
		name := strings.TrimSpace(req.Name)
		if name == "" {
			fail(c, helpers.InvalidArgument("Playlist name is required"))
			return
		}

		playlist := &models.Playlist{
			Name:        name,
			Description: strings.TrimSpace(req.Description),
			Owner:       owner,
		}
		if err := h.Playlists.CreatePlaylist(ctx, playlist); err != nil {
			fail(c, err)
			return
		}
		helpers.Respond(c, http.StatusCreated, playlist, "Playlist created successfully")
	}
}

// -------------------- GET USER'S PLAYLISTS --------------------
func (h *PlaylistController) GetUserPlaylists() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		ownerID, err := composer.ParseID("userId", c.Param("userId"))
		if err != nil {
			fail(c, err)
			return
		}
		page, err := composer.ParsePage(c.Query("page"), c.Query("limit"))
		if err != nil {
			fail(c, err)
			return
		}

		playlists, err := composer.Paginate[models.PlaylistView](ctx,
			h.Views.Source(models.PlaylistsCollection), composer.UserPlaylists(ownerID), page)
		if err != nil {
			fail(c, err)
			return
		}
		helpers.Respond(c, http.StatusOK, playlists, "Playlists fetched successfully")
	}
}

// -------------------- GET PLAYLIST BY ID --------------------
func (h *PlaylistController) GetPlaylistByID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		playlistID, err := composer.ParseID("playlistId", c.Param("playlistId"))
		if err != nil {
			fail(c, err)
			return
		}

		playlist, err := composer.One[models.PlaylistView](ctx,
			h.Views.Source(models.PlaylistsCollection), composer.PlaylistDetail(playlistID))
		if err != nil {
			fail(c, helpers.FromStoreError(err, "playlist"))
			return
		}
		helpers.Respond(c, http.StatusOK, playlist, "Playlist fetched successfully")
	}
}

// ownedPlaylist loads the playlist named by the playlistId param and checks
// that the caller owns it.
func (h *PlaylistController) ownedPlaylist(ctx context.Context, c *gin.Context) (*models.Playlist, error) {
	playlistID, err := composer.ParseID("playlistId", c.Param("playlistId"))
	if err != nil {
		return nil, err
	}
	playlist, err := h.Playlists.PlaylistByID(ctx, playlistID)
	if err != nil {
		return nil, helpers.FromStoreError(err, "playlist")
	}
	if err := requireOwner(c, playlist.Owner, "playlist"); err != nil {
		return nil, err
	}
	return playlist, nil
}

// -------------------- UPDATE PLAYLIST --------------------
func (h *PlaylistController) UpdatePlaylist() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		playlist, err := h.ownedPlaylist(ctx, c)
		if err != nil {
			fail(c, err)
			return
		}
		var req updatePlaylistRequest
		if err := bind(c, &req); err != nil {
			fail(c, err)
			return
		}

		set := bson.D{}
		if name := strings.TrimSpace(req.Name); name != "" {
			set = append(set, bson.E{Key: "name", Value: name})
		}
		if desc := strings.TrimSpace(req.Description); desc != "" {
			set = append(set, bson.E{Key: "description", Value: desc})
		}
		if len(set) == 0 {
			fail(c, helpers.InvalidArgument("No valid fields to update"))
			return
		}

		updated, err := h.Playlists.UpdatePlaylist(ctx, playlist.ID, set)
		if err != nil {
			fail(c, helpers.FromStoreError(err, "playlist"))
			return
		}
		helpers.Respond(c, http.StatusOK, updated, "Playlist updated successfully")
	}
}

// -------------------- DELETE PLAYLIST --------------------
func (h *PlaylistController) DeletePlaylist() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		playlist, err := h.ownedPlaylist(ctx, c)
		if err != nil {
			fail(c, err)
			return
		}
		if err := h.Playlists.DeletePlaylist(ctx, playlist.ID); err != nil {
			fail(c, helpers.FromStoreError(err, "playlist"))
			return
		}
		helpers.Respond(c, http.StatusOK, gin.H{}, "Playlist deleted successfully")
	}
}

// -------------------- ADD VIDEO TO PLAYLIST --------------------
func (h *PlaylistController) AddVideoToPlaylist() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		playlist, err := h.ownedPlaylist(ctx, c)
		if err != nil {
			fail(c, err)
			return
		}
		videoID, err := composer.ParseID("videoId", c.Param("videoId"))
		if err != nil {
			fail(c, err)
			return
		}
		if _, err := h.Playlists.VideoByID(ctx, videoID); err != nil {
			fail(c, helpers.FromStoreError(err, "video"))
			return
		}

		updated, err := h.Playlists.AddVideoToPlaylist(ctx, playlist.ID, videoID)
		if err != nil {
			fail(c, helpers.FromStoreError(err, "playlist"))
			return
		}
		helpers.Respond(c, http.StatusOK, updated, "Video added to playlist successfully")
	}
}

// -------------------- REMOVE VIDEO FROM PLAYLIST --------------------
func (h *PlaylistController) RemoveVideoFromPlaylist() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		playlist, err := h.ownedPlaylist(ctx, c)
		if err != nil {
			fail(c, err)
			return
		}
		videoID, err := composer.ParseID("videoId", c.Param("videoId"))
		if err != nil {
			fail(c, err)
			return
		}
		if !containsID(playlist.Videos, videoID) {
			fail(c, helpers.NotFound("Video not found in playlist"))
			return
		}

		updated, err := h.Playlists.RemoveVideoFromPlaylist(ctx, playlist.ID, videoID)
		if err != nil {
			fail(c, helpers.FromStoreError(err, "playlist"))
			return
		}
		helpers.Respond(c, http.StatusOK, updated, "Video removed from playlist successfully")
	}
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
