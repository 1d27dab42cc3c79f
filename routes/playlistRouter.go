package routes

import (
	"github.com/gin-gonic/gin"
)

func PlaylistRoute(playlists *gin.RouterGroup, h Handlers) {
	// 🔐 Protected
	playlists.Use(h.Auth)
	{
		playlists.POST("", h.Playlists.CreatePlaylist())
		playlists.GET("/user/:userId", h.Playlists.GetUserPlaylists())
		playlists.GET("/:playlistId", h.Playlists.GetPlaylistByID())
		playlists.PATCH("/:playlistId", h.Playlists.UpdatePlaylist())
		playlists.DELETE("/:playlistId", h.Playlists.DeletePlaylist())
		playlists.PATCH("/add/:videoId/:playlistId", h.Playlists.AddVideoToPlaylist())
		playlists.PATCH("/remove/:videoId/:playlistId", h.Playlists.RemoveVideoFromPlaylist())
	}
}
