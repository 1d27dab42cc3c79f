package routes

import (
	"github.com/gin-gonic/gin"
)

func AuthRoute(users *gin.RouterGroup, h Handlers) {

	// 🌍 PUBLIC ROUTES
	users.POST("/register", h.Users.Register())
	users.POST("/login", h.Users.Login())
	users.POST("/refresh-token", h.Users.RefreshToken())

	// 🔐 PROTECTED ROUTES
	secured := users.Group("")
	secured.Use(h.Auth)
	{
		secured.POST("/logout", h.Users.Logout())
		secured.POST("/change-password", h.Users.ChangePassword())
	}
}
