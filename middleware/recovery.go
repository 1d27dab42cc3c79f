package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/amanjaiswal-07/youtube-backend/helpers"
)

// Recovery turns a panic into the generic Internal error envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		Logger(c).WithField("panic", rec).Error("panic recovered")
		helpers.RespondError(c, helpers.Internal(fmt.Errorf("panic: %v", rec)))
	})
}
