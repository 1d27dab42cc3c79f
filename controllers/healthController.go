package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amanjaiswal-07/youtube-backend/helpers"
)

const pingTimeout = 3 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	DB Pinger
}

func (h *HealthController) HealthCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()

		if err := h.DB.Ping(ctx); err != nil {
			fail(c, helpers.Internal(err))
			return
		}
		helpers.Respond(c, http.StatusOK, gin.H{"status": "ok"}, "OK")
	}
}
