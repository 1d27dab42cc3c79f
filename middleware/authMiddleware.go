package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amanjaiswal-07/youtube-backend/helpers"
)

const (
	userIDKey = "user_id"
	claimsKey = "claims"

	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// AccessTokenValidator checks an access token and returns its claims.
type AccessTokenValidator interface {
	ValidateAccessToken(signed string) (*helpers.AccessClaims, error)
}

// bearerToken reads the access token from the Authorization header, falling
// back to the access token cookie.
func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie
	}
	return ""
}

func authenticate(c *gin.Context, tokens AccessTokenValidator) error {
	token := bearerToken(c)
	if token == "" {
		return helpers.Unauthorized("Unauthorized request")
	}
	claims, err := tokens.ValidateAccessToken(token)
	if err != nil {
		return helpers.Unauthorized("Invalid access token").Wrap(err)
	}
	id, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return helpers.Unauthorized("Invalid access token").Wrap(err)
	}
	c.Set(userIDKey, id)
	c.Set(claimsKey, claims)
	return nil
}

// Authentication rejects requests without a valid access token.
func Authentication(tokens AccessTokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authenticate(c, tokens); err != nil {
			apiErr, _ := helpers.AsAPIError(err)
			Logger(c).WithError(err).Debug("authentication failed")
			helpers.RespondError(c, apiErr)
			return
		}
		c.Next()
	}
}

// OptionalAuthentication identifies the caller when a valid token is present
// and lets the request through as anonymous otherwise.
func OptionalAuthentication(tokens AccessTokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if bearerToken(c) != "" {
			_ = authenticate(c, tokens)
		}
		c.Next()
	}
}

// UserID returns the authenticated user's id.
func UserID(c *gin.Context) (primitive.ObjectID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, ok := v.(primitive.ObjectID)
	return id, ok
}

// Actor is UserID with the zero id standing for an anonymous caller.
func Actor(c *gin.Context) primitive.ObjectID {
	id, _ := UserID(c)
	return id
}

// SetUserID marks the request as authenticated as id.
func SetUserID(c *gin.Context, id primitive.ObjectID) {
	c.Set(userIDKey, id)
}
