package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/amanjaiswal-07/youtube-backend/composer"
	"github.com/amanjaiswal-07/youtube-backend/helpers"
	"github.com/amanjaiswal-07/youtube-backend/middleware"
	"github.com/amanjaiswal-07/youtube-backend/models"
)

const (
	avatarFolder = "avatars"
	coverFolder  = "covers"
)

type UserController struct {
	Users        UserStore
	Views        Sources
	Assets       helpers.AssetHost
	Uploads      Uploader
	Tokens       TokenIssuer
	CookieSecure bool
}

type registerRequest struct {
	Username string `form:"username" json:"username" validate:"required,min=3,max=30"`
	Email    string `form:"email" json:"email" validate:"required,email"`
	Fullname string `form:"fullname" json:"fullname" validate:"required,max=100"`
	Password string `form:"password" json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Username string `form:"username" json:"username"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password" validate:"required"`
}

type changePasswordRequest struct {
	OldPassword     string `json:"oldPassword" form:"oldPassword" validate:"required"`
	NewPassword     string `json:"newPassword" form:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

type updateAccountRequest struct {
	Fullname string `json:"fullname" form:"fullname" validate:"omitempty,max=100"`
	Email    string `json:"email" form:"email" validate:"omitempty,email"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" form:"refreshToken"`
}

type authPayload struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// -------------------- REGISTER --------------------
func (h *UserController) Register() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var req registerRequest
		if err := bind(c, &req); err != nil {
			fail(c, err)
			return
		}
		req.Username, req.Email = normalize(req.Username), normalize(req.Email)
		req.Fullname = strings.TrimSpace(req.Fullname)

		taken, err := h.Users.UserTaken(ctx, req.Username, req.Email)
		if err != nil {
			fail(c, err)
			return
		}
		if taken {
			fail(c, helpers.Conflict("User with email or username already exists"))
			return
		}

		// ---------- Files ----------
		avatarFile, err := h.Uploads.Require(c, "avatar")
		if err != nil {
			fail(c, err)
			return
		}
		defer avatarFile.Remove()

		coverFile, err := h.Uploads.Spool(c, "coverimage")
		if err != nil {
			fail(c, err)
			return
		}
		defer coverFile.Remove()

		avatar, err := upload(ctx, h.Assets, avatarFile, avatarFolder, models.ResourceImage)
		if err != nil {
			fail(c, err)
			return
		}
		uploaded := []models.Asset{avatar}

		var cover *models.Asset
		if coverFile != nil {
			a, err := upload(ctx, h.Assets, coverFile, coverFolder, models.ResourceImage)
			if err != nil {
				destroy(ctx, c, h.Assets, uploaded...)
				fail(c, err)
				return
			}
			cover = &a
			uploaded = append(uploaded, a)
		}

		// ---------- Save ----------
		hash, err := helpers.HashPassword(req.Password)
		if err != nil {
			destroy(ctx, c, h.Assets, uploaded...)
			fail(c, err)
			return
		}

		user := &models.User{
			Username:   req.Username,
			Email:      req.Email,
			Fullname:   req.Fullname,
			Avatar:     avatar,
			Coverimage: cover,
			Password:   hash,
		}
		if err := h.Users.CreateUser(ctx, user); err != nil {
			destroy(ctx, c, h.Assets, uploaded...)
			fail(c, helpers.FromStoreError(err, "user"))
			return
		}

		middleware.Logger(c).WithField("user_id", user.ID.Hex()).Info("user registered")
		helpers.Respond(c, http.StatusCreated, user, "User registered successfully")
	}
}

// -------------------- LOGIN --------------------
func (h *UserController) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var req loginRequest
		if err := bind(c, &req); err != nil {
			fail(c, err)
			return
		}
		if req.Username == "" && req.Email == "" {
			fail(c, helpers.InvalidArgument("username or email is required"))
			return
		}

		user, err := h.Users.UserByLogin(ctx, normalize(req.Username), normalize(req.Email))
		if err != nil {
			fail(c, helpers.FromStoreError(err, "user"))
			return
		}
		if !helpers.VerifyPassword(user.Password, req.Password) {
			fail(c, helpers.Unauthorized("Invalid user credentials"))
			return
		}

		access, refresh, err := h.issueTokens(ctx, user)
		if err != nil {
			fail(c, err)
			return
		}

		h.setAuthCookies(c, access, refresh)
		helpers.Respond(c, http.StatusOK, authPayload{User: user, AccessToken: access, RefreshToken: refresh}, "User logged in successfully")
	}
}

// -------------------- LOGOUT --------------------
func (h *UserController) Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		id, err := currentUser(c)
		if err != nil {
			fail(c, err)
			return
		}
		if err := h.Users.SetRefreshToken(ctx, id, ""); err != nil {
			fail(c, helpers.FromStoreError(err, "user"))
			return
		}

		h.clearAuthCookies(c)
		helpers.Respond(c, http.StatusOK, gin.H{}, "User logged out successfully")
	}
}

// -------------------- REFRESH TOKEN --------------------
func (h *UserController) RefreshToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		incoming, _ := c.Cookie(middleware.RefreshTokenCookie)
		if incoming == "" {
			var req refreshRequest
			_ = c.ShouldBind(&req)
			incoming = req.RefreshToken
		}
		if incoming == "" {
			fail(c, helpers.Unauthorized("Unauthorized request"))
			return
		}

		claims, err := h.Tokens.ValidateRefreshToken(incoming)
		if err != nil {
			fail(c, helpers.Unauthorized("Invalid refresh token").Wrap(err))
			return
		}
		id, err := composer.ParseID("refresh token subject", claims.Subject)
		if err != nil {
			fail(c, helpers.Unauthorized("Invalid refresh token").Wrap(err))
			return
		}

		user, err := h.Users.UserByID(ctx, id)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				fail(c, helpers.Unauthorized("Invalid refresh token"))
				return
			}
			fail(c, err)
			return
		}
		if user.RefreshToken != incoming {
			fail(c, helpers.Unauthorized("Refresh token is expired or used"))
			return
		}

		access, refresh, err := h.issueTokens(ctx, user)
		if err != nil {
			fail(c, err)
			return
		}

		h.setAuthCookies(c, access, refresh)
		helpers.Respond(c, http.StatusOK, gin.H{"accessToken": access, "refreshToken": refresh}, "Access token refreshed")
	}
}

// -------------------- CHANGE PASSWORD --------------------
func (h *UserController) ChangePassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		id, err := currentUser(c)
		if err != nil {
			fail(c, err)
			return
		}
		var req changePasswordRequest
		if err := bind(c, &req); err != nil {
			fail(c, err)
			return
		}

		user, err := h.Users.UserByID(ctx, id)
		if err != nil {
			fail(c, helpers.FromStoreError(err, "user"))
			return
		}
		if !helpers.VerifyPassword(user.Password, req.OldPassword) {
			fail(c, helpers.InvalidArgument("Invalid old password"))
			return
		}

		hash, err := helpers.HashPassword(req.NewPassword)
		if err != nil {
			fail(c, err)
			return
		}
		if _, err := h.Users.UpdateUser(ctx, id, bson.D{{Key: "password", Value: hash}}); err != nil {
			fail(c, helpers.FromStoreError(err, "user"))
			return
		}

		helpers.Respond(c, http.StatusOK, gin.H{}, "Password changed successfully")
	}
}

// -------------------- CURRENT USER --------------------
func (h *UserController) CurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		id, err := currentUser(c)
		if err != nil {
			fail(c, err)
			return
		}
		user, err := h.Users.UserByID(ctx, id)
		if err != nil {
			fail(c, helpers.FromStoreError(err, "user"))
			return
		}
		helpers.Respond(c, http.StatusOK, user, "Current user fetched successfully")
	}
}

// -------------------- UPDATE ACCOUNT --------------------
func (h *UserController) UpdateAccountDetails() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		id, err := currentUser(c)
		if err != nil {
			fail(c, err)
			return
		}
		var req updateAccountRequest
		if err := bind(c, &req); err != nil {
			fail(c, err)
			return
		}

		set := bson.D{}
		if name := strings.TrimSpace(req.Fullname); name != "" {
			set = append(set, bson.E{Key: "fullname", Value: name})
		}
		if email := normalize(req.Email); email != "" {
			set = append(set, bson.E{Key: "email", Value: email})
		}
		if len(set) == 0 {
			fail(c, helpers.InvalidArgument("fullname or email is required"))
			return
		}

		user, err := h.Users.UpdateUser(ctx, id, set)
		if err != nil {
			fail(c, helpers.FromStoreError(err, "user"))
			return
		}
		helpers.Respond(c, http.StatusOK, user, "Account details updated successfully")
	}
}

// -------------------- AVATAR / COVER IMAGE --------------------
func (h *UserController) UpdateAvatar() gin.HandlerFunc {
	return h.replaceImage("avatar", avatarFolder, func(u *models.User) *models.Asset { return &u.Avatar })
}

func (h *UserController) UpdateCoverImage() gin.HandlerFunc {
	return h.replaceImage("coverimage", coverFolder, func(u *models.User) *models.Asset { return u.Coverimage })
}

// replaceImage uploads the new file, points the user at it and only then
// deletes the old asset.
func (h *UserController) replaceImage(field, folder string, current func(*models.User) *models.Asset) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		id, err := currentUser(c)
		if err != nil {
			fail(c, err)
			return
		}
		file, err := h.Uploads.Require(c, field)
		if err != nil {
			fail(c, err)
			return
		}
		defer file.Remove()

		user, err := h.Users.UserByID(ctx, id)
		if err != nil {
			fail(c, helpers.FromStoreError(err, "user"))
			return
		}
		var old models.Asset
		if a := current(user); a != nil {
			old = *a
		}

		asset, err := upload(ctx, h.Assets, file, folder, models.ResourceImage)
		if err != nil {
			fail(c, err)
			return
		}

		updated, err := h.Users.UpdateUser(ctx, id, bson.D{{Key: field, Value: asset}})
		if err != nil {
			destroy(ctx, c, h.Assets, asset)
			fail(c, helpers.FromStoreError(err, "user"))
			return
		}
		destroy(ctx, c, h.Assets, old)

		helpers.Respond(c, http.StatusOK, updated, field+" updated successfully")
	}
}

// -------------------- CHANNEL PROFILE --------------------
func (h *UserController) ChannelProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		username := strings.TrimSpace(c.Param("username"))
		if username == "" {
			fail(c, helpers.InvalidArgument("username is missing"))
			return
		}

		profile, err := composer.One[models.ChannelProfile](ctx,
			h.Views.Source(models.UsersCollection),
			composer.ChannelProfile(username, middleware.Actor(c)))
		if err != nil {
			fail(c, helpers.FromStoreError(err, "channel"))
			return
		}
		helpers.Respond(c, http.StatusOK, profile, "User channel fetched successfully")
	}
}

// -------------------- WATCH HISTORY --------------------
func (h *UserController) WatchHistory() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		id, err := currentUser(c)
		if err != nil {
			fail(c, err)
			return
		}

		history, err := composer.One[models.WatchHistory](ctx,
			h.Views.Source(models.UsersCollection),
			composer.WatchHistory(id))
		if err != nil {
			fail(c, helpers.FromStoreError(err, "user"))
			return
		}
		if history.Videos == nil {
			history.Videos = []models.VideoCard{}
		}
		helpers.Respond(c, http.StatusOK, history.Videos, "Watch history fetched successfully")
	}
}

func (h *UserController) ClearWatchHistory() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		id, err := currentUser(c)
		if err != nil {
			fail(c, err)
			return
		}
		if err := h.Users.ClearWatchHistory(ctx, id); err != nil {
			fail(c, helpers.FromStoreError(err, "user"))
			return
		}
		helpers.Respond(c, http.StatusOK, []models.VideoCard{}, "Watch history cleared successfully")
	}
}

// issueTokens signs a fresh pair and stores the refresh token on the user.
func (h *UserController) issueTokens(ctx context.Context, u *models.User) (string, string, error) {
	access, refresh, err := h.Tokens.GenerateTokens(helpers.TokenSubject{
		ID:       u.ID.Hex(),
		Email:    u.Email,
		Username: u.Username,
		Fullname: u.Fullname,
	})
	if err != nil {
		return "", "", err
	}
	if err := h.Users.SetRefreshToken(ctx, u.ID, refresh); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (h *UserController) setAuthCookies(c *gin.Context, access, refresh string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, access, int(h.Tokens.AccessTTL().Seconds()), "/", "", h.CookieSecure, true)
	c.SetCookie(middleware.RefreshTokenCookie, refresh, int(h.Tokens.RefreshTTL().Seconds()), "/", "", h.CookieSecure, true)
}

func (h *UserController) clearAuthCookies(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.CookieSecure, true)
	c.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", "", h.CookieSecure, true)
}
