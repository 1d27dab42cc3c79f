package controllers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amanjaiswal-07/youtube-backend/helpers"
	"github.com/amanjaiswal-07/youtube-backend/middleware"
	"github.com/amanjaiswal-07/youtube-backend/models"
)

const requestTimeout = 30 * time.Second

var validate = validator.New()

// requestContext bounds store and asset calls made while serving c.
func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// fail renders err. APIErrors go out as they are; anything else is logged
// and replaced by a generic Internal error.
func fail(c *gin.Context, err error) {
	log := middleware.Logger(c)

	apiErr, ok := helpers.AsAPIError(err)
	if !ok {
		log.WithError(err).Error("unexpected failure")
		helpers.RespondError(c, helpers.Internal(err))
		return
	}

	switch apiErr.Kind {
	case helpers.KindInternal, helpers.KindUpstream:
		log.WithError(err).Error(apiErr.Message)
	default:
		log.WithError(err).Debug(apiErr.Message)
	}
	helpers.RespondError(c, apiErr)
}

// bind decodes the request body (JSON or form) into dst and validates it.
func bind(c *gin.Context, dst any) error {
	if err := c.ShouldBind(dst); err != nil {
		return helpers.InvalidArgument("invalid request body").Wrap(err)
	}
	return validateStruct(dst)
}

func validateStruct(dst any) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return helpers.InvalidArgument("invalid request body").Wrap(err)
	}
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fieldMessage(fe))
	}
	return helpers.InvalidArgument("validation failed").WithDetails(details...)
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "eqfield":
		return fmt.Sprintf("%s must match %s", field, fe.Param())
	case "gt", "gte":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid", field)
}

// requireOwner fails with Forbidden unless the caller owns the entity.
func requireOwner(c *gin.Context, owner primitive.ObjectID, what string) error {
	if middleware.Actor(c) != owner {
		return helpers.Forbidden("You are not allowed to modify this %s", what)
	}
	return nil
}

// currentUser is the authenticated caller. Routes using it sit behind
// middleware.Authentication.
func currentUser(c *gin.Context) (primitive.ObjectID, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return primitive.NilObjectID, helpers.Unauthorized("Unauthorized request")
	}
	return id, nil
}

// upload pushes a spooled file to the asset host and removes the local copy.
func upload(ctx context.Context, assets helpers.AssetHost, f *helpers.SpooledFile, folder string, kind models.ResourceKind) (models.Asset, error) {
	defer f.Remove()
	asset, err := assets.Upload(ctx, f.Path, folder, kind)
	if err != nil {
		return models.Asset{}, helpers.Upstream(err, "Error while uploading %s", f.Name)
	}
	return asset, nil
}

// destroy removes assets from the host, logging failures. The database row
// is already gone or replaced by the time this runs.
func destroy(ctx context.Context, c *gin.Context, assets helpers.AssetHost, list ...models.Asset) {
	for _, a := range list {
		if a.IsZero() {
			continue
		}
		if err := assets.Destroy(ctx, a); err != nil {
			middleware.Logger(c).WithError(err).WithField("public_id", a.PublicID).Warn("failed to delete asset")
		}
	}
}
