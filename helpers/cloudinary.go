package helpers

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/amanjaiswal-07/youtube-backend/logger"
	"github.com/amanjaiswal-07/youtube-backend/models"
)

// CloudinaryHost uploads assets to Cloudinary.
type CloudinaryHost struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryHost(url string) (*CloudinaryHost, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryHost{cld: cld}, nil
}

// Upload sends the file at localPath to folder. Video files must be uploaded
// with the video resource type or Cloudinary rejects them.
func (h *CloudinaryHost) Upload(ctx context.Context, localPath, folder string, kind models.ResourceKind) (models.Asset, error) {
	res, err := h.cld.Upload.Upload(ctx, localPath, uploader.UploadParams{
		Folder:       folder,
		ResourceType: string(kind),
	})
	if err != nil {
		logger.L().WithError(err).WithField("folder", folder).Error("cloudinary upload failed")
		return models.Asset{}, err
	}
	if res.Error.Message != "" {
		return models.Asset{}, errors.New(res.Error.Message)
	}
	if res.SecureURL == "" || res.PublicID == "" {
		return models.Asset{}, errors.New("cloudinary upload returned no asset")
	}
	return models.Asset{URL: res.SecureURL, PublicID: res.PublicID, ResourceType: kind}, nil
}

func (h *CloudinaryHost) Destroy(ctx context.Context, asset models.Asset) error {
	kind := asset.ResourceType
	if kind == "" {
		kind = models.ResourceImage
	}
	res, err := h.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     asset.PublicID,
		ResourceType: string(kind),
	})
	if err != nil {
		logger.L().WithError(err).WithField("public_id", asset.PublicID).Error("cloudinary destroy failed")
		return err
	}
	if res.Error.Message != "" {
		return errors.New(res.Error.Message)
	}
	return nil
}
