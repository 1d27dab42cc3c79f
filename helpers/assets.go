package helpers

import (
	"context"
	"fmt"

	"github.com/amanjaiswal-07/youtube-backend/config"
	"github.com/amanjaiswal-07/youtube-backend/models"
)

// AssetHost stores binary files outside the database. Upload takes a local
// file path; Destroy removes a previously uploaded asset.
type AssetHost interface {
	Upload(ctx context.Context, localPath, folder string, kind models.ResourceKind) (models.Asset, error)
	Destroy(ctx context.Context, asset models.Asset) error
}

// NewAssetHost builds the backend selected by cfg.AssetBackend.
func NewAssetHost(ctx context.Context, cfg *config.Config) (AssetHost, error) {
	switch cfg.AssetBackend {
	case config.AssetBackendCloudinary:
		return NewCloudinaryHost(cfg.CloudinaryURL)
	case config.AssetBackendS3:
		return NewS3Host(ctx, S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PublicURL: cfg.S3PublicURL,
		})
	}
	return nil, fmt.Errorf("unknown asset backend %q", cfg.AssetBackend)
}
