package helpers

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/amanjaiswal-07/youtube-backend/models"
)

type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string // for S3 compatible stores such as MinIO
	PublicURL string
}

// s3API is the part of the S3 client S3Host uses.
type s3API interface {
	manager.UploadAPIClient
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Host stores assets in an S3 bucket. The object key doubles as the
// asset's public id.
type S3Host struct {
	client   s3API
	uploader *manager.Uploader
	bucket   string
	baseURL  string
}

func NewS3Host(ctx context.Context, opts S3Options) (*S3Host, error) {
	if strings.TrimSpace(opts.Bucket) == "" {
		return nil, fmt.Errorf("s3 storage: bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(opts.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := strings.TrimSuffix(opts.PublicURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
	}

	return newS3Host(client, opts.Bucket, baseURL), nil
}

func newS3Host(client s3API, bucket, baseURL string) *S3Host {
	return &S3Host{
		client: client,
		uploader: manager.NewUploader(client, func(u *manager.Uploader) {
			u.PartSize = 5 * 1024 * 1024
			u.LeavePartsOnError = false
		}),
		bucket:  bucket,
		baseURL: baseURL,
	}
}

func (h *S3Host) Upload(ctx context.Context, localPath, folder string, kind models.ResourceKind) (models.Asset, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return models.Asset{}, fmt.Errorf("s3 storage open %s: %w", localPath, err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(localPath))
	key := strings.Trim(folder, "/") + "/" + string(kind) + "/" + uuid.NewString() + ext

	input := &s3.PutObjectInput{
		Bucket: aws.String(h.bucket),
		Key:    aws.String(key),
		Body:   f,
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		input.ContentType = aws.String(ct)
	}

	if _, err := h.uploader.Upload(ctx, input); err != nil {
		return models.Asset{}, fmt.Errorf("s3 storage upload %s: %w", key, err)
	}

	return models.Asset{
		URL:          h.baseURL + "/" + key,
		PublicID:     key,
		ResourceType: kind,
	}, nil
}

func (h *S3Host) Destroy(ctx context.Context, asset models.Asset) error {
	_, err := h.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(h.bucket),
		Key:    aws.String(asset.PublicID),
	})
	if err != nil {
		return fmt.Errorf("s3 storage delete %s: %w", asset.PublicID, err)
	}
	return nil
}
