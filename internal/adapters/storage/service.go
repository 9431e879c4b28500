// Package storage provides S3-compatible object storage for listing media:
// gallery images, floor plans and brochures.
package storage

import (
	"context"
	"time"
)

// PresignedURL contains the URL and metadata for a presigned upload or download.
type PresignedURL struct {
	URL       string    `json:"url"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// MediaKind classifies an uploaded listing asset.
type MediaKind string

const (
	MediaImage     MediaKind = "image"
	MediaFloorPlan MediaKind = "floorPlan"
	MediaBrochure  MediaKind = "brochure"
)

// StorageService is the object storage surface the listings module uses.
type StorageService interface {
	// PresignUpload validates the asset and returns a presigned PUT URL.
	// The object key is placed under folder with a random suffix so that
	// re-uploads never overwrite each other.
	PresignUpload(ctx context.Context, bucket, folder string, kind MediaKind, fileName, contentType string, sizeBytes int64) (*PresignedURL, error)

	// PresignDownload returns a presigned GET URL for fileKey.
	PresignDownload(ctx context.Context, bucket, fileKey string) (*PresignedURL, error)

	// DeleteObject removes an object from storage.
	DeleteObject(ctx context.Context, bucket, fileKey string) error

	// EnsureBucketExists creates the bucket if it doesn't exist.
	EnsureBucketExists(ctx context.Context, bucket string) error
}

// Config defines the configuration interface for storage.
type Config interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	IsMinIOEnabled() bool
}
