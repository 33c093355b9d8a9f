package storage

import (
	"context"
	"fmt"
	"io"
)

// Storage is the object store boundary. Keys are opaque blob addresses
// in the form "{owner}/{token}{.ext}"; all mutating calls touch the
// remote store and retain no local state.
type Storage interface {
	// Save stores a blob under the given key. A failed Save must not
	// leave an addressable partial object behind.
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Get retrieves a blob by key.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a single blob. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// DeleteBatch removes a set of blobs in one call.
	DeleteBatch(ctx context.Context, keys []string) error

	// Exists checks whether a blob is present under the key.
	Exists(ctx context.Context, key string) (bool, error)

	// PublicURL derives a fetchable URL from the key. Pure derivation,
	// no network round trip.
	PublicURL(key string) string
}

// Config holds storage configuration
type Config struct {
	Type      string // local, s3, cloudflare_r2
	BasePath  string // For local storage
	BaseURL   string // Public URL base
	Bucket    string // For S3/R2
	Region    string // For S3
	AccessKey string // For S3/R2
	SecretKey string // For S3/R2
	Endpoint  string // For R2 or custom S3
}

// NewStorage creates a storage instance based on configuration
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	case "cloudflare_r2":
		return NewCloudflareR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
