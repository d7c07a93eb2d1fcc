// Package storage wraps the MinIO client used as the audio blob store.
// Metadata never depends on it beyond the opaque URL it hands back.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"musicalchairs/config"
	"musicalchairs/logger"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// BlobStore uploads and serves audio blobs from a single MinIO bucket.
type BlobStore struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

// NewBlobStore connects to MinIO and makes sure the configured bucket
// exists.
func NewBlobStore(cfg *config.Config) (*BlobStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
		Region: cfg.MinioRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.MinioBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{Region: cfg.MinioRegion}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.MinioBucket, err)
		}
		logger.Info("created blob bucket", logger.String("bucket", cfg.MinioBucket))
	}

	return &BlobStore{
		client:        client,
		bucket:        cfg.MinioBucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// Upload stores a blob under a fresh object name and returns that name.
// Object names are 32-char hyphenless UUIDs plus an extension derived from
// the content type.
func (s *BlobStore) Upload(ctx context.Context, r io.Reader, size int64, contentType string) (string, error) {
	objectName := newObjectName() + extensionFor(contentType)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload blob %s: %w", objectName, err)
	}

	logger.Info("blob uploaded",
		logger.String("object", objectName),
		logger.Int64("size", size),
		logger.String("contentType", contentType))
	return objectName, nil
}

// PublicURL builds the externally reachable URL for an object name. The
// URL is stored opaquely in metadata and never validated afterwards.
func (s *BlobStore) PublicURL(objectName string) string {
	return s.publicBaseURL + "/uploads/" + objectName
}

// Open opens a stored blob for streaming. The caller must close it.
func (s *BlobStore) Open(ctx context.Context, objectName string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get blob %s: %w", objectName, err)
	}
	return obj, nil
}

// Ping verifies connectivity, used by the connectivity check command.
func (s *BlobStore) Ping(ctx context.Context) error {
	if _, err := s.client.BucketExists(ctx, s.bucket); err != nil {
		return fmt.Errorf("failed to reach MinIO: %w", err)
	}
	return nil
}

// newObjectName mirrors the uploader convention of a UUID with the
// hyphens stripped.
func newObjectName() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// extensionFor picks a file extension for the audio content types the
// upload endpoint accepts.
func extensionFor(contentType string) string {
	switch contentType {
	case "audio/wav", "audio/x-wav":
		return ".wav"
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	default:
		return ""
	}
}
