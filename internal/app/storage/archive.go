// Package storage archives submitted audio payloads in object storage so a
// transcription can be re-run against the original recording.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	apperrors "github.com/nocdn/transcriptions-ssr/internal/app/errors"
)

// Archiver stores a copy of an audio payload and returns its storage key.
type Archiver interface {
	Archive(ctx context.Context, filename, contentType string, payload []byte) (string, error)
	Remove(ctx context.Context, key string) error
}

// ArchiveConfig holds the object storage connection settings.
type ArchiveConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioArchive implements Archiver against a MinIO-compatible endpoint.
type MinioArchive struct {
	client *minio.Client
	bucket string
}

// NewMinioArchive connects to the endpoint and ensures the bucket exists.
func NewMinioArchive(cfg ArchiveConfig) (*MinioArchive, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create object storage client")
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to check bucket existence")
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, apperrors.Wrap(err, "failed to create bucket")
		}
	}

	return &MinioArchive{client: client, bucket: cfg.Bucket}, nil
}

// Archive uploads the payload under a time-prefixed unique key.
func (a *MinioArchive) Archive(ctx context.Context, filename, contentType string, payload []byte) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := fmt.Sprintf("audio/%d-%s%s", time.Now().Unix(), uuid.New().String()[:8], filepath.Ext(filename))

	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"original-name": filename,
		},
	})
	if err != nil {
		return "", apperrors.Wrap(err, "failed to archive audio payload")
	}
	return key, nil
}

// Remove deletes an archived payload.
func (a *MinioArchive) Remove(ctx context.Context, key string) error {
	if err := a.client.RemoveObject(ctx, a.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return apperrors.Wrap(err, "failed to remove archived payload")
	}
	return nil
}
