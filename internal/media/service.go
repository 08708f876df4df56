// Package media stores uploaded assets in S3-compatible object storage.
package media

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"folio/api/internal/util"
)

// Service uploads and removes media objects.
type Service struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewService connects to the object store and ensures the bucket exists.
func NewService(ctx context.Context, endpoint, accessKey, secretKey, bucket, baseURL string, useSSL bool) (*Service, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect object store: %w", err)
	}

	s := &Service{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}

	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket: %w", err)
	}
	return nil
}

// Upload stores a file and returns its public URL. The object name is
// randomized; the original filename only contributes its extension.
func (s *Service) Upload(ctx context.Context, filename string, size int64, contentType string, r io.Reader) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if contentType == "" {
		contentType = mime.TypeByExtension(ext)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := util.NewID("media") + ext
	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload object: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, objectName), nil
}

// Remove deletes an object previously returned by Upload. The argument
// may be the full URL or just the object name.
func (s *Service) Remove(ctx context.Context, urlOrName string) error {
	objectName := urlOrName
	if idx := strings.LastIndex(urlOrName, "/"); idx >= 0 {
		objectName = urlOrName[idx+1:]
	}
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}
