package storage

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
)

func (m *implMinIO) Publish(ctx context.Context, localPath string) (string, error) {
	if err := m.ensureBucket(ctx); err != nil {
		return "", err
	}

	object := m.objectName(localPath)
	info, err := m.client.FPutObject(ctx, m.bucket, object, localPath, minio.PutObjectOptions{
		ContentType: contentType(localPath),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	m.logger.Info(ctx, "Published %s to %s/%s (%d bytes)", filepath.Base(localPath), m.bucket, object, info.Size)
	return object, nil
}

// ensureBucket creates the bucket if it doesn't exist
func (m *implMinIO) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

func (m *implMinIO) objectName(localPath string) string {
	prefix := strings.Trim(m.prefix, "/")
	if prefix == "" {
		return filepath.Base(localPath)
	}
	return path.Join(prefix, filepath.Base(localPath))
}

func contentType(p string) string {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".mp4", ".m4v":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	case ".mkv":
		return "video/x-matroska"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
