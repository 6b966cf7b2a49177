package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"

	"github.com/minio/minio-go/v7"
)

// Publish uploads a raw asset under key, creating the bucket first if needed.
// The content type is guessed from the key extension.
func Publish(ctx context.Context, client Client, cfg Config, key string, r io.Reader, size int64) (minio.UploadInfo, error) {
	if err := EnsureBucket(ctx, client, cfg.Bucket, cfg.Region); err != nil {
		return minio.UploadInfo{}, err
	}

	opts := minio.PutObjectOptions{ContentType: mime.TypeByExtension(path.Ext(key))}
	if opts.ContentType == "" {
		opts.ContentType = "application/octet-stream"
	}
	info, err := client.PutObject(ctx, cfg.Bucket, key, r, size, opts)
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return info, nil
}
