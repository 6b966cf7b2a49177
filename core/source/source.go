package source

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"

	"resource-manager/core/catalog"
	"resource-manager/core/resource"
	"resource-manager/core/storage"
)

// ErrNoSource is returned when a raw load is attempted without a source.
var ErrNoSource = errors.New("no raw source configured")

// Resolver finds the storage object behind a raw id.
type Resolver interface {
	Resolve(ctx context.Context, rawID int) (catalog.Asset, error)
}

// Storage reads raw assets from the object storage bucket, using the
// catalog to turn raw ids into object keys.
type Storage struct {
	client   storage.Client
	bucket   string
	resolver Resolver
}

// NewStorage creates a storage-backed source.
func NewStorage(client storage.Client, bucket string, resolver Resolver) *Storage {
	return &Storage{client: client, bucket: bucket, resolver: resolver}
}

// Open implements resource.Source.
func (s *Storage) Open(ctx context.Context, rawID int) (io.ReadCloser, error) {
	asset, err := s.resolver.Resolve(ctx, rawID)
	if err != nil {
		return nil, err
	}
	rc, err := s.client.GetObject(ctx, s.bucket, asset.ObjectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", asset.ObjectKey, err)
	}
	return rc, nil
}

// ReadAll reads the whole raw asset.
func ReadAll(ctx context.Context, src resource.Source, rawID int) ([]byte, error) {
	if src == nil {
		return nil, ErrNoSource
	}
	rc, err := src.Open(ctx, rawID)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read raw asset %d: %w", rawID, err)
	}
	return data, nil
}

// ReadString reads a raw asset as text, e.g. shader source. An empty asset is an error.
func ReadString(ctx context.Context, src resource.Source, rawID int) (string, error) {
	data, err := ReadAll(ctx, src, rawID)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("raw asset %d is empty", rawID)
	}
	return string(data), nil
}
