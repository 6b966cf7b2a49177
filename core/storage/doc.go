// Package storage provides an abstraction layer for the object storage raw
// assets are read from.
//
// It wraps the MinIO Go client behind the Client interface, which works
// against both AWS S3 and self-hosted MinIO, and which core/storage/mocks
// implements for unit tests.
//
// # Operations
//
//   - BucketExists / MakeBucket (see EnsureBucket)
//   - PutObject: publishes a raw asset
//   - GetObject: streams a raw asset to a resource load
//   - StatObject: checks an object exists (integrity checks)
//   - ListObjects: lists objects under a prefix
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	rc, err := client.GetObject(ctx, "resources", "textures/grass.png", minio.GetObjectOptions{})
package storage
