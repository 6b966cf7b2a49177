package storage_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"resource-manager/core/storage"
	"resource-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEnsureBucket(t *testing.T) {
	t.Run("Exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "resources").Return(true, nil)

		assert.NoError(t, storage.EnsureBucket(context.Background(), client, "resources", ""))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "resources").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "resources", mock.Anything).Return(nil)

		assert.NoError(t, storage.EnsureBucket(context.Background(), client, "resources", "us-east-1"))
		client.AssertExpectations(t)
	})

	t.Run("CheckFails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "resources").Return(false, errors.New("unreachable"))

		err := storage.EnsureBucket(context.Background(), client, "resources", "")
		assert.ErrorContains(t, err, "unreachable")
	})
}

func TestPublish(t *testing.T) {
	cfg := storage.Config{Bucket: "resources", Region: "us-east-1"}

	t.Run("Uploads", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "resources").Return(true, nil)
		client.On("PutObject", mock.Anything, "resources", "textures/logo.png", mock.Anything, int64(3),
			mock.MatchedBy(func(o minio.PutObjectOptions) bool { return o.ContentType == "image/png" })).
			Return(minio.UploadInfo{Key: "textures/logo.png", Size: 3}, nil)

		info, err := storage.Publish(context.Background(), client, cfg, "textures/logo.png", strings.NewReader("png"), 3)
		require.NoError(t, err)
		assert.Equal(t, int64(3), info.Size)
		client.AssertExpectations(t)
	})

	t.Run("UnknownExtension", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "resources").Return(true, nil)
		client.On("PutObject", mock.Anything, "resources", "blobs/7", mock.Anything, int64(1),
			mock.MatchedBy(func(o minio.PutObjectOptions) bool { return o.ContentType == "application/octet-stream" })).
			Return(minio.UploadInfo{}, nil)

		_, err := storage.Publish(context.Background(), client, cfg, "blobs/7", strings.NewReader("x"), 1)
		assert.NoError(t, err)
	})

	t.Run("BucketFailure", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "resources").Return(false, errors.New("denied"))

		_, err := storage.Publish(context.Background(), client, cfg, "a.png", strings.NewReader(""), 0)
		assert.ErrorContains(t, err, "failed to check bucket")
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UploadFailure", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "resources").Return(true, nil)
		client.On("PutObject", mock.Anything, "resources", "a.png", mock.Anything, int64(0), mock.Anything).
			Return(minio.UploadInfo{}, errors.New("quota"))

		_, err := storage.Publish(context.Background(), client, cfg, "a.png", strings.NewReader(""), 0)
		assert.ErrorContains(t, err, "failed to upload a.png")
	})
}
