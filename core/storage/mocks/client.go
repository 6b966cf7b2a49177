package mocks

import (
	"context"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"

	"resource-manager/core/storage"
)

var _ storage.Client = (*Client)(nil)

// Client is a mock implementation of storage.Client.
type Client struct {
	mock.Mock
}

// NewClient returns a mock that asserts its expectations when t finishes.
func NewClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *Client {
	c := new(Client)
	c.Test(t)
	t.Cleanup(func() { c.AssertExpectations(t) })
	return c
}

// OnObject serves body for every GetObject of key in bucket.
func (m *Client) OnObject(bucket, key, body string) *mock.Call {
	return m.On("GetObject", mock.Anything, bucket, key, mock.Anything).
		Return(func() io.ReadCloser { return io.NopCloser(strings.NewReader(body)) }, nil)
}

// OnMissing fails every StatObject of key in bucket with NoSuchKey.
func (m *Client) OnMissing(bucket, key string) *mock.Call {
	return m.On("StatObject", mock.Anything, bucket, key, mock.Anything).
		Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey", Key: key, StatusCode: 404})
}

func (m *Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *Client) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	args := m.Called(ctx, bucketName, opts)
	return args.Error(0)
}

func (m *Client) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func (m *Client) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	switch obj := args.Get(0).(type) {
	case io.ReadCloser:
		return obj, args.Error(1)
	case func() io.ReadCloser:
		return obj(), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	args := m.Called(ctx, bucketName, opts)
	if ch, ok := args.Get(0).(<-chan minio.ObjectInfo); ok {
		return ch
	}
	ch := make(chan minio.ObjectInfo)
	close(ch)
	return ch
}

func (m *Client) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	if info, ok := args.Get(0).(minio.ObjectInfo); ok {
		return info, args.Error(1)
	}
	return minio.ObjectInfo{}, args.Error(1)
}
