package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"Plain", Config{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", Bucket: "resources", Region: "us-east-1"}},
		{"HTTPScheme", Config{Endpoint: "http://localhost:9000", AccessKey: "k", SecretKey: "s"}},
		{"HTTPSScheme", Config{Endpoint: "https://s3.amazonaws.com", AccessKey: "k", SecretKey: "s", Region: "us-east-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestSplitEndpoint(t *testing.T) {
	host, secure := splitEndpoint("https://cdn.example.com", false)
	assert.Equal(t, "cdn.example.com", host)
	assert.True(t, secure)

	host, secure = splitEndpoint("http://localhost:9000", false)
	assert.Equal(t, "localhost:9000", host)
	assert.False(t, secure)

	host, secure = splitEndpoint("minio:9000", true)
	assert.Equal(t, "minio:9000", host)
	assert.True(t, secure)
}

func TestConfigTimeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, Config{}.Timeout())
	assert.Equal(t, 5*time.Second, Config{TimeoutSeconds: 5}.Timeout())
	assert.Equal(t, 5*time.Second, newTransport(Config{TimeoutSeconds: 5}.Timeout()).ResponseHeaderTimeout)
}

func TestIsNotFound(t *testing.T) {
	assert.False(t, IsNotFound(nil))
	assert.True(t, IsNotFound(minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404}))
	assert.True(t, IsNotFound(minio.ErrorResponse{Code: "NoSuchBucket", StatusCode: 404}))
	assert.False(t, IsNotFound(minio.ErrorResponse{Code: "AccessDenied", StatusCode: 403}))
	assert.False(t, IsNotFound(errors.New("dial tcp: connection refused")))
}
