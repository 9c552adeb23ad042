package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS3Store_NotConfigured(t *testing.T) {
	var s *S3Store

	_, err := s.GetObject(context.Background(), "bucket", "taxonomy.yaml")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.ErrorIs(t, s.Ping(context.Background(), "bucket"), ErrNotConfigured)
}

func TestNewS3Store_CustomEndpoint(t *testing.T) {
	s, err := NewS3Store(context.Background(), S3ClientConfig{
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		Region:          "us-east-1",
		Endpoint:        "http://127.0.0.1:9000",
	})
	require.NoError(t, err)

	opts := s.client.Options()
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
}
