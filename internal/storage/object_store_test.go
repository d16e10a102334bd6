package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"imagegram/api/internal/config"
)

func TestPublicURL(t *testing.T) {
	cases := []struct {
		name     string
		cfg      config.StorageConfig
		key      string
		expected string
	}{
		{
			name:     "bare endpoint no ssl",
			cfg:      config.StorageConfig{Endpoint: "minio:9000", Bucket: "imagegram"},
			key:      "images/abc.png",
			expected: "http://minio:9000/imagegram/images/abc.png",
		},
		{
			name:     "bare endpoint ssl",
			cfg:      config.StorageConfig{Endpoint: "s3.example.com", Bucket: "imagegram", UseSSL: true},
			key:      "avatars/u1.png",
			expected: "https://s3.example.com/imagegram/avatars/u1.png",
		},
		{
			name:     "endpoint with scheme and trailing slash",
			cfg:      config.StorageConfig{Endpoint: "https://cdn.example.com/", Bucket: "media"},
			key:      "images/x.jpeg",
			expected: "https://cdn.example.com/media/images/x.jpeg",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &ObjectStore{cfg: tc.cfg}
			assert.Equal(t, tc.expected, s.PublicURL(tc.key))
		})
	}
}
