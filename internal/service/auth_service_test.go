package service

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagegram/api/internal/apperr"
	"imagegram/api/internal/config"
	"imagegram/api/internal/media"
	"imagegram/api/internal/models"
	"imagegram/api/internal/security"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Security: config.SecurityConfig{
			JWTSecret: "test-secret",
			JWTTTL:    time.Hour,
		},
		Media: config.MediaConfig{
			BoundingWidth:  8,
			AvatarSize:     4,
			MaxUploadBytes: 1 << 20,
		},
	}
}

// testPNG encodes a width x height image with a marker pixel so decoded
// copies are distinguishable from a blank frame.
func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	encoded, err := media.Encode(img, "png")
	require.NoError(t, err)
	return encoded
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	users := newMemUserStore()
	svc := NewAuthService(users, newMemBlobStore(), testConfig(), zerolog.Nop())
	input := RegisterInput{Username: "ripley", Email: "ripley@example.com", Password: "secret123"}

	require.NoError(t, svc.Register(context.Background(), input))

	err := svc.Register(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestRegisterThenLogin(t *testing.T) {
	users := newMemUserStore()
	svc := NewAuthService(users, newMemBlobStore(), testConfig(), zerolog.Nop())

	require.NoError(t, svc.Register(context.Background(), RegisterInput{
		Username: "ripley",
		Email:    "Ripley@Example.com",
		Password: "secret123",
	}))

	// Email comparison is case-insensitive on both ends.
	result, err := svc.Login(context.Background(), "ripley@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "ripley", result.User.Username)
}

func TestLoginBadCredentialsIndistinguishable(t *testing.T) {
	hash, err := security.HashPassword("secret123")
	require.NoError(t, err)
	users := newMemUserStore(models.User{
		ID:           "u1",
		Username:     "ripley",
		Email:        "ripley@example.com",
		PasswordHash: hash,
	})
	svc := NewAuthService(users, newMemBlobStore(), testConfig(), zerolog.Nop())

	_, unknownErr := svc.Login(context.Background(), "nobody@example.com", "secret123")
	_, wrongErr := svc.Login(context.Background(), "ripley@example.com", "wrong")

	for _, err := range []error{unknownErr, wrongErr} {
		require.Error(t, err)
		assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
		assert.Equal(t, "invalid credentials", apperr.MessageOf(err))
	}
}

func TestUpdateAvatarOverwritesStableKey(t *testing.T) {
	users := newMemUserStore(models.User{ID: "u1", Username: "ripley", Email: "ripley@example.com"})
	blobs := newMemBlobStore()
	svc := NewAuthService(users, blobs, testConfig(), zerolog.Nop())

	url, err := svc.UpdateAvatar(context.Background(), "u1", testPNG(t, 10, 10))
	require.NoError(t, err)
	assert.Contains(t, url, "avatars/u1.png")

	_, err = svc.UpdateAvatar(context.Background(), "u1", testPNG(t, 20, 20))
	require.NoError(t, err)
	assert.Len(t, blobs.objects, 1)

	user, err := users.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, url, user.AvatarURL)
}

func TestUpdateAvatarRejectsGarbage(t *testing.T) {
	users := newMemUserStore(models.User{ID: "u1", Email: "ripley@example.com"})
	svc := NewAuthService(users, newMemBlobStore(), testConfig(), zerolog.Nop())

	_, err := svc.UpdateAvatar(context.Background(), "u1", []byte("not an image"))
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
