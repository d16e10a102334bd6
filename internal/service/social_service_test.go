package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagegram/api/internal/apperr"
	"imagegram/api/internal/models"
)

func seedSocialImage(images *memImageStore, id, ownerID string) {
	images.images[id] = models.Image{ID: id, UserID: ownerID, ObjectKey: "images/" + id + ".png"}
}

func TestToggleLikeTwiceRestoresState(t *testing.T) {
	images := newMemImageStore()
	seedSocialImage(images, "img1", "owner")
	svc := NewSocialService(images, zerolog.Nop())

	liked, err := svc.ToggleLike(context.Background(), "img1", "u1")
	require.NoError(t, err)
	assert.True(t, liked.Liked)
	assert.Equal(t, 1, liked.Count)

	unliked, err := svc.ToggleLike(context.Background(), "img1", "u1")
	require.NoError(t, err)
	assert.False(t, unliked.Liked)
	assert.Equal(t, 0, unliked.Count)
}

func TestToggleLikeCountsDistinctUsers(t *testing.T) {
	images := newMemImageStore()
	seedSocialImage(images, "img1", "owner")
	svc := NewSocialService(images, zerolog.Nop())

	_, err := svc.ToggleLike(context.Background(), "img1", "u1")
	require.NoError(t, err)
	result, err := svc.ToggleLike(context.Background(), "img1", "u2")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
}

func TestToggleLikeUnknownImage(t *testing.T) {
	svc := NewSocialService(newMemImageStore(), zerolog.Nop())

	_, err := svc.ToggleLike(context.Background(), "missing", "u1")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestAddCommentCapturesUsername(t *testing.T) {
	images := newMemImageStore()
	seedSocialImage(images, "img1", "owner")
	svc := NewSocialService(images, zerolog.Nop())
	author := models.User{ID: "u1", Username: "ripley"}

	comment, err := svc.AddComment(context.Background(), "img1", author, "nice shot")
	require.NoError(t, err)
	assert.NotEmpty(t, comment.ID)
	assert.Equal(t, "ripley", comment.Username)
	assert.Equal(t, "img1", comment.ImageID)
	assert.False(t, comment.CreatedAt.IsZero())
}

func TestAddCommentRejectsBlankText(t *testing.T) {
	images := newMemImageStore()
	seedSocialImage(images, "img1", "owner")
	svc := NewSocialService(images, zerolog.Nop())

	_, err := svc.AddComment(context.Background(), "img1", models.User{ID: "u1"}, "   ")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestDeleteCommentByNonAuthorForbidden(t *testing.T) {
	images := newMemImageStore()
	seedSocialImage(images, "img1", "owner")
	svc := NewSocialService(images, zerolog.Nop())

	comment, err := svc.AddComment(context.Background(), "img1", models.User{ID: "u1", Username: "ripley"}, "hello")
	require.NoError(t, err)

	err = svc.DeleteComment(context.Background(), "img1", comment.ID, "u2")
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	// The comment survives a rejected delete.
	_, err = images.GetComment(context.Background(), "img1", comment.ID)
	assert.NoError(t, err)
}

func TestDeleteCommentByAuthor(t *testing.T) {
	images := newMemImageStore()
	seedSocialImage(images, "img1", "owner")
	svc := NewSocialService(images, zerolog.Nop())

	comment, err := svc.AddComment(context.Background(), "img1", models.User{ID: "u1", Username: "ripley"}, "hello")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteComment(context.Background(), "img1", comment.ID, "u1"))

	_, err = images.GetComment(context.Background(), "img1", comment.ID)
	assert.Error(t, err)

	err = svc.DeleteComment(context.Background(), "img1", comment.ID, "u1")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
