package service

import (
	"context"

	"imagegram/api/internal/models"
)

// UserStore is the slice of the user repository the services depend on.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	UpdateAvatarURL(ctx context.Context, id, avatarURL string) error
}

// ImageStore covers image metadata plus the like and comment tables,
// which live on the same repository because they share the images
// foreign key.
type ImageStore interface {
	Create(ctx context.Context, img models.Image) error
	GetByID(ctx context.Context, id string) (models.Image, error)
	ListByOwner(ctx context.Context, userID string) ([]models.Image, error)
	Delete(ctx context.Context, id string) error
	UpdateObject(ctx context.Context, img models.Image) error

	Like(ctx context.Context, imageID, userID string) error
	Unlike(ctx context.Context, imageID, userID string) (bool, error)
	CountLikes(ctx context.Context, imageID string) (int, error)
	ListLikers(ctx context.Context, imageID string) ([]models.Profile, error)

	AddComment(ctx context.Context, comment models.Comment) error
	GetComment(ctx context.Context, imageID, commentID string) (models.Comment, error)
	DeleteComment(ctx context.Context, commentID string) error
	ListComments(ctx context.Context, imageID string) ([]models.CommentDetail, error)
}

// BlobStore abstracts the bucket operations the services perform.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, key string) error
	PublicURL(key string) string
}
