package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"imagegram/api/internal/apperr"
	"imagegram/api/internal/ids"
	"imagegram/api/internal/models"
	"imagegram/api/internal/repository"
)

type SocialService struct {
	images ImageStore
	log    zerolog.Logger
}

func NewSocialService(images ImageStore, log zerolog.Logger) *SocialService {
	return &SocialService{
		images: images,
		log:    log,
	}
}

type LikeResult struct {
	ImageID string
	Liked   bool
	Count   int
}

// ToggleLike flips the user's membership in the image's like set and
// returns the new count. Calling it twice restores the original state.
func (s *SocialService) ToggleLike(ctx context.Context, imageID, userID string) (LikeResult, error) {
	if _, err := s.images.GetByID(ctx, imageID); err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return LikeResult{}, apperr.New(apperr.KindNotFound, "image not found")
		}
		return LikeResult{}, err
	}

	removed, err := s.images.Unlike(ctx, imageID, userID)
	if err != nil {
		return LikeResult{}, err
	}
	if !removed {
		if err := s.images.Like(ctx, imageID, userID); err != nil {
			return LikeResult{}, err
		}
	}

	count, err := s.images.CountLikes(ctx, imageID)
	if err != nil {
		return LikeResult{}, err
	}

	return LikeResult{
		ImageID: imageID,
		Liked:   !removed,
		Count:   count,
	}, nil
}

// AddComment captures the author's username at comment time; a later
// username change does not rewrite history.
func (s *SocialService) AddComment(ctx context.Context, imageID string, author models.User, text string) (models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return models.Comment{}, apperr.New(apperr.KindValidation, "comment text is required")
	}

	if _, err := s.images.GetByID(ctx, imageID); err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return models.Comment{}, apperr.New(apperr.KindNotFound, "image not found")
		}
		return models.Comment{}, err
	}

	comment := models.Comment{
		ID:        ids.New(),
		ImageID:   imageID,
		UserID:    author.ID,
		Username:  author.Username,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.images.AddComment(ctx, comment); err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

func (s *SocialService) DeleteComment(ctx context.Context, imageID, commentID, requesterID string) error {
	if _, err := s.images.GetByID(ctx, imageID); err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return apperr.New(apperr.KindNotFound, "image not found")
		}
		return err
	}

	comment, err := s.images.GetComment(ctx, imageID, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return apperr.New(apperr.KindNotFound, "comment not found")
		}
		return err
	}

	if comment.UserID != requesterID {
		return apperr.New(apperr.KindForbidden, "not the comment author")
	}

	return s.images.DeleteComment(ctx, commentID)
}
