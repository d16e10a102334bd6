package service

import (
	"context"
	"fmt"

	"imagegram/api/internal/models"
	"imagegram/api/internal/repository"
)

// In-memory stores backing the service tests. They mirror the
// repository error contracts so kind mapping can be asserted end to end.

type memUserStore struct {
	users map[string]models.User
}

func newMemUserStore(seed ...models.User) *memUserStore {
	s := &memUserStore{users: map[string]models.User{}}
	for _, u := range seed {
		s.users[u.ID] = u
	}
	return s
}

func (s *memUserStore) Create(_ context.Context, user models.User) error {
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (s *memUserStore) GetByID(_ context.Context, id string) (models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (s *memUserStore) UpdateAvatarURL(_ context.Context, id, avatarURL string) error {
	u, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.AvatarURL = avatarURL
	s.users[id] = u
	return nil
}

type memImageStore struct {
	images   map[string]models.Image
	likes    map[string]map[string]struct{}
	comments map[string]models.Comment
}

func newMemImageStore(seed ...models.Image) *memImageStore {
	s := &memImageStore{
		images:   map[string]models.Image{},
		likes:    map[string]map[string]struct{}{},
		comments: map[string]models.Comment{},
	}
	for _, img := range seed {
		s.images[img.ID] = img
	}
	return s
}

func (s *memImageStore) Create(_ context.Context, img models.Image) error {
	s.images[img.ID] = img
	return nil
}

func (s *memImageStore) GetByID(_ context.Context, id string) (models.Image, error) {
	img, ok := s.images[id]
	if !ok {
		return models.Image{}, repository.ErrImageNotFound
	}
	return img, nil
}

func (s *memImageStore) ListByOwner(_ context.Context, userID string) ([]models.Image, error) {
	var out []models.Image
	for _, img := range s.images {
		if img.UserID == userID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (s *memImageStore) Delete(_ context.Context, id string) error {
	if _, ok := s.images[id]; !ok {
		return repository.ErrImageNotFound
	}
	delete(s.images, id)
	return nil
}

func (s *memImageStore) UpdateObject(_ context.Context, img models.Image) error {
	if _, ok := s.images[img.ID]; !ok {
		return repository.ErrImageNotFound
	}
	s.images[img.ID] = img
	return nil
}

func (s *memImageStore) Like(_ context.Context, imageID, userID string) error {
	if s.likes[imageID] == nil {
		s.likes[imageID] = map[string]struct{}{}
	}
	s.likes[imageID][userID] = struct{}{}
	return nil
}

func (s *memImageStore) Unlike(_ context.Context, imageID, userID string) (bool, error) {
	if _, ok := s.likes[imageID][userID]; !ok {
		return false, nil
	}
	delete(s.likes[imageID], userID)
	return true, nil
}

func (s *memImageStore) CountLikes(_ context.Context, imageID string) (int, error) {
	return len(s.likes[imageID]), nil
}

func (s *memImageStore) ListLikers(_ context.Context, imageID string) ([]models.Profile, error) {
	var out []models.Profile
	for userID := range s.likes[imageID] {
		out = append(out, models.Profile{ID: userID})
	}
	return out, nil
}

func (s *memImageStore) AddComment(_ context.Context, comment models.Comment) error {
	s.comments[comment.ID] = comment
	return nil
}

func (s *memImageStore) GetComment(_ context.Context, imageID, commentID string) (models.Comment, error) {
	comment, ok := s.comments[commentID]
	if !ok || comment.ImageID != imageID {
		return models.Comment{}, repository.ErrCommentNotFound
	}
	return comment, nil
}

func (s *memImageStore) DeleteComment(_ context.Context, commentID string) error {
	if _, ok := s.comments[commentID]; !ok {
		return repository.ErrCommentNotFound
	}
	delete(s.comments, commentID)
	return nil
}

func (s *memImageStore) ListComments(_ context.Context, imageID string) ([]models.CommentDetail, error) {
	var out []models.CommentDetail
	for _, comment := range s.comments {
		if comment.ImageID == imageID {
			out = append(out, models.CommentDetail{
				Comment: comment,
				Author:  models.Profile{ID: comment.UserID, Username: comment.Username},
			})
		}
	}
	return out, nil
}

type memBlobStore struct {
	objects map[string][]byte
	removed []string
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{objects: map[string][]byte{}}
}

func (s *memBlobStore) Put(_ context.Context, key string, data []byte, _ string) error {
	s.objects[key] = data
	return nil
}

func (s *memBlobStore) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("object %s not found", key)
	}
	return data, nil
}

func (s *memBlobStore) Remove(_ context.Context, key string) error {
	s.removed = append(s.removed, key)
	delete(s.objects, key)
	return nil
}

func (s *memBlobStore) PublicURL(key string) string {
	return "http://storage.test/imagegram/" + key
}
