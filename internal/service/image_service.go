package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"imagegram/api/internal/apperr"
	"imagegram/api/internal/config"
	"imagegram/api/internal/ids"
	"imagegram/api/internal/media"
	"imagegram/api/internal/models"
	"imagegram/api/internal/repository"
)

type ImageService struct {
	images ImageStore
	users  UserStore
	store  BlobStore
	cfg    *config.AppConfig
	log    zerolog.Logger
}

func NewImageService(
	images ImageStore,
	users UserStore,
	store BlobStore,
	cfg *config.AppConfig,
	log zerolog.Logger,
) *ImageService {
	return &ImageService{
		images: images,
		users:  users,
		store:  store,
		cfg:    cfg,
		log:    log,
	}
}

// Upload resizes the payload to the bounding width, writes the blob, and
// records metadata with the real post-resize dimensions.
func (s *ImageService) Upload(ctx context.Context, owner models.User, payload []byte) (models.Image, error) {
	if len(payload) == 0 {
		return models.Image{}, apperr.New(apperr.KindValidation, "no image payload")
	}

	img, format, err := media.Decode(payload)
	if err != nil {
		return models.Image{}, apperr.New(apperr.KindValidation, "unrecognized image format")
	}

	resized := media.ResizeToWidth(img, s.cfg.Media.BoundingWidth)
	encoded, err := media.Encode(resized, format)
	if err != nil {
		return models.Image{}, err
	}

	key := path.Join("images", fmt.Sprintf("%s.%s", ids.New(), format))
	if err := s.store.Put(ctx, key, encoded, media.ContentType(format)); err != nil {
		return models.Image{}, err
	}

	record := models.Image{
		ID:        ids.New(),
		UserID:    owner.ID,
		ObjectKey: key,
		URL:       s.store.PublicURL(key),
		Format:    format,
		Width:     resized.Bounds().Dx(),
		Height:    resized.Bounds().Dy(),
		SizeBytes: int64(len(encoded)),
	}

	if err := s.images.Create(ctx, record); err != nil {
		return models.Image{}, fmt.Errorf("save metadata: %w", err)
	}

	s.log.Info().
		Str("image_id", record.ID).
		Str("user_id", owner.ID).
		Int("width", record.Width).
		Int("height", record.Height).
		Msg("image uploaded")

	return record, nil
}

func (s *ImageService) ListOwnedBy(ctx context.Context, userID string) ([]models.Image, error) {
	return s.images.ListByOwner(ctx, userID)
}

// Get resolves the image with its social context. requesterID may be
// empty for anonymous reads; it only drives the IsOwner flag.
func (s *ImageService) Get(ctx context.Context, imageID, requesterID string) (models.ImageDetail, error) {
	record, err := s.images.GetByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return models.ImageDetail{}, apperr.New(apperr.KindNotFound, "image not found")
		}
		return models.ImageDetail{}, err
	}

	owner, err := s.users.GetByID(ctx, record.UserID)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return models.ImageDetail{}, err
	}

	likers, err := s.images.ListLikers(ctx, imageID)
	if err != nil {
		return models.ImageDetail{}, err
	}

	comments, err := s.images.ListComments(ctx, imageID)
	if err != nil {
		return models.ImageDetail{}, err
	}

	return models.ImageDetail{
		Image:    record,
		Owner:    owner.Profile(),
		Likers:   likers,
		Comments: comments,
		IsOwner:  requesterID != "" && requesterID == record.UserID,
	}, nil
}

// Delete removes the metadata row first, then the blob. A blob failure
// after the row is gone leaves an orphan and surfaces as an unexpected
// error; the sweep job reclaims orphans later.
func (s *ImageService) Delete(ctx context.Context, imageID, requesterID string) error {
	record, err := s.images.GetByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return apperr.New(apperr.KindNotFound, "image not found")
		}
		return err
	}

	if record.UserID != requesterID {
		return apperr.New(apperr.KindForbidden, "not the image owner")
	}

	if err := s.images.Delete(ctx, imageID); err != nil {
		return err
	}

	if err := s.store.Remove(ctx, record.ObjectKey); err != nil {
		s.log.Error().Err(err).Str("object_key", record.ObjectKey).Msg("blob delete failed after metadata delete")
		return err
	}

	return nil
}

// loadOwned fetches a record for a destructive transform. Owner mismatch
// reads the same as a missing record.
func (s *ImageService) loadOwned(ctx context.Context, imageID, requesterID string) (models.Image, error) {
	record, err := s.images.GetByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return models.Image{}, apperr.New(apperr.KindNotFound, "image not found")
		}
		return models.Image{}, err
	}
	if record.UserID != requesterID {
		return models.Image{}, apperr.New(apperr.KindNotFound, "image not found")
	}
	return record, nil
}

func (s *ImageService) Resize(ctx context.Context, imageID, requesterID string, width, height int) (models.Image, error) {
	if width <= 0 {
		return models.Image{}, apperr.New(apperr.KindValidation, "width must be a positive integer")
	}
	if height < 0 {
		return models.Image{}, apperr.New(apperr.KindValidation, "height must be a non-negative integer")
	}

	return s.transform(ctx, imageID, requesterID, func(img image.Image) (image.Image, error) {
		return media.Resize(img, width, height), nil
	})
}

func (s *ImageService) Rotate(ctx context.Context, imageID, requesterID string, angle int) (models.Image, error) {
	return s.transform(ctx, imageID, requesterID, func(img image.Image) (image.Image, error) {
		rotated, err := media.Rotate(img, angle)
		if err != nil {
			return nil, apperr.New(apperr.KindValidation, err.Error())
		}
		return rotated, nil
	})
}

func (s *ImageService) Flip(ctx context.Context, imageID, requesterID string, direction string) (models.Image, error) {
	return s.transform(ctx, imageID, requesterID, func(img image.Image) (image.Image, error) {
		flipped, err := media.Flip(img, direction)
		if err != nil {
			return nil, apperr.New(apperr.KindValidation, err.Error())
		}
		return flipped, nil
	})
}

// transform applies one codec pass to the stored blob and rewrites it
// under the same key.
func (s *ImageService) transform(ctx context.Context, imageID, requesterID string, fn func(image.Image) (image.Image, error)) (models.Image, error) {
	record, err := s.loadOwned(ctx, imageID, requesterID)
	if err != nil {
		return models.Image{}, err
	}

	data, err := s.store.Get(ctx, record.ObjectKey)
	if err != nil {
		return models.Image{}, err
	}

	img, format, err := media.Decode(data)
	if err != nil {
		return models.Image{}, apperr.New(apperr.KindValidation, "stored object is not a decodable image")
	}

	out, err := fn(img)
	if err != nil {
		return models.Image{}, err
	}

	encoded, err := media.Encode(out, format)
	if err != nil {
		return models.Image{}, err
	}

	if err := s.store.Put(ctx, record.ObjectKey, encoded, media.ContentType(format)); err != nil {
		return models.Image{}, err
	}

	record.Format = format
	record.Width = out.Bounds().Dx()
	record.Height = out.Bounds().Dy()
	record.SizeBytes = int64(len(encoded))

	if err := s.images.UpdateObject(ctx, record); err != nil {
		return models.Image{}, err
	}
	return record, nil
}

// ChangeFormat re-encodes the blob. A changed extension means a new key:
// the new object is written first, then the old one removed.
func (s *ImageService) ChangeFormat(ctx context.Context, imageID, requesterID string, format string) (models.Image, error) {
	target, err := media.NormalizeFormat(format)
	if err != nil {
		return models.Image{}, apperr.New(apperr.KindValidation, "unsupported target format")
	}

	record, err := s.loadOwned(ctx, imageID, requesterID)
	if err != nil {
		return models.Image{}, err
	}

	data, err := s.store.Get(ctx, record.ObjectKey)
	if err != nil {
		return models.Image{}, err
	}

	img, _, err := media.Decode(data)
	if err != nil {
		return models.Image{}, apperr.New(apperr.KindValidation, "stored object is not a decodable image")
	}

	encoded, err := media.Encode(img, target)
	if err != nil {
		return models.Image{}, err
	}

	oldKey := record.ObjectKey
	newKey := strings.TrimSuffix(oldKey, path.Ext(oldKey)) + "." + target

	if err := s.store.Put(ctx, newKey, encoded, media.ContentType(target)); err != nil {
		return models.Image{}, err
	}

	record.ObjectKey = newKey
	record.URL = s.store.PublicURL(newKey)
	record.Format = target
	record.Width = img.Bounds().Dx()
	record.Height = img.Bounds().Dy()
	record.SizeBytes = int64(len(encoded))

	if err := s.images.UpdateObject(ctx, record); err != nil {
		return models.Image{}, err
	}

	if newKey != oldKey {
		if err := s.store.Remove(ctx, oldKey); err != nil {
			s.log.Warn().Err(err).Str("object_key", oldKey).Msg("stale blob removal failed")
		}
	}

	return record, nil
}
