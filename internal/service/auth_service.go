package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"imagegram/api/internal/apperr"
	"imagegram/api/internal/config"
	"imagegram/api/internal/ids"
	"imagegram/api/internal/media"
	"imagegram/api/internal/models"
	"imagegram/api/internal/repository"
	"imagegram/api/internal/security"
)

type AuthService struct {
	users UserStore
	store BlobStore
	cfg   *config.AppConfig
	log   zerolog.Logger
}

func NewAuthService(
	users UserStore,
	store BlobStore,
	cfg *config.AppConfig,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users: users,
		store: store,
		cfg:   cfg,
		log:   log,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) error {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return apperr.New(apperr.KindValidation, "username, email and password are required")
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return apperr.New(apperr.KindConflict, "email already registered")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return err
	}

	user := models.User{
		ID:           ids.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return apperr.New(apperr.KindConflict, "email already registered")
		}
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return nil
}

type LoginResult struct {
	Token string
	User  models.Profile
}

// Login folds unknown email and wrong password into the same failure so
// the response shape does not reveal which one happened.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return LoginResult{}, apperr.New(apperr.KindUnauthenticated, "invalid credentials")
		}
		return LoginResult{}, err
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return LoginResult{}, apperr.New(apperr.KindUnauthenticated, "invalid credentials")
	}

	token, err := security.GenerateToken(s.cfg.Security.JWTSecret, user.ID, user.Username, s.cfg.Security.JWTTTL)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		Token: token,
		User:  user.Profile(),
	}, nil
}

// UpdateAvatar stores a fixed-size PNG thumbnail under a key derived from
// the user id, so repeated updates overwrite the previous avatar.
func (s *AuthService) UpdateAvatar(ctx context.Context, userID string, payload []byte) (string, error) {
	if len(payload) == 0 {
		return "", apperr.New(apperr.KindValidation, "no image payload")
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", apperr.New(apperr.KindNotFound, "user not found")
		}
		return "", err
	}

	img, _, err := media.Decode(payload)
	if err != nil {
		return "", apperr.New(apperr.KindValidation, "unrecognized image format")
	}

	thumb := media.SquareThumbnail(img, s.cfg.Media.AvatarSize)
	encoded, err := media.Encode(thumb, "png")
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("avatars/%s.png", userID)
	if err := s.store.Put(ctx, key, encoded, media.ContentType("png")); err != nil {
		return "", err
	}

	url := s.store.PublicURL(key)
	if err := s.users.UpdateAvatarURL(ctx, userID, url); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", apperr.New(apperr.KindNotFound, "user not found")
		}
		return "", err
	}

	return url, nil
}
