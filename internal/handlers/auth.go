package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"imagegram/api/internal/apperr"
	"imagegram/api/internal/httpx"
	"imagegram/api/internal/middleware"
	"imagegram/api/internal/models"
	"imagegram/api/internal/service"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h HandlerSet) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, apperr.New(apperr.KindValidation, "invalid request body"))
		return
	}

	if err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}); err != nil {
		httpx.Fail(c, err)
		return
	}

	httpx.OK(c, http.StatusCreated, "user registered successfully", nil)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string         `json:"token"`
	User  models.Profile `json:"user"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, apperr.New(apperr.KindValidation, "invalid request body"))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpx.Fail(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, "logged in successfully", loginResponse{
		Token: result.Token,
		User:  result.User,
	})
}

func (h HandlerSet) UpdateAvatar(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httpx.Fail(c, apperr.New(apperr.KindUnauthenticated, "unauthorized"))
		return
	}

	payload, err := h.readImageFile(c, "avatar")
	if err != nil {
		httpx.Fail(c, err)
		return
	}

	url, err := h.authService.UpdateAvatar(c.Request.Context(), user.ID, payload)
	if err != nil {
		httpx.Fail(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, "avatar updated", gin.H{"avatarUrl": url})
}

// readImageFile pulls one multipart file field, enforcing the upload
// size cap at this boundary so oversized payloads map to 400.
func (h HandlerSet) readImageFile(c *gin.Context, field string) ([]byte, error) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, "no file provided")
	}
	defer file.Close()

	limit := h.cfg.Media.MaxUploadBytes
	if header.Size > limit {
		return nil, apperr.New(apperr.KindValidation, "file too large")
	}

	payload, err := readCapped(file, limit)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// readCapped reads at most limit bytes. The declared size is not
// trusted; it reads one byte past the cap and rejects if anything lands
// there, so an under-reported upload fails instead of being truncated.
func readCapped(r io.Reader, limit int64) ([]byte, error) {
	payload, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "malformed upload", err)
	}
	if int64(len(payload)) > limit {
		return nil, apperr.New(apperr.KindValidation, "file too large")
	}
	return payload, nil
}
