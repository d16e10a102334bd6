package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"imagegram/api/internal/apperr"
	"imagegram/api/internal/httpx"
	"imagegram/api/internal/middleware"
	"imagegram/api/internal/models"
)

type imageResponse struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	Format    string    `json:"format"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	SizeBytes int64     `json:"sizeBytes"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func toImageResponse(image models.Image) imageResponse {
	return imageResponse{
		ID:        image.ID,
		Filename:  image.Filename(),
		URL:       image.URL,
		Format:    image.Format,
		Width:     image.Width,
		Height:    image.Height,
		SizeBytes: image.SizeBytes,
		UserID:    image.UserID,
		CreatedAt: image.CreatedAt,
	}
}

type commentResponse struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	Username  string         `json:"username"`
	Author    models.Profile `json:"author"`
	CreatedAt time.Time      `json:"createdAt"`
}

type imageDetailResponse struct {
	imageResponse
	Owner    models.Profile    `json:"owner"`
	Likes    []models.Profile  `json:"likes"`
	Comments []commentResponse `json:"comments"`
	IsOwner  bool              `json:"isOwner"`
}

func (h HandlerSet) UploadImage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httpx.Fail(c, apperr.New(apperr.KindUnauthenticated, "unauthorized"))
		return
	}

	payload, err := h.readImageFile(c, "image")
	if err != nil {
		httpx.Fail(c, err)
		return
	}

	record, err := h.imageService.Upload(c.Request.Context(), user, payload)
	if err != nil {
		httpx.Fail(c, err)
		return
	}

	httpx.OK(c, http.StatusCreated, "image uploaded successfully", toImageResponse(record))
}

func (h HandlerSet) ListMyImages(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httpx.Fail(c, apperr.New(apperr.KindUnauthenticated, "unauthorized"))
		return
	}

	records, err := h.imageService.ListOwnedBy(c.Request.Context(), user.ID)
	if err != nil {
		httpx.Fail(c, err)
		return
	}

	items := make([]imageResponse, 0, len(records))
	for _, record := range records {
		items = append(items, toImageResponse(record))
	}

	httpx.OK(c, http.StatusOK, "images retrieved successfully", items)
}

func (h HandlerSet) GetImage(c *gin.Context) {
	requesterID := ""
	if user, ok := middleware.CurrentUser(c); ok {
		requesterID = user.ID
	}

	detail, err := h.imageService.Get(c.Request.Context(), c.Param("id"), requesterID)
	if err != nil {
		httpx.Fail(c, err)
		return
	}

	comments := make([]commentResponse, 0, len(detail.Comments))
	for _, entry := range detail.Comments {
		comments = append(comments, commentResponse{
			ID:        entry.Comment.ID,
			Text:      entry.Comment.Text,
			Username:  entry.Comment.Username,
			Author:    entry.Author,
			CreatedAt: entry.Comment.CreatedAt,
		})
	}

	httpx.OK(c, http.StatusOK, "image retrieved successfully", imageDetailResponse{
		imageResponse: toImageResponse(detail.Image),
		Owner:         detail.Owner,
		Likes:         detail.Likers,
		Comments:      comments,
		IsOwner:       detail.IsOwner,
	})
}

func (h HandlerSet) DeleteImage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httpx.Fail(c, apperr.New(apperr.KindUnauthenticated, "unauthorized"))
		return
	}

	if err := h.imageService.Delete(c.Request.Context(), c.Param("id"), user.ID); err != nil {
		httpx.Fail(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, "image deleted successfully", nil)
}
